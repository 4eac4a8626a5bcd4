// Package models holds the gorm persistence models.
package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&ApprovedRegistrationModel{},
		&UserModel{},
		&SessionModel{},
		&DeviceLogModel{},
	}
}
