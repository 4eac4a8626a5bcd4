package dto

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gohub-app/gohub/internal/application/user/usecases"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/shared/constants"
)

// DeviceFields are the client identification fields shared by register and login.
type DeviceFields struct {
	DeviceID   string `json:"device_id" binding:"required,max=255"`
	DeviceName string `json:"device_name" binding:"omitempty,max=255"`
	DeviceType string `json:"device_type" binding:"required,oneof=android ios web"`
}

type RegisterRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=100"`
	RegistrationNumber string `json:"registration_number" binding:"required,regnumber"`
	Email              string `json:"email" binding:"omitempty,email,max=255"`
	Password           string `json:"password" binding:"required,min=6,max=100"`
	DeviceFields
}

type LoginRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required,regnumber"`
	Password           string `json:"password" binding:"required,max=100"`
	DeviceFields
}

type LogoutRequest struct {
	DeviceID string `json:"device_id" binding:"required,max=255"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ToDeviceInfo combines the body fields with the transport metadata of c.
func (d DeviceFields) ToDeviceInfo(c *gin.Context) user.DeviceInfo {
	return user.DeviceInfo{
		DeviceID:   d.DeviceID,
		DeviceName: d.DeviceName,
		DeviceType: strings.ToLower(d.DeviceType),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader(constants.HeaderUserAgent),
	}
}

func (r *RegisterRequest) ToCommand(c *gin.Context) usecases.RegisterCommand {
	return usecases.RegisterCommand{
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		Email:              r.Email,
		Password:           r.Password,
		Device:             r.DeviceFields.ToDeviceInfo(c),
	}
}

func (r *LoginRequest) ToCommand(c *gin.Context) usecases.LoginCommand {
	return usecases.LoginCommand{
		RegistrationNumber: r.RegistrationNumber,
		Password:           r.Password,
		Device:             r.DeviceFields.ToDeviceInfo(c),
	}
}

func (r *LogoutRequest) ToCommand(c *gin.Context, userID, tokenDeviceID string) usecases.LogoutCommand {
	return usecases.LogoutCommand{
		UserID:        userID,
		TokenDeviceID: tokenDeviceID,
		Device: user.DeviceInfo{
			DeviceID:  r.DeviceID,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader(constants.HeaderUserAgent),
		},
	}
}
