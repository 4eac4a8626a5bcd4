package dto

import (
	"time"

	"github.com/gohub-app/gohub/internal/domain/user"
)

// UserResponse is the user snapshot returned by login and profile lookups.
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	DisplayName        string    `json:"display_name"`
	RegistrationNumber string    `json:"registration_number"`
	Email              *string   `json:"email,omitempty"`
	IsActive           bool      `json:"is_active"`
	IsActivated        bool      `json:"is_activated"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DeviceBindingInfo reports what the login did to the user's previous session.
type DeviceBindingInfo struct {
	PreviousDeviceLoggedOut bool    `json:"previous_device_logged_out"`
	PreviousDeviceInfo      *string `json:"previous_device_info,omitempty"`
	Message                 string  `json:"message"`
}

// TokenResponse carries a credential pair. RefreshToken is echoed back unchanged on refresh.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Outcome is the common part of every auth operation result.
// Code is set only when Success is false.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type RegisterOutcome struct {
	Outcome
	UserID       string `json:"user_id,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type LoginOutcome struct {
	Outcome
	User              *UserResponse      `json:"user,omitempty"`
	AccessToken       string             `json:"access_token,omitempty"`
	RefreshToken      string             `json:"refresh_token,omitempty"`
	DeviceBindingInfo *DeviceBindingInfo `json:"device_binding_info,omitempty"`
}

type LogoutOutcome struct {
	Outcome
}

type RefreshOutcome struct {
	Outcome
	Tokens *TokenResponse `json:"tokens,omitempty"`
}

// DeviceLogResponse is one entry of a user's device history.
type DeviceLogResponse struct {
	DeviceID   string         `json:"device_id"`
	DeviceName string         `json:"device_name,omitempty"`
	DeviceType string         `json:"device_type,omitempty"`
	Action     string         `json:"action"`
	IPAddress  string         `json:"ip_address,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ToUserResponse converts a domain user to its response shape.
func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}

	resp := &UserResponse{
		ID:                 u.ID(),
		Name:               u.Name().String(),
		DisplayName:        u.Name().DisplayName(),
		RegistrationNumber: u.RegistrationNumber().String(),
		IsActive:           u.IsActive(),
		IsActivated:        u.IsActivated(),
		CreatedAt:          u.CreatedAt(),
		UpdatedAt:          u.UpdatedAt(),
	}
	if u.Email() != nil {
		email := u.Email().String()
		resp.Email = &email
	}
	return resp
}

func ToDeviceLogResponses(entries []*user.DeviceLogEntry) []*DeviceLogResponse {
	out := make([]*DeviceLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &DeviceLogResponse{
			DeviceID:   e.DeviceID,
			DeviceName: e.DeviceName,
			DeviceType: e.DeviceType,
			Action:     string(e.Action),
			IPAddress:  e.IPAddress,
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}
