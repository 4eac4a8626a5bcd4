package utils

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/shared/errors"
)

func TestIsValidRegistrationNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"REG2024001", true},
		{"a1234", true},
		{"12345", true},
		{"01234", false},
		{"REG1", false},
		{"REG-2024", false},
		{"", false},
		{strings.Repeat("A", 50), true},
		{strings.Repeat("A", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRegistrationNumber(tt.in))
		})
	}
}

type registerForm struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,regnumber"`
	DeviceType         string `json:"deviceType" validate:"required,oneof=android ios web"`
}

func TestFormatBindingError(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))

	err := v.Struct(registerForm{Name: "A", RegistrationNumber: "0REG1", DeviceType: "tv"})
	require.Error(t, err)

	formatted := FormatBindingError(err)
	appErr := errors.GetAppError(formatted)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "name must be at least 2 characters long")
	assert.Contains(t, appErr.Details, "registrationNumber must be 5-50 alphanumeric characters")
	assert.Contains(t, appErr.Details, "deviceType must be one of [android ios web]")

	assert.NoError(t, v.Struct(registerForm{Name: "Jane", RegistrationNumber: "REG2024001", DeviceType: "web"}))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Pixel 8", SanitizeText("  <b>Pixel 8</b> "))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "O'Brien", SanitizeText("O'Brien"))
}

func TestMasking(t *testing.T) {
	assert.Equal(t, "u***@example.com", MaskEmail("user@example.com"))
	assert.Equal(t, "***", MaskEmail("invalid"))
	assert.Equal(t, "eyJhbGci***", MaskToken("eyJhbGciOiJIUzI1NiJ9"))
	assert.Equal(t, "REG2024001", NormalizeRegistrationNumber(" reg2024001 "))
}
