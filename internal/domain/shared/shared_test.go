package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrationNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"normalizes case and space", "  reg12345 ", "REG12345", false},
		{"digits only", "12345", "12345", false},
		{"leading zero", "01234", "", true},
		{"too short", "REG1", "", true},
		{"symbols", "REG-12345", "", true},
		{"empty", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRegistrationNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIsExpiredAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsExpiredAt(time.Time{}, now))
	assert.False(t, IsExpiredAt(now.Add(time.Minute), now))
	assert.False(t, IsExpiredAt(now, now))
	assert.True(t, IsExpiredAt(now.Add(-time.Second), now))
}
