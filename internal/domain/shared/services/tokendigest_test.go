package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenDigester(t *testing.T) {
	d := NewTokenDigester()

	digest := d.Digest("token-a")
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, d.Digest("token-a"))
	assert.NotEqual(t, digest, d.Digest("token-b"))

	assert.True(t, d.Matches("token-a", digest))
	assert.False(t, d.Matches("token-b", digest))
}
