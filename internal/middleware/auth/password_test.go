package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyCode(t *testing.T) {
	code := NewConfirmationCode()
	_, err := uuid.Parse(code)
	require.NoError(t, err)

	hash, err := HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.NoError(t, VerifyCode(hash, code))
	assert.Error(t, VerifyCode(hash, "wrong"))
}

func TestVerifyCode_EmptyHash(t *testing.T) {
	assert.Error(t, VerifyCode("", ""))
}

func TestNewConfirmationCode_Unique(t *testing.T) {
	assert.NotEqual(t, NewConfirmationCode(), NewConfirmationCode())
}
