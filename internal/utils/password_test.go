package utils_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/plan_approval_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestPasswordHash_TooLong(t *testing.T) {
	_, err := utils.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, utils.ErrPasswordTooLong)
}

func TestGenerateTemporaryPassword(t *testing.T) {
	first, err := utils.GenerateTemporaryPassword(12)
	require.NoError(t, err)
	second, err := utils.GenerateTemporaryPassword(12)
	require.NoError(t, err)

	assert.Len(t, first, 16)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")

	_, err = utils.GenerateTemporaryPassword(4)
	assert.Error(t, err)
}
