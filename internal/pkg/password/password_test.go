package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, Verify("s3cret-pass", hash))
	assert.False(t, Verify("wrong-pass", hash))
	assert.False(t, Verify("s3cret-pass", "not-a-bcrypt-hash"))
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	c := HashToken("other-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest")
}

func TestValidate(t *testing.T) {
	assert.False(t, Validate(""))
	assert.False(t, Validate("short"))
	assert.False(t, Validate("1234567"))
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("a-much-longer-password"))
}
