package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)

	assert.NoError(t, h.Compare(digest, "s3cret"))
	assert.ErrorIs(t, h.Compare(digest, "wrong"), ErrMismatch)
}

func TestBcryptHasherSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasherRejectsEmpty(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.Error(t, err)
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	err := NewBcryptHasher(bcrypt.MinCost).Compare("not-a-digest", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestCheck(t *testing.T) {
	assert.ErrorIs(t, Check(""), ErrEmpty)
	assert.NoError(t, Check(strings.Repeat("a", MaxBytes)))
	assert.ErrorIs(t, Check(strings.Repeat("a", MaxBytes+1)), ErrTooLong)

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("a", MaxBytes+1))
	assert.ErrorIs(t, err, ErrTooLong)
}
