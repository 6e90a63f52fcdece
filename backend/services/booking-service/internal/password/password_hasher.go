package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt takes into account.
const MaxBytes = 72

var (
	// ErrMismatch is returned by Compare when the password does not match the digest.
	ErrMismatch = errors.New("password: mismatch")
	// ErrEmpty is returned by Hash for an empty password.
	ErrEmpty = errors.New("password: empty")
	// ErrTooLong is returned by Hash for passwords longer than MaxBytes.
	ErrTooLong = errors.New("password: longer than 72 bytes")
)

// Hasher turns passwords into digests and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(digest, password string) error
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed Hasher. A zero cost selects
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Check reports whether password is acceptable for Hash.
func Check(password string) error {
	switch {
	case password == "":
		return ErrEmpty
	case len(password) > MaxBytes:
		return ErrTooLong
	}
	return nil
}

// Hash returns a salted digest of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if err := Check(password); err != nil {
		return "", err
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare returns ErrMismatch when password does not produce digest.
func (h *BcryptHasher) Compare(digest, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
