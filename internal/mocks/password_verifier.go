package mocks

import (
	"errors"
	"strings"

	"github.com/gymdesk/gym-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}

// PlainHasher is a fast, reversible stand-in for bcrypt in tests. Hashes are
// the password prefixed with "hashed:".
type PlainHasher struct {
	// Err, when set, is returned by Hash
	Err error
}

var (
	_ auth.PasswordHasher   = PlainHasher{}
	_ auth.PasswordVerifier = PlainHasher{}
)

// Hash implements auth.PasswordHasher
func (h PlainHasher) Hash(password string) (string, error) {
	if h.Err != nil {
		return "", h.Err
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (h PlainHasher) Compare(hashedPassword, password string) error {
	if !strings.HasPrefix(hashedPassword, "hashed:") || hashedPassword[len("hashed:"):] != password {
		return errors.New("password mismatch")
	}
	return nil
}
