// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"ratinity/config"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/service"
)

// Character classes a password may be required to contain. The special set
// matches the registration form's accepted characters.
const specialCharacters = `!@#$%^&*(),.?":{}|<>`

// Policy defaults applied when the passwordStrength config section is absent.
const (
	defaultMinLength = 8
	defaultMaxLength = 16
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.PasswordStrengthConfig{
		MinLength:        defaultMinLength,
		MaxLength:        defaultMaxLength,
		RequireUppercase: true,
		RequireSpecial:   true,
	}
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return &bcryptHasher{
		cost:   cost,
		policy: policy,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength verifies a candidate password against the
// configured policy: length bounds plus required character classes.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	length := len([]rune(password))
	if length < h.policy.MinLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password is too short")
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password is too long")
	}

	if h.policy.RequireUppercase && !containsUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs an uppercase letter")
	}

	if h.policy.RequireSpecial && !strings.ContainsAny(password, specialCharacters) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs a special character")
	}

	return nil
}

func containsUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}
