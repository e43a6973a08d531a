package auth

import (
	"testing"

	"ratinity/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4}, // minimum cost keeps tests fast
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        16,
			RequireUppercase: true,
			RequireSpecial:   true,
		},
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	password := "StrongPass1!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password matches.
	assert.True(t, hasher.Check(password, hash))

	// Incorrect, empty and malformed inputs do not.
	assert.False(t, hasher.Check("WrongPass1!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("StrongPass1!")
	require.NoError(t, err)
	second, err := hasher.Hash("StrongPass1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher()

	validPasswords := []string{
		"StrongPass1!",
		"MySecure@Pw1",
		"Complex#Secret9",
		"Valid$Pass24",
	}
	for _, password := range validPasswords {
		assert.NoError(t, hasher.ValidatePasswordStrength(password), "expected valid: %s", password)
	}

	invalidPasswords := []string{
		"Sh0rt!",                 // below minimum length
		"WayTooLongPassword123!", // above maximum length
		"alllower1!",             // no uppercase letter
		"NoSpecial123",           // no special character
	}
	for _, password := range invalidPasswords {
		assert.Error(t, hasher.ValidatePasswordStrength(password), "expected invalid: %s", password)
	}
}
