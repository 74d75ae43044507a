package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Salted: the same password never hashes to the same string twice.
	other, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestHashPassword_Cost(t *testing.T) {
	original := BcryptCost
	BcryptCost = bcrypt.MinCost
	defer func() { BcryptCost = original }()

	hash, err := HashPassword("secret")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "my-secure-password"
	wrongPassword := "wrong-password"
	hash, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash(wrongPassword, hash))
}

func TestCheckPasswordHash_FailsClosed(t *testing.T) {
	hash, _ := HashPassword("password")

	assert.False(t, CheckPasswordHash("password", ""))
	assert.False(t, CheckPasswordHash("password", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("", hash))
}
