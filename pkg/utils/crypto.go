package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used by HashPassword. It is set once at
// startup from configuration.
var BcryptCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. An empty or
// malformed hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
