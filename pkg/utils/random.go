package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken returns an opaque random token identifying a
// server-side session.
func GenerateSessionToken() string {
	return uuid.NewString()
}
