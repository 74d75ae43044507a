package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"recipebox/internal/apperrors"
	"recipebox/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHash holds a bcrypt hash that can be replaced from a plaintext
// password and checked against one, but never read back. It travels to the
// database through driver.Valuer/sql.Scanner only.
type PasswordHash struct {
	hash string
}

// Set hashes plain and stores the result.
func (p *PasswordHash) Set(plain string) error {
	hash, err := utils.HashPassword(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return apperrors.Validation("Password must be at most 72 bytes")
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.hash = hash
	return nil
}

// Verify reports whether plain matches the stored hash. It is false when no
// hash has been set.
func (p PasswordHash) Verify(plain string) bool {
	return utils.CheckPasswordHash(plain, p.hash)
}

func (p PasswordHash) IsSet() bool {
	return p.hash != ""
}

func (p PasswordHash) String() string {
	return "[REDACTED]"
}

func (p PasswordHash) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (PasswordHash) GormDataType() string {
	return "string"
}

func (p PasswordHash) Value() (driver.Value, error) {
	if p.hash == "" {
		return nil, nil
	}
	return p.hash, nil
}

func (p *PasswordHash) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		p.hash = ""
	case string:
		p.hash = v
	case []byte:
		p.hash = string(v)
	default:
		return fmt.Errorf("unsupported password hash type %T", src)
	}
	return nil
}
