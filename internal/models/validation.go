package models

import (
	"strings"

	"recipebox/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.Validation("Username must be present")
	}
	if validate.Var(username, "max=50") != nil {
		return apperrors.Validation("Username must be at most 50 characters")
	}
	return nil
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.Validation("Title must be present")
	}
	return nil
}

// ValidateInstructions counts characters, not bytes.
func ValidateInstructions(instructions string) error {
	if validate.Var(instructions, "min=50") != nil {
		return apperrors.Validation("Instructions must be at least 50 characters long")
	}
	return nil
}

func ValidateBio(bio *string) error {
	if bio != nil && validate.Var(*bio, "max=500") != nil {
		return apperrors.Validation("Bio must be at most 500 characters")
	}
	return nil
}

func ValidateImageURL(imageURL *string) error {
	if imageURL != nil && validate.Var(*imageURL, "max=255") != nil {
		return apperrors.Validation("Image URL must be at most 255 characters")
	}
	return nil
}

func ValidateMinutes(minutes *int) error {
	if minutes != nil && validate.Var(*minutes, "min=0") != nil {
		return apperrors.Validation("Minutes to complete must not be negative")
	}
	return nil
}
