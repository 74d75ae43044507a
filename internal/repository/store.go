package repository

import (
	"context"
	"strings"

	"recipebox/internal/apperrors"
	"recipebox/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Store is the persistence layer for users and recipes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "find user by username")
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFoundOr(err, "find user by id")
	}
	return &user, nil
}

// InsertUser relies on the unique index on username; a duplicate is reported
// as a conflict even when a concurrent signup passed the same pre-check.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if isUniqueConstraintViolation(err) {
		return apperrors.Conflict("Username already exists", err)
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return errors.Wrap(err, "insert user")
}

func (s *Store) ListRecipesByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&recipes).Error
	if err != nil {
		return nil, errors.Wrap(err, "list recipes by user")
	}
	return recipes, nil
}

func (s *Store) InsertRecipe(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Create(recipe).Error
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return errors.Wrap(err, "insert recipe")
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return sqlDB.PingContext(ctx)
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, op)
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers without error translation.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505")
}
