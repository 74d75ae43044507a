package services

import (
	"context"
	"errors"
	"fmt"

	"recipebox/internal/apperrors"
	"recipebox/internal/models"
	"recipebox/internal/repository"
)

const invalidCredentials = "Invalid credentials"

type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
}

type SignupDTO struct {
	Username  string
	Password  string
	ImageURL  *string
	Bio       *string
	IPAddress string // For Audit Log
}

type AuthService struct {
	users        UserRepository
	recipes      RecipeRepository
	sessions     SessionStore
	auditService *AuditService
}

func NewAuthService(users UserRepository, recipes RecipeRepository, sessions SessionStore, auditService *AuditService) *AuthService {
	return &AuthService{
		users:        users,
		recipes:      recipes,
		sessions:     sessions,
		auditService: auditService,
	}
}

func (s *AuthService) Signup(ctx context.Context, dto SignupDTO) (*models.User, error) {
	if dto.Username == "" || dto.Password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	user := &models.User{
		Username: dto.Username,
		ImageURL: dto.ImageURL,
		Bio:      dto.Bio,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// The unique index on username is what actually guarantees uniqueness;
	// this check only gives the common case a clean answer.
	_, err := s.users.FindUserByUsername(ctx, dto.Username)
	if err == nil {
		return nil, apperrors.Conflict("Username already exists", nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if err := user.SetPassword(dto.Password); err != nil {
		return nil, err
	}

	if err := s.users.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.auditService.LogAction(&user.ID, models.ActionSignup, user.Username, nil, dto.IPAddress)

	return user, nil
}

// Login checks credentials and opens a session. Unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*models.User, string, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.auditService.LogAction(nil, models.ActionLoginFailed, username, nil, ip)
			return nil, "", apperrors.Authentication(invalidCredentials)
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !user.VerifyPassword(password) {
		s.auditService.LogAction(&user.ID, models.ActionLoginFailed, user.Username, nil, ip)
		return nil, "", apperrors.Authentication(invalidCredentials)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	s.auditService.LogAction(&user.ID, models.ActionLogin, user.Username, nil, ip)

	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint, token, ip string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}

	s.auditService.LogAction(&userID, models.ActionLogout, "", nil, ip)
	return nil
}

// CurrentUser returns the public view of the session's user together with
// their recipes.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.UserView, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	recipes, err := s.recipes.ListRecipesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	view := user.Serialize(recipes)
	return &view, nil
}
