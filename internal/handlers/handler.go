package handlers

import (
	"log/slog"

	"recipebox/internal/config"
	"recipebox/internal/repository"
	"recipebox/internal/services"
)

type Handler struct {
	cfg           config.Config
	logger        *slog.Logger
	store         *repository.Store
	sessions      services.SessionStore
	authService   *services.AuthService
	recipeService *services.RecipeService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	store *repository.Store,
	sessions services.SessionStore,
	authService *services.AuthService,
	recipeService *services.RecipeService,
) *Handler {
	return &Handler{
		cfg:           cfg,
		logger:        logger,
		store:         store,
		sessions:      sessions,
		authService:   authService,
		recipeService: recipeService,
	}
}
