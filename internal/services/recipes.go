package services

import (
	"context"
	"strconv"

	"recipebox/internal/models"
)

type RecipeRepository interface {
	ListRecipesByUser(ctx context.Context, userID uint) ([]models.Recipe, error)
	InsertRecipe(ctx context.Context, recipe *models.Recipe) error
}

type CreateRecipeDTO struct {
	UserID            uint
	Title             string
	Instructions      string
	MinutesToComplete *int
	IPAddress         string // For Audit Log
}

type RecipeService struct {
	recipes      RecipeRepository
	auditService *AuditService
}

func NewRecipeService(recipes RecipeRepository, auditService *AuditService) *RecipeService {
	return &RecipeService{
		recipes:      recipes,
		auditService: auditService,
	}
}

// ListForUser returns only the recipes owned by userID.
func (s *RecipeService) ListForUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.recipes.ListRecipesByUser(ctx, userID)
}

// Create validates the recipe here and again in the model hook on insert.
func (s *RecipeService) Create(ctx context.Context, dto CreateRecipeDTO) (*models.Recipe, error) {
	owner := dto.UserID
	recipe := &models.Recipe{
		Title:             dto.Title,
		Instructions:      dto.Instructions,
		MinutesToComplete: dto.MinutesToComplete,
		UserID:            &owner,
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.recipes.InsertRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.auditService.LogAction(&owner, models.ActionCreateRecipe, strconv.FormatUint(uint64(recipe.ID), 10), map[string]any{
		"title": recipe.Title,
	}, dto.IPAddress)

	return recipe, nil
}
