package handlers

import (
	"net/http"

	"recipebox/internal/apperrors"
	"recipebox/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe always assigns the recipe to the session user.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), services.CreateRecipeDTO{
		UserID:            currentUserID(c),
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
		IPAddress:         c.ClientIP(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}
