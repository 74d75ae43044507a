package handlers

import (
	"net/http"

	"recipebox/internal/apperrors"
	"recipebox/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	_, err := h.authService.Signup(c.Request.Context(), services.SignupDTO{
		Username:  req.Username,
		Password:  req.Password,
		ImageURL:  req.ImageURL,
		Bio:       req.Bio,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Authentication("Invalid credentials"))
		return
	}

	ctx := c.Request.Context()
	user, token, err := h.authService.Login(ctx, req.Username, req.Password, c.ClientIP())
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Drop whatever session this browser held before.
	if previous := sessionToken(c); previous != "" {
		if err := h.sessions.Destroy(ctx, previous); err != nil {
			h.logger.Warn("Failed to destroy previous session", "error", err)
		}
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		_ = h.sessions.Destroy(ctx, token)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "username": user.Username})
}

func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(contextTokenKey)
	if err := h.authService.Logout(c.Request.Context(), currentUserID(c), token, c.ClientIP()); err != nil {
		h.respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	opts := h.cookieOptions()
	opts.MaxAge = -1
	session.Options(opts)
	if err := session.Save(); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckSession(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
