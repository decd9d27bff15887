package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/infrastructure/auth"
	"armabazar/pkg/errors"
	"armabazar/pkg/response"
)

// DevTokenHandler mints session tokens without an identity provider. It is
// only routed in non-production environments.
type DevTokenHandler struct {
	tokenManager *auth.TokenManager
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(tokenManager *auth.TokenManager, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		tokenManager: tokenManager,
		userRepo:     userRepo,
	}
}

func SetupDevTokenHandler(tokenManager *auth.TokenManager, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(tokenManager, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user := &entity.User{
		ID:         req.UserID,
		Email:      req.Email,
		Username:   req.Username,
		Admin:      req.Admin,
		Reputation: entity.ReputationNeutral,
	}
	if user.Email == "" {
		user.Email = fmt.Sprintf("%s@example.test", req.UserID)
	}
	if user.Username == "" {
		user.Username = req.UserID
	}

	// Create is an upsert on id, so repeated token requests are harmless.
	if err := h.userRepo.Create(c.Request().Context(), user); err != nil {
		return response.Error(c, err)
	}

	token, err := h.tokenManager.Issue(req.UserID, req.Admin, false)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to issue token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"admin":    user.Admin,
		},
	})
}
