package api

import (
	"ledgerapi/config"
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler registration, login and the caller's profile
type AuthHandler struct {
	cfg   *config.Config
	users *service.UserService
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: service.NewUserService(db)}
}

// RegisterRequest new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	FullName string `json:"full_name" binding:"omitempty,max=255" example:"Jane Doe"`
}

// LoginRequest credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// TokenResponse bearer token plus the user it belongs to
type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a user with the default category set
// @Summary Register
// @Description Creates a user and seeds the default income and expense categories
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "registration"
// @Success 201 {object} Response{data=TokenResponse}
// @Failure 400 {object} Response
// @Failure 409 {object} Response "email already registered"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, TokenResponse{Token: token, User: *user})
}

// Login exchanges credentials for a token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=TokenResponse}
// @Failure 401 {object} Response "invalid email or password"
// @Failure 429 {object} Response "too many attempts"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, TokenResponse{Token: token, User: *user})
}

// Profile returns the current user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, user)
}

// DeleteProfile removes the current user and all of their data
// @Summary Delete current user
// @Description Deletes the user together with accounts, transactions, categories, debts and budgets
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /api/v1/auth/profile [delete]
func (h *AuthHandler) DeleteProfile(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), middleware.GetCurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	SuccessWithMessage(c, "user deleted", nil)
}
