package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{accounts: service.NewAccountService(db)}
}

// AccountCreateRequest balance is the opening balance and may be negative (e.g. a credit card)
type AccountCreateRequest struct {
	Name     string             `json:"name" binding:"required,max=255" example:"Visa"`
	Type     models.AccountType `json:"type" binding:"required,enum" example:"CARD"`
	Currency string             `json:"currency" binding:"omitempty,len=3" example:"UZS"`
	Balance  decimal.Decimal    `json:"balance" swaggertype:"string" example:"0"`
	Color    *string            `json:"color" binding:"omitempty,max=7" example:"#2563eb"`
	Icon     *string            `json:"icon" binding:"omitempty,max=50"`
}

// AccountUpdateRequest balance is not editable; it only moves through transactions
type AccountUpdateRequest struct {
	Name     *string             `json:"name" binding:"omitempty,min=1,max=255"`
	Type     *models.AccountType `json:"type" binding:"omitempty,enum"`
	Currency *string             `json:"currency" binding:"omitempty,len=3"`
	Color    *string             `json:"color" binding:"omitempty,max=7"`
	Icon     *string             `json:"icon" binding:"omitempty,max=50"`
}

// List
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Account}
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	list, err := h.accounts.List(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, list)
}

// Create
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AccountCreateRequest true "account"
// @Success 201 {object} Response{data=models.Account}
// @Failure 400 {object} Response
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.AccountInput{
		Name:     req.Name,
		Type:     req.Type,
		Currency: req.Currency,
		Balance:  req.Balance,
		Color:    req.Color,
		Icon:     req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, account)
}

// Get
// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "account id"
// @Success 200 {object} Response{data=models.Account}
// @Failure 404 {object} Response
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, account)
}

// Update
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "account id"
// @Param request body AccountUpdateRequest true "fields to change"
// @Success 200 {object} Response{data=models.Account}
// @Failure 404 {object} Response
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accounts.Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.AccountPatch{
		Name:     req.Name,
		Type:     req.Type,
		Currency: req.Currency,
		Color:    req.Color,
		Icon:     req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, account)
}

// Delete removes the account, its transactions and the far side of its transfers
// @Summary Delete account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "account id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	SuccessWithMessage(c, "account deleted", nil)
}
