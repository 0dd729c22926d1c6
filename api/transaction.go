package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{transactions: service.NewTransactionService(db)}
}

// TransactionCreateRequest INCOME or EXPENSE entry; transfers use /transfers
type TransactionCreateRequest struct {
	AccountID   string                 `json:"account_id" binding:"required"`
	CategoryID  *string                `json:"category_id"`
	Type        models.TransactionType `json:"type" binding:"required,enum" example:"EXPENSE"`
	Amount      decimal.Decimal        `json:"amount" binding:"positive_decimal" swaggertype:"string" example:"25.50"`
	Description *string                `json:"description" binding:"omitempty,max=1000"`
	Date        models.Date            `json:"date" swaggertype:"string" example:"2024-05-01"`
}

// TransactionUpdateRequest absent fields are left unchanged
type TransactionUpdateRequest struct {
	AccountID   *string                 `json:"account_id" binding:"omitempty,min=1"`
	CategoryID  *string                 `json:"category_id"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,enum"`
	Amount      *decimal.Decimal        `json:"amount" binding:"omitempty,positive_decimal" swaggertype:"string"`
	Description *string                 `json:"description" binding:"omitempty,max=1000"`
	Date        *models.Date            `json:"date" swaggertype:"string"`
}

// List
// @Summary List transactions
// @Description Newest first. Filters combine with AND.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param date_from query string false "YYYY-MM-DD, inclusive"
// @Param date_to query string false "YYYY-MM-DD, inclusive"
// @Param category_id query string false "category"
// @Param account_id query string false "account"
// @Param type query string false "INCOME, EXPENSE or TRANSFER"
// @Param page query int false "page, from 1" default(1)
// @Param size query int false "page size, max 100" default(20)
// @Success 200 {object} Response{data=service.TransactionPage}
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	from, err := queryDate(c, "date_from")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	to, err := queryDate(c, "date_to")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	size, err := queryInt(c, "size", service.DefaultPageSize)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	typ := models.TransactionType(c.Query("type"))
	if typ != "" && !typ.Valid() {
		BadRequest(c, "type must be INCOME, EXPENSE or TRANSFER")
		return
	}

	result, err := h.transactions.List(c.Request.Context(), middleware.GetCurrentUserID(c), service.TransactionFilter{
		DateFrom:   from,
		DateTo:     to,
		CategoryID: c.Query("category_id"),
		AccountID:  c.Query("account_id"),
		Type:       typ,
	}, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// Create records income or expense and moves the account balance
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionCreateRequest true "transaction"
// @Success 201 {object} Response{data=models.Transaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response "account or category not found"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactions.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.TransactionInput{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, txn)
}

// Get
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.transactions.Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, txn)
}

// Update reverses the old balance effect and applies the new one.
// Transfer legs accept only description and category.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Param request body TransactionUpdateRequest true "fields to change"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	var req TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactions.Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.TransactionPatch{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, txn)
}

// Delete reverses the balance effect; deleting a transfer leg deletes both legs
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	SuccessWithMessage(c, "transaction deleted", nil)
}
