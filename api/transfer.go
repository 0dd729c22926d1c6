package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferHandler struct {
	transfers *service.TransferService
}

func NewTransferHandler(db *gorm.DB) *TransferHandler {
	return &TransferHandler{transfers: service.NewTransferService(db)}
}

// TransferRequest move money between two of the caller's accounts
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id" binding:"required"`
	ToAccountID   string          `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"positive_decimal" swaggertype:"string" example:"100"`
	Date          models.Date     `json:"date" swaggertype:"string" example:"2024-05-01"`
	Description   *string         `json:"description" binding:"omitempty,max=1000"`
}

// Create
// @Summary Transfer between accounts
// @Description Writes an OUT leg and an IN leg linked to each other and moves both balances atomically
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "transfer"
// @Success 201 {object} Response{data=service.TransferResult}
// @Failure 400 {object} Response "same account or bad amount"
// @Failure 404 {object} Response "source or destination account not found"
// @Router /api/v1/transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.transfers.Transfer(c.Request.Context(), middleware.GetCurrentUserID(c), service.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, result)
}
