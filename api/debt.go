package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtHandler struct {
	debts *service.DebtService
}

func NewDebtHandler(db *gorm.DB) *DebtHandler {
	return &DebtHandler{debts: service.NewDebtService(db)}
}

// DebtCreateRequest DEBT is money the caller owes, RECEIVABLE money owed to the caller
type DebtCreateRequest struct {
	Type        models.DebtType `json:"type" binding:"required,enum" example:"DEBT"`
	PersonName  string          `json:"person_name" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"positive_decimal" swaggertype:"string" example:"150"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	Description *string         `json:"description" binding:"omitempty,max=1000"`
	DueDate     *models.Date    `json:"due_date" swaggertype:"string" example:"2024-06-01"`
}

type DebtUpdateRequest struct {
	PersonName  *string          `json:"person_name" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,positive_decimal" swaggertype:"string"`
	Currency    *string          `json:"currency" binding:"omitempty,len=3"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	DueDate     *models.Date     `json:"due_date" swaggertype:"string"`
}

// List
// @Summary List debts
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param type query string false "DEBT or RECEIVABLE"
// @Param status query string false "OPEN or CLOSED"
// @Success 200 {object} Response{data=[]models.Debt}
// @Router /api/v1/debts [get]
func (h *DebtHandler) List(c *gin.Context) {
	filter := service.DebtFilter{
		Type:   models.DebtType(c.Query("type")),
		Status: models.DebtStatus(c.Query("status")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		BadRequest(c, "type must be DEBT or RECEIVABLE")
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		BadRequest(c, "status must be OPEN or CLOSED")
		return
	}

	list, err := h.debts.List(c.Request.Context(), middleware.GetCurrentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, list)
}

// Create
// @Summary Create debt
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DebtCreateRequest true "debt"
// @Success 201 {object} Response{data=models.Debt}
// @Failure 400 {object} Response
// @Router /api/v1/debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	var req DebtCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	debt, err := h.debts.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.DebtInput{
		Type:        req.Type,
		PersonName:  req.PersonName,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, debt)
}

// Get
// @Summary Get debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path string true "debt id"
// @Success 200 {object} Response{data=models.Debt}
// @Failure 404 {object} Response
// @Router /api/v1/debts/{id} [get]
func (h *DebtHandler) Get(c *gin.Context) {
	debt, err := h.debts.Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, debt)
}

// Update
// @Summary Update debt
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "debt id"
// @Param request body DebtUpdateRequest true "fields to change"
// @Success 200 {object} Response{data=models.Debt}
// @Failure 404 {object} Response
// @Router /api/v1/debts/{id} [put]
func (h *DebtHandler) Update(c *gin.Context) {
	var req DebtUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	debt, err := h.debts.Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.DebtPatch{
		PersonName:  req.PersonName,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, debt)
}

// Close
// @Summary Close debt
// @Description OPEN to CLOSED. Closing an already closed debt is rejected.
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path string true "debt id"
// @Success 200 {object} Response{data=models.Debt}
// @Failure 400 {object} Response "already closed"
// @Failure 404 {object} Response
// @Router /api/v1/debts/{id}/close [patch]
func (h *DebtHandler) Close(c *gin.Context) {
	debt, err := h.debts.Close(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, debt)
}

// Delete
// @Summary Delete debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path string true "debt id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/debts/{id} [delete]
func (h *DebtHandler) Delete(c *gin.Context) {
	if err := h.debts.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	SuccessWithMessage(c, "debt deleted", nil)
}
