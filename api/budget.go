package api

import (
	"time"

	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetHandler struct {
	budgets *service.BudgetService
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{budgets: service.NewBudgetService(db)}
}

// BudgetCreateRequest omit category_id to budget the whole type
type BudgetCreateRequest struct {
	CategoryID    *string             `json:"category_id"`
	Type          models.CategoryType `json:"type" binding:"required,enum" example:"EXPENSE"`
	Month         int                 `json:"month" binding:"required,min=1,max=12" example:"5"`
	Year          int                 `json:"year" binding:"required,min=2000" example:"2024"`
	PlannedAmount decimal.Decimal     `json:"planned_amount" binding:"nonnegative_decimal" swaggertype:"string" example:"500"`
}

type BudgetUpdateRequest struct {
	PlannedAmount *decimal.Decimal `json:"planned_amount" binding:"omitempty,nonnegative_decimal" swaggertype:"string"`
}

// monthYear reads ?month&year, defaulting to the current month
func monthYear(c *gin.Context) (int, int, error) {
	now := time.Now()
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

// List
// @Summary List budgets for a month
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param month query int false "1-12, default current"
// @Param year query int false "default current"
// @Success 200 {object} Response{data=[]models.Budget}
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	list, err := h.budgets.List(c.Request.Context(), middleware.GetCurrentUserID(c), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, list)
}

// Create
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetCreateRequest true "budget"
// @Success 201 {object} Response{data=models.Budget}
// @Failure 400 {object} Response
// @Failure 409 {object} Response "budget already exists for this category and month"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	budget, err := h.budgets.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.BudgetInput{
		CategoryID:    req.CategoryID,
		Type:          req.Type,
		Month:         req.Month,
		Year:          req.Year,
		PlannedAmount: req.PlannedAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, budget)
}

// Compare
// @Summary Budget vs actual
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param month query int false "1-12, default current"
// @Param year query int false "default current"
// @Success 200 {object} Response{data=[]service.BudgetComparison}
// @Router /api/v1/budgets/comparison [get]
func (h *BudgetHandler) Compare(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.budgets.Compare(c.Request.Context(), middleware.GetCurrentUserID(c), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// Update
// @Summary Update planned amount
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Param request body BudgetUpdateRequest true "planned amount"
// @Success 200 {object} Response{data=models.Budget}
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	var req BudgetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	budget, err := h.budgets.Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), req.PlannedAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, budget)
}

// Delete
// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.budgets.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	SuccessWithMessage(c, "budget deleted", nil)
}
