package api

import (
	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: service.NewAnalyticsService(db)}
}

// Summary
// @Summary Income and expense totals
// @Description Week starts on Monday, month on the 1st, year on January 1st; the range ends today. Transfers are excluded.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month or year" default(month)
// @Success 200 {object} Response{data=service.Summary}
// @Failure 400 {object} Response
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	period := models.Period(c.DefaultQuery("period", string(models.PeriodMonth)))
	summary, err := h.analytics.Summary(c.Request.Context(), middleware.GetCurrentUserID(c), period)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, summary)
}

// ByCategory
// @Summary Totals per category
// @Description Largest first with each category's share of the total
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param type query string false "INCOME or EXPENSE" default(EXPENSE)
// @Param date_from query string false "YYYY-MM-DD, inclusive"
// @Param date_to query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} Response{data=[]service.CategoryBreakdown}
// @Failure 400 {object} Response
// @Router /api/v1/analytics/by-category [get]
func (h *AnalyticsHandler) ByCategory(c *gin.Context) {
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
	typ := models.CategoryType(c.DefaultQuery("type", string(models.CategoryTypeExpense)))

	rows, err := h.analytics.ByCategory(c.Request.Context(), middleware.GetCurrentUserID(c), typ, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, rows)
}

// Daily
// @Summary Per-day totals for a month
// @Description Days with no income or expense are omitted
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param month query int false "1-12, default current"
// @Param year query int false "default current"
// @Success 200 {object} Response{data=[]service.DailyTotal}
// @Failure 400 {object} Response
// @Router /api/v1/analytics/daily [get]
func (h *AnalyticsHandler) Daily(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	rows, err := h.analytics.Daily(c.Request.Context(), middleware.GetCurrentUserID(c), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, rows)
}
