package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"ledgerapi/middleware"
	"ledgerapi/models"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{exports: service.NewExportService(db)}
}

// loadRows reads ?date_from&date_to (default: first of this month to today) and loads the rows
func (h *ExportHandler) loadRows(c *gin.Context) ([]service.ExportRow, decimal.Decimal, models.Date, models.Date, bool) {
	today := models.DateOf(time.Now())
	from := models.NewDate(today.Year(), today.Month(), 1)
	to := today

	if d, err := queryDate(c, "date_from"); err != nil {
		BadRequest(c, err.Error())
		return nil, decimal.Zero, from, to, false
	} else if d != nil {
		from = *d
	}
	if d, err := queryDate(c, "date_to"); err != nil {
		BadRequest(c, err.Error())
		return nil, decimal.Zero, from, to, false
	} else if d != nil {
		to = *d
	}

	rows, net, err := h.exports.Rows(c.Request.Context(), middleware.GetCurrentUserID(c), from, to)
	if err != nil {
		respondError(c, err)
		return nil, decimal.Zero, from, to, false
	}
	return rows, net, from, to, true
}

// CSV
// @Summary Export transactions as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param date_from query string false "YYYY-MM-DD, default first of this month"
// @Param date_to query string false "YYYY-MM-DD, default today"
// @Success 200 {file} file
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	rows, _, from, to, ok := h.loadRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exports.WriteCSV(&buf, rows); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", from, to)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX
// @Summary Export transactions as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param date_from query string false "YYYY-MM-DD, default first of this month"
// @Param date_to query string false "YYYY-MM-DD, default today"
// @Success 200 {file} file
// @Router /api/v1/export/xlsx [get]
func (h *ExportHandler) XLSX(c *gin.Context) {
	rows, net, from, to, ok := h.loadRows(c)
	if !ok {
		return
	}

	buf, err := h.exports.WriteXLSX(rows, net)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", from, to)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
