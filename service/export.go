package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"ledgerapi/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheetName = "Transactions"

// ExportRow one exported transaction
type ExportRow struct {
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Account     string `csv:"account"`
	Category    string `csv:"category"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
	Description string `csv:"description"`
}

var exportHeaders = []string{"Date", "Type", "Account", "Category", "Amount", "Currency", "Description"}

// ExportService dumps the ledger as CSV or XLSX
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// Rows loads the user's transactions in [from, to], oldest first
func (s *ExportService) Rows(ctx context.Context, userID string, from, to models.Date) ([]ExportRow, decimal.Decimal, error) {
	if to.Before(from) {
		return nil, decimal.Zero, invalid("date_to must not be before date_from")
	}

	var txns []models.Transaction
	if err := s.db.WithContext(ctx).
		Preload("Account").
		Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, decimal.Zero, err
	}

	net := decimal.Zero
	rows := make([]ExportRow, 0, len(txns))
	for _, t := range txns {
		row := ExportRow{
			Date:   t.Date.String(),
			Type:   string(t.Type),
			Amount: t.Amount.StringFixed(2),
		}
		if t.Account != nil {
			row.Account = t.Account.Name
			row.Currency = t.Account.Currency
		}
		if t.Category != nil {
			row.Category = t.Category.Name
		}
		if t.Description != nil {
			row.Description = *t.Description
		}
		if t.Leg != "" {
			row.Type = fmt.Sprintf("%s_%s", t.Type, t.Leg)
		}
		rows = append(rows, row)
		net = net.Add(t.Amount.Mul(decimal.NewFromInt(int64(t.Type.Sign()))))
	}
	return rows, net, nil
}

// WriteCSV writes rows with a header line
func (s *ExportService) WriteCSV(w io.Writer, rows []ExportRow) error {
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w))); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX renders rows into a single-sheet workbook with a net total row
func (s *ExportService) WriteXLSX(rows []ExportRow, net decimal.Decimal) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})

	f.SetColWidth(exportSheetName, "A", "B", 14)
	f.SetColWidth(exportSheetName, "C", "D", 18)
	f.SetColWidth(exportSheetName, "E", "F", 12)
	f.SetColWidth(exportSheetName, "G", "G", 40)

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, err
	}
	f.SetCellStyle(exportSheetName, "A1", "G1", headerStyle)

	for i, r := range rows {
		amount, _ := decimal.NewFromString(r.Amount)
		values := []interface{}{r.Date, r.Type, r.Account, r.Category, amount.InexactFloat64(), r.Currency, r.Description}
		if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, err
		}
	}

	summaryRow := len(rows) + 2
	f.SetCellValue(exportSheetName, fmt.Sprintf("A%d", summaryRow), "Net")
	f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", summaryRow), net.InexactFloat64())
	f.SetCellValue(exportSheetName, fmt.Sprintf("G%d", summaryRow), fmt.Sprintf("%d records", len(rows)))
	f.SetCellStyle(exportSheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf, nil
}
