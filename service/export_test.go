package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedExport(t *testing.T) (*ExportService, string) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "export@example.com")
	a := createAccount(t, db, user.ID, "Card", 0)
	b := createAccount(t, db, user.ID, "Cash", 0)
	food := findCategory(t, db, user.ID, "Food", models.CategoryTypeExpense)
	txns := NewTransactionService(db)

	_, err := txns.Create(ctx, user.ID, TransactionInput{
		AccountID: a.ID, Type: models.TransactionTypeIncome, Amount: amount("100"), Date: date("2024-02-01"),
	})
	require.NoError(t, err)
	_, err = txns.Create(ctx, user.ID, TransactionInput{
		AccountID: a.ID, CategoryID: &food.ID, Type: models.TransactionTypeExpense, Amount: amount("30.5"),
		Date: date("2024-02-03"), Description: strPtr("groceries, weekly"),
	})
	require.NoError(t, err)
	_, err = NewTransferService(db).Transfer(ctx, user.ID, TransferInput{
		FromAccountID: a.ID, ToAccountID: b.ID, Amount: amount("20"), Date: date("2024-02-05"),
	})
	require.NoError(t, err)
	_, err = txns.Create(ctx, user.ID, TransactionInput{
		AccountID: a.ID, Type: models.TransactionTypeIncome, Amount: amount("999"), Date: date("2024-03-01"),
	})
	require.NoError(t, err)

	return NewExportService(db), user.ID
}

func TestExportService_Rows(t *testing.T) {
	svc, userID := seedExport(t)

	rows, net, err := svc.Rows(context.Background(), userID, date("2024-02-01"), date("2024-02-29"))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "69.50", net.StringFixed(2))

	assert.Equal(t, "2024-02-01", rows[0].Date)
	assert.Equal(t, "INCOME", rows[0].Type)
	assert.Equal(t, "Card", rows[0].Account)
	assert.Equal(t, "Food", rows[1].Category)
	assert.Equal(t, "30.50", rows[1].Amount)

	var legs []string
	for _, r := range rows[2:] {
		legs = append(legs, r.Type)
	}
	assert.ElementsMatch(t, []string{"TRANSFER_OUT", "TRANSFER_IN"}, legs)

	_, _, err = svc.Rows(context.Background(), userID, date("2024-03-01"), date("2024-02-01"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestExportService_WriteCSV(t *testing.T) {
	svc, userID := seedExport(t)
	rows, _, err := svc.Rows(context.Background(), userID, date("2024-02-01"), date("2024-02-03"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,type,account,category,amount,currency,description", lines[0])
	assert.Equal(t, `2024-02-03,EXPENSE,Card,Food,30.50,UZS,"groceries, weekly"`, lines[2])
}

func TestExportService_WriteXLSX(t *testing.T) {
	svc, userID := seedExport(t)
	rows, net, err := svc.Rows(context.Background(), userID, date("2024-02-01"), date("2024-02-29"))
	require.NoError(t, err)

	buf, err := svc.WriteXLSX(rows, net)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	category, err := f.GetCellValue(exportSheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "Food", category)

	label, err := f.GetCellValue(exportSheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Net", label)
	records, err := f.GetCellValue(exportSheetName, "G6")
	require.NoError(t, err)
	assert.Equal(t, "4 records", records)
}
