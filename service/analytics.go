package service

import (
	"context"
	"time"

	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Summary income and expense totals over a period ending today
type Summary struct {
	Period       models.Period   `json:"period"`
	DateFrom     models.Date     `json:"date_from"`
	DateTo       models.Date     `json:"date_to"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryBreakdown one category's share of a type's total
type CategoryBreakdown struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor *string         `json:"category_color"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    float64         `json:"percentage"`
}

// DailyTotal income and expense for one calendar day
type DailyTotal struct {
	Date    models.Date     `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type periodTotals struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// AnalyticsService read-only aggregates over the ledger. Transfers never count as income or expense.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// WithClock overrides "today", for tests and reproducible reports
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// PeriodRange returns [start, today] for the period: week starts on Monday,
// month on the 1st, year on January 1st.
func PeriodRange(period models.Period, today models.Date) (models.Date, models.Date) {
	switch period {
	case models.PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDays(-offset), today
	case models.PeriodYear:
		return models.NewDate(today.Year(), time.January, 1), today
	default:
		return models.NewDate(today.Year(), today.Month(), 1), today
	}
}

// MonthRange returns the first day of the month and the first day of the next month
func MonthRange(month, year int) (models.Date, models.Date) {
	first := models.NewDate(year, time.Month(month), 1)
	return first, models.DateOf(first.AddDate(0, 1, 0))
}

func (s *AnalyticsService) Summary(ctx context.Context, userID string, period models.Period) (*Summary, error) {
	if period == "" {
		period = models.PeriodMonth
	}
	if !period.Valid() {
		return nil, invalid("period must be week, month or year")
	}
	from, to := PeriodRange(period, models.DateOf(s.now()))

	var row periodTotals
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense",
			models.TransactionTypeIncome, models.TransactionTypeExpense).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Where("type IN ?", []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense}).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &Summary{
		Period:       period,
		DateFrom:     from,
		DateTo:       to,
		TotalIncome:  row.TotalIncome.Round(2),
		TotalExpense: row.TotalExpense.Round(2),
		Balance:      row.TotalIncome.Sub(row.TotalExpense).Round(2),
	}, nil
}

// ByCategory groups one transaction type by category, largest first.
// Uncategorized transactions are not included.
func (s *AnalyticsService) ByCategory(ctx context.Context, userID string, typ models.CategoryType, dateFrom, dateTo *models.Date) ([]CategoryBreakdown, error) {
	if !typ.Valid() {
		return nil, invalid("type must be INCOME or EXPENSE")
	}

	query := s.db.WithContext(ctx).Table("transactions").
		Select("categories.id AS category_id, categories.name AS category_name, "+
			"categories.color AS category_color, SUM(transactions.amount) AS amount").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ?", userID, typ.TransactionType())
	if dateFrom != nil {
		query = query.Where("transactions.date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("transactions.date <= ?", *dateTo)
	}

	rows := make([]CategoryBreakdown, 0)
	if err := query.
		Group("categories.id, categories.name, categories.color").
		Order("SUM(transactions.amount) DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
		rows[i].Percentage = percentage(rows[i].Amount, total)
	}
	return rows, nil
}

// Daily per-day totals for a month; days without income or expense are omitted
func (s *AnalyticsService) Daily(ctx context.Context, userID string, month, year int) ([]DailyTotal, error) {
	if month < 1 || month > 12 {
		return nil, invalid("month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, invalid("year must be 2000 or later")
	}
	first, next := MonthRange(month, year)

	rows := make([]DailyTotal, 0)
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("date, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense",
			models.TransactionTypeIncome, models.TransactionTypeExpense).
		Where("user_id = ? AND date >= ? AND date < ?", userID, first, next).
		Where("type IN ?", []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense}).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Income = rows[i].Income.Round(2)
		rows[i].Expense = rows[i].Expense.Round(2)
	}
	return rows, nil
}

// percentage part/whole*100 to one decimal place; 0 when whole is not positive
func percentage(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(1).InexactFloat64()
}
