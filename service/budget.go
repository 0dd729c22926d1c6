package service

import (
	"context"
	"errors"

	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const overallBudgetLabel = "Overall"

// BudgetInput create request; CategoryID nil means a budget for the whole type
type BudgetInput struct {
	CategoryID    *string
	Type          models.CategoryType
	Month         int
	Year          int
	PlannedAmount decimal.Decimal
}

// BudgetComparison planned vs actual for one budget
type BudgetComparison struct {
	BudgetID     string          `json:"budget_id"`
	CategoryName string          `json:"category_name"`
	Planned      decimal.Decimal `json:"planned"`
	Actual       decimal.Decimal `json:"actual"`
	Percentage   float64         `json:"percentage"`
}

type BudgetService struct {
	db *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{db: db}
}

// Create adds a budget. A second budget for the same (category, type, month, year)
// is a Conflict, including the whole-type (no category) case.
func (s *BudgetService) Create(ctx context.Context, userID string, in BudgetInput) (*models.Budget, error) {
	if err := validatePeriod(in.Month, in.Year); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, invalid("type must be INCOME or EXPENSE")
	}
	if in.PlannedAmount.IsNegative() {
		return nil, invalid("planned amount cannot be negative")
	}

	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			if _, err := ownedCategory(tx, userID, *in.CategoryID); err != nil {
				return err
			}
		}

		query := tx.Model(&models.Budget{}).
			Where("user_id = ? AND type = ? AND month = ? AND year = ?", userID, in.Type, in.Month, in.Year)
		if in.CategoryID == nil {
			query = query.Where("category_id IS NULL")
		} else {
			query = query.Where("category_id = ?", *in.CategoryID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("budget for this category and period already exists")
		}

		budget = models.Budget{
			UserID:        userID,
			CategoryID:    in.CategoryID,
			Type:          in.Type,
			Month:         in.Month,
			Year:          in.Year,
			PlannedAmount: in.PlannedAmount.Round(2),
		}
		if err := tx.Create(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("budget for this category and period already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, budget.ID)
}

// List budgets of one month
func (s *BudgetService) List(ctx context.Context, userID string, month, year int) ([]models.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	list := make([]models.Budget, 0)
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("type ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&budget).Error; err != nil {
		return nil, notFoundOr(err, "budget not found")
	}
	return &budget, nil
}

// Update only the planned amount is mutable
func (s *BudgetService) Update(ctx context.Context, userID, id string, planned *decimal.Decimal) (*models.Budget, error) {
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if planned == nil {
		return budget, nil
	}
	if planned.IsNegative() {
		return nil, invalid("planned amount cannot be negative")
	}
	if err := s.db.WithContext(ctx).Model(&models.Budget{}).
		Where("id = ?", budget.ID).
		UpdateColumn("planned_amount", planned.Round(2)).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Budget{}, "id = ?", budget.ID).Error
}

// Compare returns planned vs actual for each budget of the month. EXPENSE budgets
// are measured against EXPENSE transactions, INCOME budgets against INCOME.
func (s *BudgetService) Compare(ctx context.Context, userID string, month, year int) ([]BudgetComparison, error) {
	budgets, err := s.List(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	first, next := MonthRange(month, year)

	result := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		query := s.db.WithContext(ctx).Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, b.Type.TransactionType(), first, next)
		if b.CategoryID != nil {
			query = query.Where("category_id = ?", *b.CategoryID)
		}
		var actual decimal.Decimal
		if err := query.Row().Scan(&actual); err != nil {
			return nil, err
		}

		name := overallBudgetLabel
		if b.Category != nil {
			name = b.Category.Name
		}
		result = append(result, BudgetComparison{
			BudgetID:     b.ID,
			CategoryName: name,
			Planned:      b.PlannedAmount.Round(2),
			Actual:       actual.Round(2),
			Percentage:   percentage(actual, b.PlannedAmount),
		})
	}
	return result, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return invalid("month must be between 1 and 12")
	}
	if year < 2000 {
		return invalid("year must be 2000 or later")
	}
	return nil
}
