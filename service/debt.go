package service

import (
	"context"
	"strings"

	"ledgerapi/config"
	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtInput create request
type DebtInput struct {
	Type        models.DebtType
	PersonName  string
	Amount      decimal.Decimal
	Currency    string
	Description *string
	DueDate     *models.Date
}

// DebtPatch partial update; status changes go through Close
type DebtPatch struct {
	PersonName  *string
	Amount      *decimal.Decimal
	Currency    *string
	Description *string
	DueDate     *models.Date
}

// DebtFilter optional list filters
type DebtFilter struct {
	Type   models.DebtType
	Status models.DebtStatus
}

type DebtService struct {
	db *gorm.DB
}

func NewDebtService(db *gorm.DB) *DebtService {
	return &DebtService{db: db}
}

func (s *DebtService) Create(ctx context.Context, userID string, in DebtInput) (*models.Debt, error) {
	if !in.Type.Valid() {
		return nil, invalid("type must be DEBT or RECEIVABLE")
	}
	name := strings.TrimSpace(in.PersonName)
	if name == "" {
		return nil, invalid("person name is required")
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}
	currency := in.Currency
	if currency == "" {
		currency = config.DefaultCurrency()
	}

	debt := models.Debt{
		UserID:      userID,
		Type:        in.Type,
		PersonName:  name,
		Amount:      in.Amount.Round(2),
		Currency:    currency,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      models.DebtStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&debt).Error; err != nil {
		return nil, err
	}
	return &debt, nil
}

// List newest first
func (s *DebtService) List(ctx context.Context, userID string, filter DebtFilter) ([]models.Debt, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	list := make([]models.Debt, 0)
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *DebtService) Get(ctx context.Context, userID, id string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
		return nil, notFoundOr(err, "debt not found")
	}
	return &debt, nil
}

func (s *DebtService) Update(ctx context.Context, userID, id string, patch DebtPatch) (*models.Debt, error) {
	debt, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.PersonName != nil {
		name := strings.TrimSpace(*patch.PersonName)
		if name == "" {
			return nil, invalid("person name is required")
		}
		updates["person_name"] = name
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, invalid("amount must be greater than zero")
		}
		updates["amount"] = patch.Amount.Round(2)
	}
	if patch.Currency != nil {
		updates["currency"] = *patch.Currency
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if len(updates) == 0 {
		return debt, nil
	}

	if err := s.db.WithContext(ctx).Model(debt).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Close marks an OPEN debt CLOSED. Closing is one-way.
func (s *DebtService) Close(ctx context.Context, userID, id string) (*models.Debt, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var debt models.Debt
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
			return notFoundOr(err, "debt not found")
		}
		if debt.Status == models.DebtStatusClosed {
			return invalid("debt is already closed")
		}
		// conditional update keeps a concurrent close from succeeding twice
		res := tx.Model(&models.Debt{}).
			Where("id = ? AND status = ?", debt.ID, models.DebtStatusOpen).
			UpdateColumn("status", models.DebtStatusClosed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalid("debt is already closed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *DebtService) Delete(ctx context.Context, userID, id string) error {
	debt, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Debt{}, "id = ?", debt.ID).Error
}

// DueOpen returns OPEN debts of all users due on or before the given date, soonest first
func (s *DebtService) DueOpen(ctx context.Context, until models.Date) ([]models.Debt, error) {
	list := make([]models.Debt, 0)
	if err := s.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date <= ?", models.DebtStatusOpen, until).
		Order("user_id ASC").
		Order("due_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
