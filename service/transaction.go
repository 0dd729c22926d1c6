package service

import (
	"context"
	"errors"

	"ledgerapi/logging"
	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TransactionInput create request for INCOME/EXPENSE entries
type TransactionInput struct {
	AccountID   string
	CategoryID  *string
	Type        models.TransactionType
	Amount      decimal.Decimal
	Description *string
	Date        models.Date
}

// TransactionPatch partial update; nil fields are left unchanged
type TransactionPatch struct {
	AccountID   *string
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *models.Date
}

// TransactionFilter list filters; zero values mean no filter
type TransactionFilter struct {
	DateFrom   *models.Date
	DateTo     *models.Date
	CategoryID string
	Type       models.TransactionType
	AccountID  string
}

// TransactionPage one page of a filtered listing
type TransactionPage struct {
	Items []models.Transaction `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Size  int                  `json:"size"`
}

// TransactionService keeps transactions and account balances consistent.
// Each mutation runs in a single DB transaction together with its balance effect.
type TransactionService struct {
	db      *gorm.DB
	balance *BalanceEngine
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db, balance: NewBalanceEngine()}
}

// Create records an INCOME or EXPENSE entry and applies it to the account balance.
// Transfers are created through TransferService only.
func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if in.Type == models.TransactionTypeTransfer {
		return nil, invalid("transfers must be created through the transfer endpoint")
	}
	if !in.Type.Valid() {
		return nil, invalid("invalid transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return nil, invalid("date is required")
	}

	var created models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedAccount(tx, userID, in.AccountID); err != nil {
			return err
		}
		if in.CategoryID != nil {
			if _, err := ownedCategory(tx, userID, *in.CategoryID); err != nil {
				return err
			}
		}

		created = models.Transaction{
			UserID:      userID,
			AccountID:   in.AccountID,
			CategoryID:  in.CategoryID,
			Type:        in.Type,
			Amount:      in.Amount.Round(2),
			Description: in.Description,
			Date:        in.Date,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		return s.balance.Apply(tx, created.AccountID, created.Amount, created.Type)
	})
	if err != nil {
		return nil, err
	}

	s.log(userID, created.AccountID).Infof("transaction %s created (%s %s)", created.ID, created.Type, created.Amount.StringFixed(2))
	return s.Get(ctx, userID, created.ID)
}

// Get returns one transaction with its account and category
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Account").
		Where("id = ? AND user_id = ?", id, userID).
		First(&txn).Error; err != nil {
		return nil, notFoundOr(err, "transaction not found")
	}
	return &txn, nil
}

// List returns a page of the user's transactions, newest first
func (s *TransactionService) List(ctx context.Context, userID string, filter TransactionFilter, page, size int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.AccountID != "" {
		query = query.Where("account_id = ?", filter.AccountID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]models.Transaction, 0, size)
	if err := query.Session(&gorm.Session{}).
		Preload("Category").
		Preload("Account").
		Order("date DESC").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &TransactionPage{Items: items, Total: total, Page: page, Size: size}, nil
}

// Update patches a transaction. The old balance effect is reversed against the
// pre-patch account and the new effect applied against the post-patch account.
func (s *TransactionService) Update(ctx context.Context, userID, id string, patch TransactionPatch) (*models.Transaction, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
			return notFoundOr(err, "transaction not found")
		}

		if patch.CategoryID != nil {
			if _, err := ownedCategory(tx, userID, *patch.CategoryID); err != nil {
				return err
			}
		}

		if txn.IsTransfer() {
			return s.updateTransferLeg(tx, &txn, patch)
		}

		if patch.Type != nil {
			if *patch.Type == models.TransactionTypeTransfer {
				return invalid("cannot convert a transaction into a transfer")
			}
			if !patch.Type.Valid() {
				return invalid("invalid transaction type %q", *patch.Type)
			}
		}
		if patch.Amount != nil && !patch.Amount.IsPositive() {
			return invalid("amount must be greater than zero")
		}
		if patch.AccountID != nil && *patch.AccountID != txn.AccountID {
			if _, err := ownedAccount(tx, userID, *patch.AccountID); err != nil {
				return err
			}
		}

		targetAccountID := txn.AccountID
		if patch.AccountID != nil {
			targetAccountID = *patch.AccountID
		}
		if err := s.balance.LockAll(tx, txn.AccountID, targetAccountID); err != nil {
			return err
		}
		if err := s.balance.Reverse(tx, txn.AccountID, txn.Amount, txn.Type); err != nil {
			return err
		}

		if patch.AccountID != nil {
			txn.AccountID = *patch.AccountID
		}
		if patch.CategoryID != nil {
			txn.CategoryID = patch.CategoryID
		}
		if patch.Type != nil {
			txn.Type = *patch.Type
		}
		if patch.Amount != nil {
			txn.Amount = patch.Amount.Round(2)
		}
		if patch.Description != nil {
			txn.Description = patch.Description
		}
		if patch.Date != nil {
			txn.Date = *patch.Date
		}

		if err := tx.Model(&txn).Select("account_id", "category_id", "type", "amount", "description", "date").
			Updates(&txn).Error; err != nil {
			return err
		}
		return s.balance.Apply(tx, txn.AccountID, txn.Amount, txn.Type)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// updateTransferLeg only description and category may change on a transfer leg
func (s *TransactionService) updateTransferLeg(tx *gorm.DB, txn *models.Transaction, patch TransactionPatch) error {
	if patch.AccountID != nil || patch.Amount != nil || patch.Type != nil || patch.Date != nil {
		return invalid("only description and category can be changed on a transfer")
	}
	updates := map[string]interface{}{}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(txn).Updates(updates).Error
}

// Delete reverses and removes a transaction. Deleting either transfer leg
// removes the pair and reverses both balance effects.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
			return notFoundOr(err, "transaction not found")
		}

		if !txn.IsTransfer() {
			if err := s.balance.Reverse(tx, txn.AccountID, txn.Amount, txn.Type); err != nil {
				return err
			}
			return tx.Delete(&txn).Error
		}

		legs := []models.Transaction{txn}
		if txn.RelatedTransactionID != nil {
			var other models.Transaction
			err := tx.Where("id = ? AND user_id = ?", *txn.RelatedTransactionID, userID).First(&other).Error
			switch {
			case err == nil:
				legs = append(legs, other)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		accountIDs := make([]string, 0, len(legs))
		for _, leg := range legs {
			accountIDs = append(accountIDs, leg.AccountID)
		}
		if err := s.balance.LockAll(tx, accountIDs...); err != nil {
			return err
		}
		for i := range legs {
			if err := s.balance.ReverseLeg(tx, legs[i].AccountID, legs[i].Amount, legs[i].Leg); err != nil {
				return err
			}
		}
		for i := range legs {
			if err := tx.Delete(&legs[i]).Error; err != nil {
				return err
			}
		}

		s.log(userID, txn.AccountID).Infof("transfer %s deleted (%d legs)", txn.ID, len(legs))
		return nil
	})
}

func (s *TransactionService) log(userID, accountID string) *logrus.Entry {
	return logging.Component("transaction").WithFields(logrus.Fields{
		logging.FieldUserID:    userID,
		logging.FieldAccountID: accountID,
	})
}
