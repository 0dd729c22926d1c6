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
	defaultTransferOutDescription = "Transfer out"
	defaultTransferInDescription  = "Transfer in"
)

// TransferInput moves Amount from one of the user's accounts to another
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Date          models.Date
	Description   *string
}

// TransferResult both legs of a completed transfer
type TransferResult struct {
	Outgoing models.Transaction `json:"outgoing"`
	Incoming models.Transaction `json:"incoming"`
}

// TransferService writes a transfer as two linked TRANSFER rows plus both
// balance adjustments, all in one DB transaction.
type TransferService struct {
	db      *gorm.DB
	balance *BalanceEngine
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{db: db, balance: NewBalanceEngine()}
}

func (s *TransferService) Transfer(ctx context.Context, userID string, in TransferInput) (*TransferResult, error) {
	if in.FromAccountID == in.ToAccountID {
		return nil, invalid("cannot transfer to the same account")
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return nil, invalid("date is required")
	}
	amount := in.Amount.Round(2)

	var out, inc models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.balance.LockAll(tx, in.FromAccountID, in.ToAccountID); err != nil {
			return err
		}
		if _, err := ownedAccount(tx, userID, in.FromAccountID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFound("source account not found")
			}
			return err
		}
		if _, err := ownedAccount(tx, userID, in.ToAccountID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFound("destination account not found")
			}
			return err
		}

		out = models.Transaction{
			UserID:      userID,
			AccountID:   in.FromAccountID,
			Type:        models.TransactionTypeTransfer,
			Amount:      amount,
			Description: describe(in.Description, defaultTransferOutDescription),
			Date:        in.Date,
			Leg:         models.TransferLegOut,
		}
		inc = models.Transaction{
			UserID:      userID,
			AccountID:   in.ToAccountID,
			Type:        models.TransactionTypeTransfer,
			Amount:      amount,
			Description: describe(in.Description, defaultTransferInDescription),
			Date:        in.Date,
			Leg:         models.TransferLegIn,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}
		if err := tx.Create(&inc).Error; err != nil {
			return err
		}

		// link both legs
		if err := tx.Model(&out).UpdateColumn("related_transaction_id", inc.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&inc).UpdateColumn("related_transaction_id", out.ID).Error; err != nil {
			return err
		}
		out.RelatedTransactionID = &inc.ID
		inc.RelatedTransactionID = &out.ID

		if err := s.balance.Debit(tx, in.FromAccountID, amount); err != nil {
			return err
		}
		return s.balance.Credit(tx, in.ToAccountID, amount)
	})
	if err != nil {
		return nil, err
	}

	logging.Component("transfer").WithFields(logrus.Fields{
		logging.FieldUserID: userID,
		"from":              in.FromAccountID,
		"to":                in.ToAccountID,
	}).Infof("transfer of %s completed", amount.StringFixed(2))

	result := &TransferResult{}
	if err := s.db.WithContext(ctx).Preload("Account").Where("id = ?", out.ID).First(&result.Outgoing).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Account").Where("id = ?", inc.ID).First(&result.Incoming).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func describe(description *string, fallback string) *string {
	if description != nil && *description != "" {
		d := *description
		return &d
	}
	return &fallback
}
