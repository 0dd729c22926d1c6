package service

import (
	"context"
	"errors"
	"strings"

	"ledgerapi/config"
	"ledgerapi/logging"
	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccountInput create request. Balance is the opening balance.
type AccountInput struct {
	Name     string
	Type     models.AccountType
	Currency string
	Balance  decimal.Decimal
	Color    *string
	Icon     *string
}

// AccountPatch partial update; balance is not patchable
type AccountPatch struct {
	Name     *string
	Type     *models.AccountType
	Currency *string
	Color    *string
	Icon     *string
}

// AccountService account CRUD
type AccountService struct {
	db      *gorm.DB
	balance *BalanceEngine
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db, balance: NewBalanceEngine()}
}

func (s *AccountService) Create(ctx context.Context, userID string, in AccountInput) (*models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("account name is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("invalid account type %q", in.Type)
	}
	currency := in.Currency
	if currency == "" {
		currency = config.DefaultCurrency()
	}

	account := models.Account{
		UserID:   userID,
		Name:     name,
		Type:     in.Type,
		Currency: currency,
		Balance:  in.Balance.Round(2),
		Color:    in.Color,
		Icon:     in.Icon,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) List(ctx context.Context, userID string) ([]models.Account, error) {
	list := make([]models.Account, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *AccountService) Get(ctx context.Context, userID, id string) (*models.Account, error) {
	return ownedAccount(s.db.WithContext(ctx), userID, id)
}

func (s *AccountService) Update(ctx context.Context, userID, id string, patch AccountPatch) (*models.Account, error) {
	account, err := ownedAccount(s.db.WithContext(ctx), userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("account name is required")
		}
		updates["name"] = name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, invalid("invalid account type %q", *patch.Type)
		}
		updates["type"] = *patch.Type
	}
	if patch.Currency != nil {
		updates["currency"] = *patch.Currency
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if len(updates) == 0 {
		return account, nil
	}

	if err := s.db.WithContext(ctx).Model(account).Updates(updates).Error; err != nil {
		return nil, err
	}
	return ownedAccount(s.db.WithContext(ctx), userID, id)
}

// Delete removes the account and its transactions. Transfer counterparts on
// other accounts are reversed and removed as well so no leg is left unpaired.
func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := ownedAccount(tx, userID, id)
		if err != nil {
			return err
		}
		if _, err := s.balance.Lock(tx, account.ID); err != nil {
			return err
		}

		var legs []models.Transaction
		if err := tx.Where("account_id = ? AND type = ? AND related_transaction_id IS NOT NULL",
			account.ID, models.TransactionTypeTransfer).Find(&legs).Error; err != nil {
			return err
		}
		for _, leg := range legs {
			var other models.Transaction
			err := tx.Where("id = ? AND account_id <> ?", *leg.RelatedTransactionID, account.ID).First(&other).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := s.balance.ReverseLeg(tx, other.AccountID, other.Amount, other.Leg); err != nil {
				return err
			}
			if err := tx.Delete(&other).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(account).Error; err != nil {
			return err
		}

		logging.Component("account").WithFields(logrus.Fields{
			logging.FieldUserID:    userID,
			logging.FieldAccountID: account.ID,
		}).Infof("account deleted with %d transfer legs unwound", len(legs))
		return nil
	})
}

// ownedAccount loads an account belonging to userID
func ownedAccount(tx *gorm.DB, userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		return nil, notFoundOr(err, "account not found")
	}
	return &account, nil
}
