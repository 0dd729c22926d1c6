package service

import (
	"errors"
	"sort"

	"ledgerapi/logging"
	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceEngine is the only writer of Account.Balance.
// Every method runs on the caller's transaction handle and locks the account row
// (SELECT ... FOR UPDATE) before reading it, so concurrent writers of one account
// are serialized until the surrounding transaction ends.
type BalanceEngine struct{}

func NewBalanceEngine() *BalanceEngine {
	return &BalanceEngine{}
}

// Apply adds the effect of an INCOME (+amount) or EXPENSE (-amount) entry.
// TRANSFER is a no-op here; transfer legs use Credit/Debit.
func (e *BalanceEngine) Apply(tx *gorm.DB, accountID string, amount decimal.Decimal, typ models.TransactionType) error {
	return e.adjust(tx, accountID, amount.Mul(decimal.NewFromInt(int64(typ.Sign()))), false)
}

// Reverse undoes Apply. A missing account is not an error.
func (e *BalanceEngine) Reverse(tx *gorm.DB, accountID string, amount decimal.Decimal, typ models.TransactionType) error {
	return e.adjust(tx, accountID, amount.Mul(decimal.NewFromInt(int64(-typ.Sign()))), true)
}

// Credit increases the balance
func (e *BalanceEngine) Credit(tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	return e.adjust(tx, accountID, amount, false)
}

// Debit decreases the balance. Negative balances are allowed.
func (e *BalanceEngine) Debit(tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	return e.adjust(tx, accountID, amount.Neg(), false)
}

// ReverseLeg undoes the effect of one transfer leg. A missing account is not an error.
func (e *BalanceEngine) ReverseLeg(tx *gorm.DB, accountID string, amount decimal.Decimal, leg models.TransferLeg) error {
	return e.adjust(tx, accountID, amount.Mul(decimal.NewFromInt(int64(-leg.Sign()))), true)
}

// Lock loads the account with a row lock
func (e *BalanceEngine) Lock(tx *gorm.DB, accountID string) (*models.Account, error) {
	var account models.Account
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// LockAll locks the given accounts in id order so that two writers touching the
// same pair of accounts cannot deadlock. Missing accounts are skipped.
func (e *BalanceEngine) LockAll(tx *gorm.DB, accountIDs ...string) error {
	ids := make([]string, 0, len(accountIDs))
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := e.Lock(tx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func (e *BalanceEngine) adjust(tx *gorm.DB, accountID string, delta decimal.Decimal, missingOK bool) error {
	account, err := e.Lock(tx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if missingOK {
				return nil
			}
			return notFound("account not found")
		}
		return err
	}
	if delta.IsZero() {
		return nil
	}

	balance := account.Balance.Add(delta).Round(2)
	if err := tx.Model(account).UpdateColumn("balance", balance).Error; err != nil {
		return err
	}

	logging.Component("balance").WithField(logging.FieldAccountID, accountID).
		Debugf("balance %s -> %s", account.Balance.StringFixed(2), balance.StringFixed(2))
	return nil
}
