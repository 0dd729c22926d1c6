package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerapi/config"
	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderService_Run(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	jane := createUser(t, db, "jane@example.com")
	bob := createUser(t, db, "bob@example.com")
	carl := createUser(t, db, "carl@example.com")
	debts := NewDebtService(db)

	mk := func(userID, name, due string) {
		d := date(due)
		_, err := debts.Create(ctx, userID, DebtInput{Type: models.DebtTypeDebt, PersonName: name, Amount: amount("5"), DueDate: &d})
		require.NoError(t, err)
	}
	mk(jane.ID, "overdue", "2024-05-01")
	mk(jane.ID, "soon", "2024-05-12")
	mk(bob.ID, "soon", "2024-05-13")
	mk(carl.ID, "later", "2024-07-01")

	email := NewEmailService(&config.EmailConfig{Enabled: true})
	sent := map[string]int{}
	email.send = func(to, subject, body string) error {
		sent[to]++
		if to == "bob@example.com" {
			return errors.New("mailbox full")
		}
		return nil
	}

	svc := NewReminderService(db, email)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }

	n, err := svc.Run(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[string]int{"jane@example.com": 1, "bob@example.com": 1}, sent)
}

func TestReminderService_Disabled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReminderService(db, NewEmailService(&config.EmailConfig{}))

	_, err := svc.Run(context.Background(), 3)
	assert.ErrorIs(t, err, ErrEmailDisabled)
}
