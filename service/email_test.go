package service

import (
	"testing"

	"ledgerapi/config"
	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService(enabled bool) *EmailService {
	return NewEmailService(&config.EmailConfig{Enabled: enabled})
}

func TestGenerateDebtReminderBody(t *testing.T) {
	s := newTestEmailService(true)
	past := date("2024-05-01")
	future := date("2024-05-20")
	debts := []models.Debt{
		{Type: models.DebtTypeDebt, PersonName: "Ali <shop>", Amount: amount("12.5"), Currency: "UZS", DueDate: &past},
		{Type: models.DebtTypeReceivable, PersonName: "Bob", Amount: amount("40"), Currency: "USD", DueDate: &future},
	}

	body := s.generateDebtReminderBody("Jane", debts, date("2024-05-10"))
	assert.Contains(t, body, "Hi <strong>Jane</strong>")
	assert.Contains(t, body, "You owe")
	assert.Contains(t, body, "Owes you")
	assert.Contains(t, body, "Ali &lt;shop&gt;")
	assert.Contains(t, body, "12.50 UZS")
	assert.Contains(t, body, "2024-05-01 <span class=\"overdue\">overdue</span>")
	assert.NotContains(t, body, "2024-05-20 <span")

	anon := s.generateDebtReminderBody("", debts[:1], date("2024-05-10"))
	assert.Contains(t, anon, "Hi <strong>there</strong>")
}

func TestSendDebtReminder(t *testing.T) {
	s := newTestEmailService(true)
	var to, subject string
	s.send = func(addr, subj, body string) error {
		to, subject = addr, subj
		return nil
	}

	require.NoError(t, s.SendDebtReminder("jane@example.com", "Jane", nil, date("2024-05-10")))
	assert.Empty(t, to)

	due := date("2024-05-11")
	debts := []models.Debt{{Type: models.DebtTypeDebt, PersonName: "Ali", Amount: amount("1"), DueDate: &due}}
	require.NoError(t, s.SendDebtReminder("jane@example.com", "Jane", debts, date("2024-05-10")))
	assert.Equal(t, "jane@example.com", to)
	assert.Equal(t, "[Ledger] 1 debt(s) due soon", subject)
}

func TestEmailDisabled(t *testing.T) {
	s := newTestEmailService(false)
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.SendTestEmail("a@example.com"), ErrEmailDisabled)
	assert.ErrorIs(t, s.SendDebtReminder("a@example.com", "", nil, date("2024-01-01")), ErrEmailDisabled)

	assert.False(t, NewEmailService(nil).Enabled())
}
