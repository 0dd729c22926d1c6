package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"ledgerapi/config"
	"ledgerapi/models"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled returned when email.enabled is false
var ErrEmailDisabled = errors.New("email service disabled, set LEDGER_EMAIL_ENABLED=true")

// EmailService SMTP mail through gomail
type EmailService struct {
	cfg  *config.EmailConfig
	send func(to, subject, body string) error
}

// NewEmailService creates the mail sender
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.sendEmail
	return s
}

// Enabled reports whether sending is configured
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendDebtReminder mails one user a digest of open debts that are due soon or overdue
func (s *EmailService) SendDebtReminder(toEmail, fullName string, debts []models.Debt, today models.Date) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	if len(debts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[Ledger] %d debt(s) due soon", len(debts))
	body := s.generateDebtReminderBody(fullName, debts, today)

	return s.send(toEmail, subject, body)
}

// generateDebtReminderBody builds the reminder HTML
func (s *EmailService) generateDebtReminderBody(fullName string, debts []models.Debt, today models.Date) string {
	if fullName == "" {
		fullName = "there"
	}

	var rows strings.Builder
	for _, d := range debts {
		direction := "You owe"
		if d.Type == models.DebtTypeReceivable {
			direction = "Owes you"
		}
		due := "-"
		status := ""
		if d.DueDate != nil {
			due = d.DueDate.String()
			if d.DueDate.Before(today) {
				status = ` <span class="overdue">overdue</span>`
			}
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s %s</td><td>%s%s</td></tr>\n",
			direction,
			html.EscapeString(d.PersonName),
			d.Amount.StringFixed(2),
			html.EscapeString(d.Currency),
			due,
			status,
		)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid #e5e7eb; }
        .overdue { color: #dc2626; font-weight: 600; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Ledger</h1>
        </div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>The following debts are open and due by %s:</p>
            <table>
                <tr><th></th><th>Person</th><th>Amount</th><th>Due</th></tr>
                %s
            </table>
        </div>
        <div class="footer">
            <p>This message was sent automatically, please do not reply</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(fullName), today.String(), rows.String())
}

// sendEmail sends one HTML message
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// SendTestEmail verifies SMTP settings
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	subject := "[Ledger] SMTP configuration test"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Email is configured</h2>
    <p>If you received this message, the mail settings are correct.</p>
</body>
</html>
`
	return s.send(toEmail, subject, body)
}
