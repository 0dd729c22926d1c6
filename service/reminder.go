package service

import (
	"context"
	"time"

	"ledgerapi/logging"
	"ledgerapi/models"

	"gorm.io/gorm"
)

// ReminderService mails owners of OPEN debts that fall due within a window
type ReminderService struct {
	db    *gorm.DB
	debts *DebtService
	email *EmailService
	now   func() time.Time
}

func NewReminderService(db *gorm.DB, email *EmailService) *ReminderService {
	return &ReminderService{db: db, debts: NewDebtService(db), email: email, now: time.Now}
}

// Run sends one digest per user covering debts due within days from today
// (overdue ones included). Returns the number of mails sent.
func (s *ReminderService) Run(ctx context.Context, days int) (int, error) {
	if !s.email.Enabled() {
		return 0, ErrEmailDisabled
	}
	today := models.DateOf(s.now())
	due, err := s.debts.DueOpen(ctx, today.AddDays(days))
	if err != nil {
		return 0, err
	}

	byUser := make(map[string][]models.Debt)
	var order []string
	for _, d := range due {
		if _, ok := byUser[d.UserID]; !ok {
			order = append(order, d.UserID)
		}
		byUser[d.UserID] = append(byUser[d.UserID], d)
	}

	log := logging.Component("reminder")
	sent := 0
	for _, userID := range order {
		var user models.User
		if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
			log.WithError(err).WithField(logging.FieldUserID, userID).Warn("skip reminder, user not loaded")
			continue
		}
		if err := s.email.SendDebtReminder(user.Email, user.FullName, byUser[userID], today); err != nil {
			log.WithError(err).WithField(logging.FieldUserID, userID).Error("send reminder failed")
			continue
		}
		sent++
	}

	log.Infof("sent %d reminder(s) for %d due debt(s)", sent, len(due))
	return sent, nil
}
