package service

import (
	"context"
	"errors"
	"strings"

	"ledgerapi/logging"
	"ledgerapi/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput new user
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// UserService registration, credentials and account removal
type UserService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, categories: NewCategoryService(db)}
}

// Register creates the user and seeds the default categories in the same DB transaction
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("a valid email is required")
	}
	if len(in.Password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(in.FullName),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("email already registered")
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("email already registered")
			}
			return err
		}
		return s.categories.Seed(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	logging.Component("user").WithField(logging.FieldUserID, user.ID).Info("user registered")
	return &user, nil
}

// Authenticate checks credentials; any mismatch is ErrInvalidCredentials
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return &user, nil
}

// Delete removes the user and everything the user owns
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return notFoundOr(err, "user not found")
		}
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.Budget{},
			&models.Debt{},
			&models.Account{},
			&models.Category{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	logging.Component("user").WithField(logging.FieldUserID, id).Info("user deleted")
	return nil
}
