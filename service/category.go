package service

import (
	"context"
	"strings"

	"ledgerapi/models"

	"gorm.io/gorm"
)

// DefaultCategory catalog entry seeded for every new user
type DefaultCategory struct {
	Name  string
	Icon  string
	Color string
}

// DefaultExpenseCategories seeded expense categories
var DefaultExpenseCategories = []DefaultCategory{
	{"Food", "restaurant", "#FF6B6B"},
	{"Transport", "directions-car", "#4ECDC4"},
	{"Shopping", "shopping-bag", "#45B7D1"},
	{"Bills", "receipt", "#96CEB4"},
	{"Health", "local-hospital", "#FFEAA7"},
	{"Entertainment", "movie", "#DDA0DD"},
	{"Education", "school", "#98D8C8"},
	{"Other", "more-horiz", "#B0BEC5"},
}

// DefaultIncomeCategories seeded income categories
var DefaultIncomeCategories = []DefaultCategory{
	{"Salary", "work", "#2ECC71"},
	{"Freelance", "laptop", "#3498DB"},
	{"Gift", "card-giftcard", "#E74C3C"},
	{"Investment", "trending-up", "#9B59B6"},
	{"Other", "more-horiz", "#B0BEC5"},
}

// CategoryInput create request
type CategoryInput struct {
	Name  string
	Type  models.CategoryType
	Icon  *string
	Color *string
}

// CategoryService per-user categories
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Seed inserts the default catalog for userID on the given handle (usually the registration transaction)
func (s *CategoryService) Seed(tx *gorm.DB, userID string) error {
	cats := make([]models.Category, 0, len(DefaultExpenseCategories)+len(DefaultIncomeCategories))
	add := func(defs []DefaultCategory, typ models.CategoryType) {
		for _, d := range defs {
			icon, color := d.Icon, d.Color
			uid := userID
			cats = append(cats, models.Category{
				UserID:    &uid,
				Name:      d.Name,
				Type:      typ,
				Icon:      &icon,
				Color:     &color,
				IsDefault: true,
			})
		}
	}
	add(DefaultExpenseCategories, models.CategoryTypeExpense)
	add(DefaultIncomeCategories, models.CategoryTypeIncome)

	return tx.Create(&cats).Error
}

// List returns the user's categories, defaults first, optionally filtered by type
func (s *CategoryService) List(ctx context.Context, userID string, typ *models.CategoryType) ([]models.Category, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if typ != nil {
		query = query.Where("type = ?", *typ)
	}

	list := make([]models.Category, 0)
	if err := query.Order("is_default DESC").Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create adds a custom (non-default) category
func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("category name is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("invalid category type %q", in.Type)
	}

	cat := models.Category{
		UserID:    &userID,
		Name:      name,
		Type:      in.Type,
		Icon:      in.Icon,
		Color:     in.Color,
		IsDefault: false,
	}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ownedCategory loads a category belonging to userID
func ownedCategory(tx *gorm.DB, userID, categoryID string) (*models.Category, error) {
	var cat models.Category
	if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&cat).Error; err != nil {
		return nil, notFoundOr(err, "category not found")
	}
	return &cat, nil
}
