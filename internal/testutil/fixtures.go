package testutil

import (
	"testing"

	"voxpense/internal/models"
	"voxpense/internal/uuid"

	"gorm.io/gorm"
)

// NewTestUserID returns a fresh user ID. There is no users table here;
// categories and transactions are scoped by an external identity.
func NewTestUserID() string {
	return uuid.New()
}

// CreateTestCategory creates an expense category for the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithOrigin(t, db, userID, name, models.CategoryOriginUser)
}

// CreateTestCategoryWithOrigin creates a category with an explicit origin.
func CreateTestCategoryWithOrigin(t *testing.T, db *gorm.DB, userID, name string, origin models.CategoryOrigin) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   models.CategoryTypeExpense,
		Origin: origin,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// InsertRawCategory writes a category row bypassing the BeforeSave hook's
// name folding so tests can simulate a corrupted taxonomy with duplicate
// names differing only by case.
func InsertRawCategory(t *testing.T, db *gorm.DB, userID, name, nameKey string) *models.Category {
	t.Helper()

	category := &models.Category{
		Base:    models.Base{ID: uuid.New()},
		UserID:  userID,
		Name:    name,
		NameKey: nameKey,
		Type:    models.CategoryTypeExpense,
		Origin:  models.CategoryOriginUser,
	}
	if err := db.Exec(
		"INSERT INTO categories (id, user_id, name, name_key, type, origin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		category.ID, userID, name, nameKey, category.Type, category.Origin,
	).Error; err != nil {
		t.Fatalf("failed to insert raw category: %v", err)
	}
	return category
}
