package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// CategoryOrigin records where a category name came from. AI-originated
// categories were accepted from a classifier suggestion rather than typed
// by the user.
type CategoryOrigin string

const (
	CategoryOriginUser CategoryOrigin = "user"
	CategoryOriginAI   CategoryOrigin = "ai"
)

// Category represents a transaction category. Names are unique per user
// case-insensitively: NameKey holds the folded form and carries the
// composite uniqueness constraint that backs reconciliation.
type Category struct {
	Base
	UserID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_key" json:"user_id"`
	Name    string         `gorm:"not null" json:"name"`
	NameKey string         `gorm:"not null;uniqueIndex:idx_categories_user_name_key" json:"-"`
	Type    CategoryType   `gorm:"not null" json:"type"`
	Color   string         `json:"color"`
	Icon    string         `json:"icon"`
	Origin  CategoryOrigin `gorm:"not null;default:user" json:"origin"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// FoldName normalizes a category name for case-insensitive comparison.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps NameKey in sync with Name.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.NameKey = FoldName(c.Name)
	return nil
}
