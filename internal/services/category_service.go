package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"gorm.io/gorm"

	apperrors "voxpense/internal/errors"
	"voxpense/internal/models"
)

// aiSuggestedMarker strips the decoration the UI appends to AI-suggested
// names, e.g. "Travel (AI Suggested)".
var aiSuggestedMarker = regexp.MustCompile(`(?i)\s*\(ai suggested\)\s*$`)

// closestHintMaxDistance bounds how far an edit-distance hint may be from
// the suggested name before it stops being useful.
const closestHintMaxDistance = 3

// categoryService handles category reconciliation and persistence.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. The (user_id, name_key) unique
// index is the backstop against near-simultaneous creations of the same
// name; a duplicate surfaces as ErrDuplicateCategory for the caller to
// recover from.
func (s *categoryService) CreateCategory(
	ctx context.Context,
	userID string,
	name string,
	categoryType models.CategoryType,
	origin models.CategoryOrigin,
) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType == "" {
		categoryType = models.CategoryTypeExpense
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Color:  colorFor(name),
		Origin: origin,
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateCategory, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListUserCategories returns every category the user owns. Reconciliation
// needs the full list (dedup looks at every row), so this is not paged.
func (s *categoryService) ListUserCategories(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// Reconcile decides whether a suggested category name reuses an existing
// record or requires creating one. It is pure over its inputs: the
// existing list is deduplicated by case-insensitive name (first occurrence
// wins) before matching, guarding against a duplicated taxonomy upstream.
func (s *categoryService) Reconcile(
	suggestedName string,
	aiSuggested bool,
	existing []models.Category,
) (*ReconciliationResult, error) {
	cleanName := strings.TrimSpace(aiSuggestedMarker.ReplaceAllString(suggestedName, ""))
	if cleanName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	deduped := dedupeByName(existing)

	for i := range deduped {
		if strings.EqualFold(deduped[i].Name, cleanName) {
			return &ReconciliationResult{
				Action:       ReconcileUseExisting,
				CategoryID:   deduped[i].ID,
				AIOriginated: aiSuggested,
			}, nil
		}
	}

	return &ReconciliationResult{
		Action:          ReconcileCreate,
		NameToCreate:    cleanName,
		AIOriginated:    aiSuggested,
		ClosestExisting: closestName(cleanName, deduped),
	}, nil
}

// ResolveCategory runs reconciliation against the user's current
// categories and ensures the resolved record exists, creating it when
// needed. If the create loses a race to another draft for the same name,
// the duplicate is collapsed by re-resolving against the refreshed list.
func (s *categoryService) ResolveCategory(
	ctx context.Context,
	userID string,
	suggestedName string,
	aiSuggested bool,
) (*models.Category, error) {
	existing, err := s.ListUserCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.Reconcile(suggestedName, aiSuggested, existing)
	if err != nil {
		return nil, err
	}

	if result.Action == ReconcileUseExisting {
		return s.getCategory(ctx, userID, result.CategoryID)
	}

	origin := models.CategoryOriginUser
	if result.AIOriginated {
		origin = models.CategoryOriginAI
	}

	category, err := s.CreateCategory(ctx, userID, result.NameToCreate, models.CategoryTypeExpense, origin)
	if err == nil {
		return category, nil
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrDuplicateCategory.Code {
		return nil, err
	}

	// Lost the creation race: someone else made this name first. Refresh
	// and re-reconcile; the name must match now.
	refreshed, err := s.ListUserCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	retry, err := s.Reconcile(result.NameToCreate, aiSuggested, refreshed)
	if err != nil {
		return nil, err
	}
	if retry.Action != ReconcileUseExisting {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "duplicate category vanished during reconciliation")
	}
	return s.getCategory(ctx, userID, retry.CategoryID)
}

func (s *categoryService) getCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrCategoryNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// dedupeByName removes duplicate categories by case-insensitive name,
// keeping the first occurrence.
func dedupeByName(categories []models.Category) []models.Category {
	seen := make(map[string]bool, len(categories))
	out := make([]models.Category, 0, len(categories))
	for i := range categories {
		key := models.FoldName(categories[i].Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, categories[i])
	}
	return out
}

// closestName returns the existing category name nearest to name by edit
// distance, or "" when nothing is close enough to mention.
func closestName(name string, categories []models.Category) string {
	best := ""
	bestDist := closestHintMaxDistance + 1
	folded := models.FoldName(name)
	for i := range categories {
		dist := levenshtein.ComputeDistance(folded, models.FoldName(categories[i].Name))
		if dist < bestDist {
			bestDist = dist
			best = categories[i].Name
		}
	}
	return best
}

// colorFor picks a stable color for a new category from a small palette.
func colorFor(name string) string {
	palette := []string{
		"#EF4444", "#F97316", "#EAB308", "#22C55E",
		"#06B6D4", "#3B82F6", "#8B5CF6", "#EC4899",
	}
	var sum int
	for _, r := range models.FoldName(name) {
		sum += int(r)
	}
	return palette[sum%len(palette)]
}
