package services

import (
	"context"
	"time"

	"voxpense/internal/categorizer"
	"voxpense/internal/models"
	"voxpense/internal/money"
)

// Categorizer is the remote "categorize text" collaborator. The
// orchestrator treats every error from it as recoverable and falls back
// to the keyword classifier.
type Categorizer interface {
	Categorize(ctx context.Context, text string) (categorizer.Suggestion, error)
}

// ReconcileAction says whether a suggested name binds to an existing
// category or requires creating one.
type ReconcileAction string

const (
	ReconcileUseExisting ReconcileAction = "use-existing"
	ReconcileCreate      ReconcileAction = "create"
)

// ReconciliationResult is the reconciler's decision for a suggested
// category name.
type ReconciliationResult struct {
	Action       ReconcileAction `json:"action"`
	CategoryID   string          `json:"category_id,omitempty"`
	NameToCreate string          `json:"name_to_create,omitempty"`
	AIOriginated bool            `json:"ai_originated"`
	// ClosestExisting is an advisory hint: the nearest existing category
	// name by edit distance when the decision is create. It never changes
	// the decision itself.
	ClosestExisting string `json:"closest_existing,omitempty"`
}

// CategoryServicer defines the contract for category reconciliation and
// persistence.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, userID, name string, categoryType models.CategoryType, origin models.CategoryOrigin) (*models.Category, error)
	ListUserCategories(ctx context.Context, userID string) ([]models.Category, error)
	Reconcile(suggestedName string, aiSuggested bool, existing []models.Category) (*ReconciliationResult, error)
	ResolveCategory(ctx context.Context, userID, suggestedName string, aiSuggested bool) (*models.Category, error)
}

// TransactionDraft is a parsed transcript awaiting user confirmation.
// Amount is nil when no pattern matched; that is a normal outcome and the
// caller must prompt for manual entry rather than assume zero.
type TransactionDraft struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id" validate:"required,uuid"`
	Transcript        string        `json:"transcript"`
	VendorName        string        `json:"vendor_name"`
	Description       string        `json:"description" validate:"required"`
	Amount            *money.Amount `json:"amount,omitempty"`
	SuggestedCategory string        `json:"suggested_category" validate:"required"`
	AISuggested       bool          `json:"ai_suggested"`
	CategoryID        string        `json:"category_id,omitempty"`
	PaymentType       string        `json:"payment_type" validate:"required,payment_type"`
	OccurredAt        time.Time     `json:"occurred_at"`
}

// TranscriptionServicer defines the contract for the transcript-to-
// transaction flow.
type TranscriptionServicer interface {
	ResolveTranscript(ctx context.Context, userID, transcript string) (*TransactionDraft, error)
	SubmitDraft(ctx context.Context, draft *TransactionDraft) (*models.Transaction, error)
}
