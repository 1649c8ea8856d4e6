package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"voxpense/internal/amount"
	apperrors "voxpense/internal/errors"
	"voxpense/internal/keywords"
	"voxpense/internal/logger"
	"voxpense/internal/models"
	"voxpense/internal/uuid"
)

// DefaultClassifyTimeout bounds the remote categorization call when the
// caller did not configure one.
const DefaultClassifyTimeout = 5 * time.Second

// transcriptionService turns transcripts into transaction drafts and
// submits confirmed drafts. Each call is independent: the service keeps
// no per-draft state, so a slow in-flight flow can never overwrite a
// newer draft's category selection.
type transcriptionService struct {
	db              *gorm.DB
	categories      CategoryServicer
	categorizer     Categorizer
	validate        *validator.Validate
	classifyTimeout time.Duration
}

// NewTranscriptionService creates a new TranscriptionServicer. The
// categorizer may be nil; classification then uses keyword rules only.
func NewTranscriptionService(
	db *gorm.DB,
	categories CategoryServicer,
	remote Categorizer,
	classifyTimeout time.Duration,
) TranscriptionServicer {
	if classifyTimeout <= 0 {
		classifyTimeout = DefaultClassifyTimeout
	}

	v := validator.New()
	_ = v.RegisterValidation("payment_type", validatePaymentType)

	return &transcriptionService{
		db:              db,
		categories:      categories,
		categorizer:     remote,
		validate:        v,
		classifyTimeout: classifyTimeout,
	}
}

// ResolveTranscript parses a transcript into a draft: amount, vendor,
// payment type, and a suggested category pending user confirmation. A
// missing amount is a normal outcome, left nil on the draft.
func (s *transcriptionService) ResolveTranscript(ctx context.Context, userID, transcript string) (*TransactionDraft, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transcript is required")
	}
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID is required")
	}

	draft := &TransactionDraft{
		ID:          uuid.New(),
		UserID:      userID,
		Transcript:  transcript,
		Description: cleanDescription(transcript),
		VendorName:  extractVendor(transcript),
		PaymentType: extractPaymentType(transcript),
		OccurredAt:  time.Now(),
	}

	if amt, ok := amount.Extract(transcript); ok {
		draft.Amount = &amt
	}

	draft.SuggestedCategory = string(s.suggestCategory(ctx, transcript))
	draft.AISuggested = true

	return draft, nil
}

// suggestCategory asks the remote categorizer under a timeout and falls
// back to keyword rules on any error, timeout, or a misc answer. A remote
// failure is never surfaced to the caller for categorization alone.
func (s *transcriptionService) suggestCategory(ctx context.Context, transcript string) keywords.Bucket {
	fallback := keywords.Classify(transcript)
	if s.categorizer == nil {
		return fallback
	}

	classifyCtx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	suggestion, err := s.categorizer.Categorize(classifyCtx, transcript)
	if err != nil {
		logger.Get().Infow("remote categorizer unavailable, using keyword classifier",
			"error", err)
		return fallback
	}
	if suggestion.Mapped == "" || suggestion.Mapped == string(keywords.BucketMisc) {
		return fallback
	}
	// The label may sit outside the bucket set when the model named a
	// custom category; reconciliation binds or creates it either way.
	return keywords.Bucket(suggestion.Mapped)
}

// SubmitDraft reconciles the draft's category, validates the draft, and
// persists it as an immutable transaction. The draft must carry an amount
// by now; prompting for one is the caller's job.
func (s *transcriptionService) SubmitDraft(ctx context.Context, draft *TransactionDraft) (*models.Transaction, error) {
	if draft == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "draft is required")
	}
	if draft.Amount == nil {
		return nil, apperrors.WithMessage(apperrors.ErrDraftMissingAmount, "no amount was found in the transcript")
	}
	if *draft.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	if err := s.validate.Struct(draft); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	if draft.CategoryID == "" {
		category, err := s.categories.ResolveCategory(ctx, draft.UserID, draft.SuggestedCategory, draft.AISuggested)
		if err != nil {
			return nil, err
		}
		draft.CategoryID = category.ID
	}

	transaction := &models.Transaction{
		UserID:      draft.UserID,
		CategoryID:  &draft.CategoryID,
		VendorName:  draft.VendorName,
		Description: draft.Description,
		AmountCents: draft.Amount.Cents(),
		PaymentType: draft.PaymentType,
		Source:      models.TransactionSourceVoice,
		OccurredAt:  draft.OccurredAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("transaction submitted",
		"transaction_id", transaction.ID,
		"user_id", transaction.UserID,
		"amount_cents", transaction.AmountCents,
		"category_id", draft.CategoryID)

	return transaction, nil
}

var (
	vendorRe = regexp.MustCompile(`(?i)\b(?:at|from)\s+([a-z0-9][a-z0-9'&.-]*(?:\s+[a-z0-9'&.-]+)*)`)

	// vendorStopWords end a vendor phrase: "at Starbucks yesterday" keeps
	// only "Starbucks".
	vendorStopWords = map[string]bool{
		"for": true, "on": true, "yesterday": true, "today": true,
		"tonight": true, "last": true, "this": true, "with": true,
		"and": true, "because": true, "using": true, "via": true,
	}

	paymentTypeRe = regexp.MustCompile(`(?i)\b(credit\s+card|credit|debit\s+card|debit|cash|apple\s+pay|venmo|paypal)\b`)
)

// extractVendor pulls the vendor phrase following "at"/"from", cut at the
// first stop word and capped at four words.
func extractVendor(transcript string) string {
	m := vendorRe.FindStringSubmatch(transcript)
	if m == nil {
		return ""
	}

	words := strings.Fields(m[1])
	out := make([]string, 0, 4)
	for _, w := range words {
		if vendorStopWords[strings.ToLower(w)] || len(out) == 4 {
			break
		}
		out = append(out, titleWord(w))
	}
	return strings.Join(out, " ")
}

// extractPaymentType finds an explicit payment mention, defaulting to
// "unspecified" so the user confirms it on the draft.
func extractPaymentType(transcript string) string {
	m := paymentTypeRe.FindStringSubmatch(transcript)
	if m == nil {
		return "unspecified"
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(m[1])), " ")
	switch normalized {
	case "credit card", "credit":
		return "credit"
	case "debit card", "debit":
		return "debit"
	default:
		return normalized
	}
}

// cleanDescription collapses whitespace and capitalizes the transcript
// for use as the draft description.
func cleanDescription(transcript string) string {
	desc := strings.Join(strings.Fields(transcript), " ")
	if desc != "" {
		desc = strings.ToUpper(desc[:1]) + desc[1:]
	}
	return desc
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func validatePaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "credit", "debit", "cash", "apple pay", "venmo", "paypal", "unspecified":
		return true
	}
	return false
}
