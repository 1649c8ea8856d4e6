package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"voxpense/internal/categorizer"
	"voxpense/internal/models"
	"voxpense/internal/testutil"
)

// fakeCategorizer is a scriptable remote categorizer.
type fakeCategorizer struct {
	suggestion categorizer.Suggestion
	err        error
	delay      time.Duration
	calls      int
}

func (f *fakeCategorizer) Categorize(ctx context.Context, text string) (categorizer.Suggestion, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return categorizer.Suggestion{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.suggestion, f.err
}

func TestResolveTranscript(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T, remote Categorizer) TranscriptionServicer {
		t.Helper()
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
		return NewTranscriptionService(db, NewCategoryService(db), remote, time.Second)
	}

	t.Run("full_parse", func(t *testing.T) {
		svc := newService(t, nil)
		userID := testutil.NewTestUserID()

		draft, err := svc.ResolveTranscript(ctx, userID, "I spent fifteen dollars and fifty cents at Starbucks")
		testutil.AssertNoError(t, err)

		if draft.Amount == nil || draft.Amount.String() != "15.50" {
			t.Errorf("expected amount 15.50, got %v", draft.Amount)
		}
		if draft.VendorName != "Starbucks" {
			t.Errorf("expected vendor Starbucks, got %q", draft.VendorName)
		}
		if draft.SuggestedCategory != "food" {
			t.Errorf("expected keyword suggestion food, got %q", draft.SuggestedCategory)
		}
		if !draft.AISuggested {
			t.Error("suggestion must be tagged as AI-suggested until confirmed")
		}
		if draft.ID == "" {
			t.Error("expected a draft ID")
		}
	})

	t.Run("no_amount_is_not_an_error", func(t *testing.T) {
		svc := newService(t, nil)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "lunch at Chipotle")
		testutil.AssertNoError(t, err)

		if draft.Amount != nil {
			t.Errorf("expected nil amount, got %s", draft.Amount)
		}
	})

	t.Run("remote_suggestion_used", func(t *testing.T) {
		remote := &fakeCategorizer{suggestion: categorizer.Suggestion{Raw: "travel", Mapped: "travel"}}
		svc := newService(t, remote)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "paid 300 dollars for something")
		testutil.AssertNoError(t, err)

		if draft.SuggestedCategory != "travel" {
			t.Errorf("expected remote suggestion travel, got %q", draft.SuggestedCategory)
		}
		if remote.calls != 1 {
			t.Errorf("expected one remote call, got %d", remote.calls)
		}
	})

	t.Run("remote_custom_label_kept", func(t *testing.T) {
		remote := &fakeCategorizer{suggestion: categorizer.Suggestion{Raw: "Pet Supplies", Mapped: "Pet Supplies"}}
		svc := newService(t, remote)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "40 dollars at the vet")
		testutil.AssertNoError(t, err)

		if draft.SuggestedCategory != "Pet Supplies" {
			t.Errorf("expected custom label kept, got %q", draft.SuggestedCategory)
		}
	})

	t.Run("remote_error_falls_back_to_keywords", func(t *testing.T) {
		remote := &fakeCategorizer{err: errors.New("boom")}
		svc := newService(t, remote)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "uber home for 20 dollars")
		testutil.AssertNoError(t, err)

		if draft.SuggestedCategory != "transportation" {
			t.Errorf("expected keyword fallback transportation, got %q", draft.SuggestedCategory)
		}
	})

	t.Run("remote_misc_falls_back_to_keywords", func(t *testing.T) {
		remote := &fakeCategorizer{suggestion: categorizer.Suggestion{Raw: "misc", Mapped: "misc"}}
		svc := newService(t, remote)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "electric bill 80 dollars")
		testutil.AssertNoError(t, err)

		if draft.SuggestedCategory != "utilities" {
			t.Errorf("expected keyword fallback utilities, got %q", draft.SuggestedCategory)
		}
	})

	t.Run("remote_timeout_falls_back_to_keywords", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
		remote := &fakeCategorizer{
			suggestion: categorizer.Suggestion{Raw: "travel", Mapped: "travel"},
			delay:      200 * time.Millisecond,
		}
		svc := NewTranscriptionService(db, NewCategoryService(db), remote, 10*time.Millisecond)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "movie tickets for 30 dollars")
		testutil.AssertNoError(t, err)

		if draft.SuggestedCategory != "entertainment" {
			t.Errorf("expected keyword fallback entertainment, got %q", draft.SuggestedCategory)
		}
	})

	t.Run("payment_type_detected", func(t *testing.T) {
		svc := newService(t, nil)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "paid 12 dollars for parking with my credit card")
		testutil.AssertNoError(t, err)

		if draft.PaymentType != "credit" {
			t.Errorf("expected credit, got %q", draft.PaymentType)
		}
	})

	t.Run("empty_transcript", func(t *testing.T) {
		svc := newService(t, nil)
		_, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_user", func(t *testing.T) {
		svc := newService(t, nil)
		_, err := svc.ResolveTranscript(ctx, "", "5 dollars")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSubmitDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_category_and_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)
		userID := testutil.NewTestUserID()

		draft, err := svc.ResolveTranscript(ctx, userID, "I spent fifteen dollars and fifty cents at Starbucks")
		testutil.AssertNoError(t, err)

		tx, err := svc.SubmitDraft(ctx, draft)
		testutil.AssertNoError(t, err)

		if tx.AmountCents != 1550 {
			t.Errorf("expected 1550 cents, got %d", tx.AmountCents)
		}
		if tx.CategoryID == nil || *tx.CategoryID == "" {
			t.Fatal("expected a resolved category ID")
		}
		if tx.Source != models.TransactionSourceVoice {
			t.Errorf("expected voice source, got %s", tx.Source)
		}

		var category models.Category
		if err := db.First(&category, "id = ?", *tx.CategoryID).Error; err != nil {
			t.Fatalf("category not persisted: %v", err)
		}
		if category.Name != "food" {
			t.Errorf("expected created category food, got %s", category.Name)
		}
		if category.Origin != models.CategoryOriginAI {
			t.Errorf("expected AI origin for suggested category, got %s", category.Origin)
		}
	})

	t.Run("reuses_existing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)
		userID := testutil.NewTestUserID()
		existing := testutil.CreateTestCategory(t, db, userID, "Food")

		draft, err := svc.ResolveTranscript(ctx, userID, "8 dollars for lunch")
		testutil.AssertNoError(t, err)

		tx, err := svc.SubmitDraft(ctx, draft)
		testutil.AssertNoError(t, err)

		if tx.CategoryID == nil || *tx.CategoryID != existing.ID {
			t.Errorf("expected existing category %s, got %v", existing.ID, tx.CategoryID)
		}
	})

	t.Run("missing_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)

		draft, err := svc.ResolveTranscript(ctx, testutil.NewTestUserID(), "lunch at Chipotle")
		testutil.AssertNoError(t, err)

		_, err = svc.SubmitDraft(ctx, draft)
		testutil.AssertAppError(t, err, "DRAFT_MISSING_AMOUNT")
	})

	t.Run("nil_draft_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)

		_, err := svc.SubmitDraft(ctx, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	// Each draft resolves independently: two drafts suggesting the same
	// new category share one record, and a draft submitted later keeps its
	// own category selection.
	t.Run("independent_drafts_share_one_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)
		userID := testutil.NewTestUserID()

		first, err := svc.ResolveTranscript(ctx, userID, "groceries for 60 dollars")
		testutil.AssertNoError(t, err)
		second, err := svc.ResolveTranscript(ctx, userID, "more groceries for 20 dollars")
		testutil.AssertNoError(t, err)

		if first.ID == second.ID {
			t.Fatal("drafts must have distinct IDs")
		}

		tx1, err := svc.SubmitDraft(ctx, first)
		testutil.AssertNoError(t, err)
		tx2, err := svc.SubmitDraft(ctx, second)
		testutil.AssertNoError(t, err)

		if *tx1.CategoryID != *tx2.CategoryID {
			t.Errorf("expected both drafts to share one category, got %s and %s", *tx1.CategoryID, *tx2.CategoryID)
		}

		var count int64
		if err := db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one category, got %d", count)
		}
	})

	// A user edit to the draft's category wins over the original
	// suggestion: submission respects a pre-bound CategoryID.
	t.Run("user_selected_category_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTranscriptionService(db, NewCategoryService(db), nil, time.Second)
		userID := testutil.NewTestUserID()
		chosen := testutil.CreateTestCategory(t, db, userID, "Eating Out")

		draft, err := svc.ResolveTranscript(ctx, userID, "12 dollars for pizza")
		testutil.AssertNoError(t, err)
		draft.CategoryID = chosen.ID

		tx, err := svc.SubmitDraft(ctx, draft)
		testutil.AssertNoError(t, err)

		if tx.CategoryID == nil || *tx.CategoryID != chosen.ID {
			t.Errorf("expected user-selected category %s, got %v", chosen.ID, tx.CategoryID)
		}
	})
}

func TestExtractVendor(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I spent 15 dollars at Starbucks", "Starbucks"},
		{"coffee at Blue Bottle this morning", "Blue Bottle"},
		{"ordered from Pizza Hut yesterday", "Pizza Hut"},
		{"gas for 40 dollars", ""},
		{"at Whole Foods for groceries", "Whole Foods"},
	}
	for _, tt := range tests {
		if got := extractVendor(tt.text); got != tt.want {
			t.Errorf("extractVendor(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractPaymentType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"paid with credit card", "credit"},
		{"used my debit card", "debit"},
		{"paid cash", "cash"},
		{"sent it on venmo", "venmo"},
		{"just coffee", "unspecified"},
	}
	for _, tt := range tests {
		if got := extractPaymentType(tt.text); got != tt.want {
			t.Errorf("extractPaymentType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
