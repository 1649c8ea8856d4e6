package amount

import (
	"strings"
	"testing"

	"voxpense/internal/money"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		// Suffix patterns.
		{"numeric_k", "11k", "11000", true},
		{"numeric_k_upper", "I paid 1.3K for it", "1300", true},
		{"numeric_m", "the house cost 1.2m", "1200000", true},
		{"word_k", "eleven k", "11000", true},
		{"word_m", "about two m", "2000000", true},

		// Numeric multiplier words.
		{"numeric_hundred", "13 hundred", "1300", true},
		{"numeric_thousand", "spent 2 thousand on rent", "2000", true},

		// Dollar sign.
		{"dollar_sign", "$5", "5", true},
		{"dollar_sign_decimal", "$12.75 at the store", "12.75", true},
		{"dollar_sign_cents", "$5 and 50 cents", "5.50", true},
		{"dollar_sign_fractional_cents", "$5 and .50 cents", "5.50", true},
		{"dollar_sign_comma_cents", "$5, 25 cents", "5.25", true},

		// Numeric dollars.
		{"numeric_dollars", "15 dollars", "15", true},
		{"numeric_bucks", "spent 20 bucks on lunch", "20", true},
		{"numeric_usd", "200 usd", "200", true},
		{"numeric_dollars_cents", "5 dollars and 10 cents", "5.10", true},

		// Word dollars.
		{"word_dollars", "I spent fifteen dollars", "15", true},
		{"word_dollars_cents", "five dollars and ten cents", "5.10", true},
		{"word_dollars_word_cents", "fifteen dollars and fifty cents at Starbucks", "15.50", true},
		{"word_bucks", "twenty bucks", "20", true},

		// Word cents alone.
		{"word_cents", "fifty cents", "0.50", true},
		{"word_cents_teens", "gave him fifteen cents", "0.15", true},

		// Mixed: trailing free token read as cents.
		{"mixed_word_trailing_int", "five dollars 50", "5.50", true},
		{"mixed_word_trailing_word", "five dollars fifty", "5.50", true},
		{"mixed_word_trailing_and_word", "five dollars and fifty", "5.50", true},
		{"mixed_word_trailing_hyphen", "five dollars fifty-five", "5.55", true},

		// Broad fallbacks.
		{"bare_numeric", "coffee 4.25 this morning", "4.25", true},
		{"bare_words", "thirteen hundred", "1300", true},
		{"bare_words_in_sentence", "I spent twenty five on gas", "25", true},

		// No match is a first-class outcome, not zero.
		{"no_numbers", "no numbers here", "", false},
		{"empty", "", "", false},
		{"only_vendor", "lunch at Starbucks", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if ok != tt.ok {
				t.Fatalf("Extract(%q) ok = %v, want %v (got %s)", tt.text, ok, tt.ok, got)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Extract(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

// The cascade order is behavior: later rules are broader and would shadow
// earlier ones. Reordering is a behavior change, not a refactor.
func TestRuleOrder(t *testing.T) {
	want := []string{
		"numeric-suffix",
		"word-suffix",
		"numeric-multiplier",
		"dollar-sign",
		"numeric-dollars",
		"word-dollars",
		"word-cents",
		"mixed-dollars-cents",
		"bare-numeric",
		"bare-words",
	}
	got := RuleOrder()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rule order changed:\n got %v\nwant %v", got, want)
	}
}

func TestPrecedence(t *testing.T) {
	// "11k" must hit the suffix rule, not bare-numeric.
	if got, _ := Extract("11k"); got.String() != "11000" {
		t.Errorf("Extract(\"11k\") = %s, want 11000", got)
	}
	// "$5 and 50 cents" must hit dollar-sign before numeric-dollars ever
	// sees the 50.
	if got, _ := Extract("$5 and 50 cents"); got.String() != "5.50" {
		t.Errorf("Extract(\"$5 and 50 cents\") = %s, want 5.50", got)
	}
	// "2 thousand dollars" must multiply, not read 2 as the amount.
	if got, _ := Extract("2 thousand dollars"); got.String() != "2000" {
		t.Errorf("Extract(\"2 thousand dollars\") = %s, want 2000", got)
	}
}

// Rendering an extracted amount and re-extracting it yields the same
// value (idempotence over the parser's own output format).
func TestExtractRoundTrip(t *testing.T) {
	inputs := []string{
		"11k",
		"$5 and 50 cents",
		"thirteen hundred",
		"five dollars and ten cents",
		"fifteen dollars and fifty cents",
		"fifty cents",
		"4.25",
	}
	for _, in := range inputs {
		first, ok := Extract(in)
		if !ok {
			t.Fatalf("Extract(%q) found no amount", in)
		}
		second, ok := Extract(first.String())
		if !ok {
			t.Fatalf("Extract(%q) (rendered from %q) found no amount", first.String(), in)
		}
		if first != second {
			t.Errorf("round trip of %q: %s != %s", in, first, second)
		}
	}
}

func TestExtractNeverNegative(t *testing.T) {
	for _, in := range []string{"-5 dollars", "minus five dollars", "lost 5 dollars"} {
		if got, ok := Extract(in); ok && got < money.Amount(0) {
			t.Errorf("Extract(%q) = %s, negative amounts must not be produced", in, got)
		}
	}
}
