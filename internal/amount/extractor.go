// Package amount scans free text for a monetary amount using an ordered
// cascade of lexical patterns. The first pattern that both matches and
// converts cleanly wins; malformed candidates fall through to the next
// pattern instead of producing a wrong number.
package amount

import (
	"regexp"
	"strconv"
	"strings"

	"voxpense/internal/money"
	"voxpense/internal/numword"
)

// wordPhrase matches a lazy run of letter words separated by spaces or
// hyphens; handlers trim non-number lead-in words themselves.
const wordPhrase = `[a-z]+(?:[\s-]+[a-z]+)*?`

// rule pairs a name with a matcher. Rule order is behavior: later rules
// are broader and would shadow earlier ones if tried first.
type rule struct {
	name  string
	match func(text string) (money.Amount, bool)
}

var rules = []rule{
	{"numeric-suffix", matchNumericSuffix},
	{"word-suffix", matchWordSuffix},
	{"numeric-multiplier", matchNumericMultiplier},
	{"dollar-sign", matchDollarSign},
	{"numeric-dollars", matchNumericDollars},
	{"word-dollars", matchWordDollars},
	{"word-cents", matchWordCents},
	{"mixed-dollars-cents", matchMixedDollarsCents},
	{"bare-numeric", matchBareNumeric},
	{"bare-words", matchBareWords},
}

// Extract returns the first monetary amount found in text, or false when
// no pattern matches. Callers must treat a no-match as "prompt the user",
// never as zero.
func Extract(text string) (money.Amount, bool) {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		if a, ok := r.match(lowered); ok {
			return a, true
		}
	}
	return 0, false
}

// RuleOrder exposes the cascade order so tests can pin it down; reordering
// rules is a behavior change, not a refactor.
func RuleOrder() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

var (
	numericSuffixRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([km])\b`)
	wordSuffixRe        = regexp.MustCompile(`\b(` + wordPhrase + `)\s+([km])\b`)
	numericMultiplierRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s+(hundred|thousand)\b`)
	dollarSignRe        = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)(?:\s*(?:and|,)\s*(\.?\d+(?:\.\d+)?)\s*cents?\b)?`)
	numericDollarsRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:dollars?|bucks?|usd)\b(?:\s+(?:and\s+)?(\d+)\s*cents?\b)?`)
	wordDollarsRe       = regexp.MustCompile(`\b(` + wordPhrase + `)\s+(?:dollars?|bucks)\b(?:\s+(?:and\s+)?(` + wordPhrase + `)\s+cents?\b)?`)
	wordCentsRe         = regexp.MustCompile(`\b(` + wordPhrase + `)\s+cents?\b`)
	mixedRe             = regexp.MustCompile(`\b(` + wordPhrase + `)\s+dollars?\b\s+(?:and\s+)?([a-z0-9][a-z0-9-]*)`)
	bareNumericRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// 1. Numeric value with a k/m suffix: "11k", "1.3m".
func matchNumericSuffix(text string) (money.Amount, bool) {
	m := numericSuffixRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return money.FromFloat(f * suffixMultiplier(m[2])), true
}

// 2. Word-number phrase followed by k/m: "eleven k".
func matchWordSuffix(text string) (money.Amount, bool) {
	for _, m := range wordSuffixRe.FindAllStringSubmatch(text, -1) {
		if v, ok := parseWordPhrase(m[1]); ok {
			return money.FromFloat(float64(v) * suffixMultiplier(m[2])), true
		}
	}
	return 0, false
}

// 3. Numeric value followed by "hundred"/"thousand": "13 hundred".
func matchNumericMultiplier(text string) (money.Amount, bool) {
	m := numericMultiplierRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "thousand" {
		return money.FromFloat(f * 1000), true
	}
	return money.FromFloat(f * 100), true
}

// 4. Leading $ plus number, optionally "and/, N cents". A decimal point
// inside the cents capture reads as a direct fraction: "$5 and .50" is
// 5.50, while "$5 and 50 cents" divides by 100.
func matchDollarSign(text string) (money.Amount, bool) {
	m := dollarSignRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	dollars, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		cents, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		if strings.Contains(m[2], ".") {
			dollars += cents
		} else {
			dollars += cents / 100
		}
	}
	return money.FromFloat(dollars), true
}

// 5. Numeric amount followed by dollars/bucks/usd, optional integer cents.
func matchNumericDollars(text string) (money.Amount, bool) {
	m := numericDollarsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	dollars, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		cents, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		dollars += cents / 100
	}
	return money.FromFloat(dollars), true
}

// 6. Pure word phrase + dollars, optional word-phrase cents: "five
// dollars and ten cents". When no cents clause is present but a
// cents-like token trails the dollars keyword, this rule declines so the
// mixed rule (8) can read that token as cents.
func matchWordDollars(text string) (money.Amount, bool) {
	for _, m := range wordDollarsRe.FindAllStringSubmatchIndex(text, -1) {
		dollars, ok := parseWordPhrase(text[m[2]:m[3]])
		if !ok {
			continue
		}
		total := float64(dollars)
		if m[4] >= 0 {
			cents, ok := parseWordPhrase(text[m[4]:m[5]])
			if !ok {
				continue
			}
			total += float64(cents) / 100
		} else if trailingCentsToken(text[m[1]:]) {
			continue
		}
		return money.FromFloat(total), true
	}
	return 0, false
}

// 7. Pure word phrase + cents alone: "fifty cents".
func matchWordCents(text string) (money.Amount, bool) {
	for _, m := range wordCentsRe.FindAllStringSubmatch(text, -1) {
		if v, ok := parseWordPhrase(m[1]); ok {
			return money.FromFloat(float64(v) / 100), true
		}
	}
	return 0, false
}

// 8. Mixed: word-phrase dollars plus a trailing free token read as cents
// when it is a small integer (<100) or a word-number: "five dollars fifty".
func matchMixedDollarsCents(text string) (money.Amount, bool) {
	for _, m := range mixedRe.FindAllStringSubmatch(text, -1) {
		dollars, ok := parseWordPhrase(m[1])
		if !ok {
			continue
		}
		cents, ok := parseCentsToken(m[2])
		if !ok {
			continue
		}
		return money.FromFloat(float64(dollars) + float64(cents)/100), true
	}
	return 0, false
}

// 9. Bare numeric amount anywhere in the text: "spent 15.50 at Starbucks".
func matchBareNumeric(text string) (money.Amount, bool) {
	m := bareNumericRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return money.FromFloat(f), true
}

// 10. Bare word-number phrase: "thirteen hundred". Takes the first
// contiguous run of number words.
func matchBareWords(text string) (money.Amount, bool) {
	tokens := numword.Tokenize(text)
	for i := 0; i < len(tokens); i++ {
		if !numword.IsNumberWord(tokens[i]) {
			continue
		}
		j := i
		for j < len(tokens) && numword.IsNumberWord(tokens[j]) {
			j++
		}
		if v, ok := numword.Parse(strings.Join(tokens[i:j], " ")); ok {
			return money.FromFloat(float64(v)), true
		}
		i = j
	}
	return 0, false
}

func suffixMultiplier(s string) float64 {
	if s == "m" {
		return 1000000
	}
	return 1000
}

// parseWordPhrase converts a word phrase to a number, dropping lead-in
// words ("i spent five" parses as 5) since the lazy capture can pick up
// text before the actual number words.
func parseWordPhrase(phrase string) (int64, bool) {
	words := numword.Tokenize(phrase)
	for i := range words {
		if v, ok := numword.Parse(strings.Join(words[i:], " ")); ok {
			return v, true
		}
	}
	return 0, false
}

// trailingCentsToken reports whether the text right after a dollars match
// starts with a token the mixed rule would read as cents.
func trailingCentsToken(rest string) bool {
	fields := strings.Fields(rest)
	if len(fields) > 0 && fields[0] == "and" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return false
	}
	_, ok := parseCentsToken(strings.Trim(fields[0], ".,!?"))
	return ok
}

// parseCentsToken reads a cents value from a free token: an integer under
// 100, or a word-number ("fifty", "fifty-five").
func parseCentsToken(tok string) (int64, bool) {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		if n >= 0 && n < 100 {
			return n, true
		}
		return 0, false
	}
	return parseWordPhrase(tok)
}
