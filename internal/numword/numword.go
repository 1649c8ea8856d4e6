// Package numword converts English number phrases ("one hundred eleven")
// into integers.
package numword

import (
	"regexp"
	"strings"
)

var nonLetter = regexp.MustCompile(`[^a-z\s-]+`)

var units = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19,
}

var tens = map[string]int64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var multipliers = map[string]int64{
	"hundred":  100,
	"thousand": 1000,
}

// IsNumberWord reports whether token (already lowercased) is part of the
// number vocabulary.
func IsNumberWord(token string) bool {
	if _, ok := units[token]; ok {
		return true
	}
	if _, ok := tens[token]; ok {
		return true
	}
	_, ok := multipliers[token]
	return ok
}

// Parse converts an English number phrase into an integer. Any token
// outside the number vocabulary makes the whole phrase a no-match; there
// is no partial result. A bare multiplier ("hundred") counts as one
// multiplier (100) — intentional, matching the voice-entry heuristic.
func Parse(phrase string) (int64, bool) {
	tokens := Tokenize(phrase)
	if len(tokens) == 0 {
		return 0, false
	}

	var total, current int64
	for _, tok := range tokens {
		switch {
		case unitsOrTens(tok) >= 0:
			current += unitsOrTens(tok)
		case multipliers[tok] != 0:
			if current == 0 {
				current = 1
			}
			total += current * multipliers[tok]
			current = 0
		default:
			return 0, false
		}
	}
	return total + current, true
}

// Tokenize normalizes a phrase to lowercase, strips everything outside
// [a-z\s-], and splits on whitespace and hyphens.
func Tokenize(phrase string) []string {
	cleaned := nonLetter.ReplaceAllString(strings.ToLower(phrase), " ")
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	return strings.Fields(cleaned)
}

// unitsOrTens returns the value for a unit/teen/tens word, or -1.
// "zero" is the reason this can't return 0 as the sentinel.
func unitsOrTens(tok string) int64 {
	if v, ok := units[tok]; ok {
		return v
	}
	if v, ok := tens[tok]; ok {
		return v
	}
	return -1
}
