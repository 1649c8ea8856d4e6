// Package keywords maps free text to a fixed category bucket via an
// ordered rule list. It is the deterministic fallback when the remote
// classifier is unavailable or returns misc.
package keywords

import "regexp"

// Bucket is one of the closed set of category labels.
type Bucket string

const (
	BucketFood           Bucket = "food"
	BucketRent           Bucket = "rent"
	BucketUtilities      Bucket = "utilities"
	BucketTransportation Bucket = "transportation"
	BucketEntertainment  Bucket = "entertainment"
	BucketTravel         Bucket = "travel"
	BucketGift           Bucket = "gift"
	BucketMisc           Bucket = "misc"
)

// Buckets lists every label the classifier can produce, misc last.
func Buckets() []Bucket {
	return []Bucket{
		BucketFood, BucketRent, BucketUtilities, BucketTransportation,
		BucketEntertainment, BucketTravel, BucketGift, BucketMisc,
	}
}

// IsBucket reports whether label is one of the fixed bucket names.
func IsBucket(label string) bool {
	switch Bucket(label) {
	case BucketFood, BucketRent, BucketUtilities, BucketTransportation,
		BucketEntertainment, BucketTravel, BucketGift, BucketMisc:
		return true
	}
	return false
}

// rule pairs a bucket with the pattern that selects it. Rules are
// evaluated top to bottom, first match wins: snack terms outrank a
// co-occurring "movie", and explicit utility-bill phrases outrank the
// generic "bill".
type rule struct {
	name    string
	bucket  Bucket
	pattern *regexp.Regexp
}

var rules = []rule{
	{"snacks", BucketFood,
		regexp.MustCompile(`(?i)\b(popcorn|nachos?|soda|chips|candy|pretzels?|snacks?|slushie|icee)\b`)},
	{"entertainment", BucketEntertainment,
		regexp.MustCompile(`(?i)\b(movies?|cinema|theater|concerts?|netflix|spotify|hulu|disney|streaming|arcade|bowling|bar|club|tickets?|show)\b`)},
	{"food", BucketFood,
		regexp.MustCompile(`(?i)\b(food|restaurants?|lunch|dinner|breakfast|brunch|coffee|starbucks|cafe|grocer(y|ies)|pizza|burgers?|sushi|meal|takeout|uber\s*eats|doordash|mcdonalds?)\b`)},
	{"utility-bills", BucketUtilities,
		regexp.MustCompile(`(?i)\b(electric(ity)?|water|gas|internet|phone|cable|utility)\s+bill\b`)},
	{"rent", BucketRent,
		regexp.MustCompile(`(?i)\b(rent|lease|mortgage|landlord)\b`)},
	{"utilities", BucketUtilities,
		regexp.MustCompile(`(?i)\b(electric(ity)?|water|gas|internet|wifi|phone|sewer|trash|utilit(y|ies)|bills?)\b`)},
	{"transportation", BucketTransportation,
		regexp.MustCompile(`(?i)\b(uber|lyft|taxi|cab|bus|train|subway|metro|transit|fuel|gasoline|parking|tolls?|car\s+wash)\b`)},
	{"travel", BucketTravel,
		regexp.MustCompile(`(?i)\b(flights?|airfare|airlines?|planes?|hotels?|motels?|airbnb|hostel|vacation|trip|travel|cruise)\b`)},
	{"gifts", BucketGift,
		regexp.MustCompile(`(?i)\b(gifts?|donations?|donated?|charity|presents?|tithe)\b`)},
}

// Classify returns the bucket for text, defaulting to misc. It is a pure
// function: identical input always yields identical output.
func Classify(text string) Bucket {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.bucket
		}
	}
	return BucketMisc
}

// RuleOrder exposes rule names in evaluation order so tests can pin the
// precedence down; reordering is a behavior change.
func RuleOrder() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
