// Package categorizer calls a remote model to suggest a category bucket
// for a transcript. Failures here are expected and downgraded by the
// orchestrator to the keyword classifier; nothing in this package is on
// the critical path.
package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"voxpense/internal/keywords"
)

// Suggestion is the remote model's answer: the raw label it produced and
// the label mapped onto the fixed bucket set where possible. Mapped keeps
// the raw label verbatim when the model names a category outside the
// bucket set; the reconciler decides what to do with it.
type Suggestion struct {
	Raw    string `json:"raw"`
	Mapped string `json:"mapped"`
}

// Gemini categorizes transcripts with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini categorizer. The API key is read from the
// environment by the genai client itself.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("categorizer: create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Categorize asks the model for a category label for the transcript.
func (g *Gemini) Categorize(ctx context.Context, text string) (Suggestion, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(text)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Suggestion{}, fmt.Errorf("categorizer: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return Suggestion{}, fmt.Errorf("categorizer: empty response from model")
	}

	return parseSuggestion(rawText)
}

// buildPrompt constrains the model to the fixed bucket taxonomy and to a
// strict single-object JSON response.
func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You classify a spoken expense description into exactly one category.\n\n")
	b.WriteString("Allowed categories:\n")
	for _, bucket := range keywords.Buckets() {
		b.WriteString("  - " + string(bucket) + "\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Pick the single best category for the expense below.\n")
	b.WriteString("- If nothing fits, use \"misc\".\n")
	b.WriteString("- Output STRICT JSON only: {\"category\": \"<label>\"}\n")
	b.WriteString("- Do NOT wrap the response in code fences or Markdown.\n\n")
	b.WriteString("Expense: " + text + "\n")
	return b.String()
}

// parseSuggestion reads the model response, tolerating Markdown fences
// the model was told not to emit.
func parseSuggestion(raw string) (Suggestion, error) {
	clean := cleanModelJSON(raw)

	var payload struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return Suggestion{}, fmt.Errorf("categorizer: unmarshal JSON: %w\nraw response: %s", err, raw)
	}

	label := strings.TrimSpace(payload.Category)
	if label == "" {
		return Suggestion{}, fmt.Errorf("categorizer: response has no category")
	}

	s := Suggestion{Raw: label, Mapped: label}
	if keywords.IsBucket(strings.ToLower(label)) {
		s.Mapped = strings.ToLower(label)
	}
	return s, nil
}

// cleanModelJSON strips code fences and surrounding junk, keeping only
// the first '{' through the last '}'.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
