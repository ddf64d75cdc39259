package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-faq-generator-be/internal/entity"
)

type Kind string

const (
	KindNoJsonFound    Kind = "no_json_found"
	KindInvalidJson    Kind = "invalid_json"
	KindSchemaMismatch Kind = "schema_mismatch"
)

// ParseError keeps the raw model output for logging. Handlers never
// forward Raw to clients.
type ParseError struct {
	Kind Kind
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse model output: %s", e.Kind)
}

// extractJsonSpan pulls the JSON object out of the model's prose. The
// model often wraps the object in commentary or markdown fences, and a
// stray '{' can appear before the real object, so every candidate start
// is tried in order against the last closing brace.
func extractJsonSpan(raw string) (string, *ParseError) {
	end := strings.LastIndex(raw, "}")
	if end < 0 {
		return "", &ParseError{Kind: KindNoJsonFound, Raw: raw}
	}

	start := strings.Index(raw, "{")
	if start < 0 {
		return "", &ParseError{Kind: KindNoJsonFound, Raw: raw}
	}

	for start >= 0 && start < end {
		candidate := raw[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		next := strings.Index(raw[start+1:], "{")
		if next < 0 {
			break
		}
		start = start + 1 + next
	}

	return "", &ParseError{Kind: KindInvalidJson, Raw: raw}
}

type faqListSchema struct {
	Faqs []faqItemSchema `json:"faqs"`
}

type faqItemSchema struct {
	Id       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseFaqList reads the {"faqs": [...]} shape from the generation flow.
// Items missing a question or an answer are dropped rather than failing
// the whole document. An empty list is a valid result.
func ParseFaqList(raw string) ([]entity.FaqItem, error) {
	span, perr := extractJsonSpan(raw)
	if perr != nil {
		return nil, perr
	}

	var schema faqListSchema
	if err := json.Unmarshal([]byte(span), &schema); err != nil {
		return nil, &ParseError{Kind: KindSchemaMismatch, Raw: raw}
	}
	if schema.Faqs == nil {
		return nil, &ParseError{Kind: KindSchemaMismatch, Raw: raw}
	}

	items := make([]entity.FaqItem, 0, len(schema.Faqs))
	for _, f := range schema.Faqs {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			continue
		}
		items = append(items, entity.FaqItem{
			Id:       f.Id,
			Question: f.Question,
			Answer:   f.Answer,
		})
	}
	return items, nil
}

type singleQASchema struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseSingleQA reads the {"question", "answer"} shape from the
// add-question flow. Both fields are required.
func ParseSingleQA(raw string) (question, answer string, err error) {
	span, perr := extractJsonSpan(raw)
	if perr != nil {
		return "", "", perr
	}

	var schema singleQASchema
	if jsonErr := json.Unmarshal([]byte(span), &schema); jsonErr != nil {
		return "", "", &ParseError{Kind: KindSchemaMismatch, Raw: raw}
	}
	if strings.TrimSpace(schema.Question) == "" || strings.TrimSpace(schema.Answer) == "" {
		return "", "", &ParseError{Kind: KindSchemaMismatch, Raw: raw}
	}

	return schema.Question, schema.Answer, nil
}
