package parser

import (
	"errors"
	"testing"
)

func TestParseFaqList(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantKind  Kind
	}{
		{
			name:      "bare json object",
			raw:       `{"faqs": [{"id": "faq-1", "question": "Q1?", "answer": "A1."}]}`,
			wantCount: 1,
		},
		{
			name: "wrapped in prose",
			raw: "Voici la FAQ demandée:\n" +
				`{"faqs": [{"id": "faq-1", "question": "Q1?", "answer": "A1."}, {"id": "faq-2", "question": "Q2?", "answer": "A2."}]}` +
				"\nJ'espère que cela vous aide!",
			wantCount: 2,
		},
		{
			name: "markdown fences",
			raw: "```json\n" +
				`{"faqs": [{"id": "faq-1", "question": "Q1?", "answer": "A1."}]}` +
				"\n```",
			wantCount: 1,
		},
		{
			name: "stray opening brace before the object",
			raw: "Note: utilisez { pour ouvrir un bloc.\n" +
				`{"faqs": [{"id": "faq-1", "question": "Q1?", "answer": "A1."}]}`,
			wantCount: 1,
		},
		{
			name:      "item missing answer is dropped",
			raw:       `{"faqs": [{"id": "faq-1", "question": "Q1?", "answer": "A1."}, {"id": "faq-2", "question": "Q2?"}]}`,
			wantCount: 1,
		},
		{
			name:      "item with blank question is dropped",
			raw:       `{"faqs": [{"id": "faq-1", "question": "  ", "answer": "A1."}]}`,
			wantCount: 0,
		},
		{
			name:      "empty list is valid",
			raw:       `{"faqs": []}`,
			wantCount: 0,
		},
		{
			name:     "no braces at all",
			raw:      "Je ne peux pas répondre à cette demande.",
			wantKind: KindNoJsonFound,
		},
		{
			name:     "braces but never valid json",
			raw:      `{"faqs": [}`,
			wantKind: KindInvalidJson,
		},
		{
			name:     "valid json without faqs key",
			raw:      `{"items": [{"question": "Q1?", "answer": "A1."}]}`,
			wantKind: KindSchemaMismatch,
		},
		{
			name:     "faqs is not a list",
			raw:      `{"faqs": "none"}`,
			wantKind: KindSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseFaqList(tt.raw)

			if tt.wantKind != "" {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected ParseError, got %v", err)
				}
				if perr.Kind != tt.wantKind {
					t.Errorf("Kind = %s, want %s", perr.Kind, tt.wantKind)
				}
				if perr.Raw != tt.raw {
					t.Errorf("Raw not preserved for logging")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantCount {
				t.Errorf("item count = %d, want %d", len(items), tt.wantCount)
			}
		})
	}
}

func TestParseFaqListKeepsOrder(t *testing.T) {
	raw := `{"faqs": [
		{"id": "faq-1", "question": "Premier?", "answer": "Oui."},
		{"id": "faq-2", "question": "Deuxième?", "answer": "Aussi."},
		{"id": "faq-3", "question": "Troisième?", "answer": "Encore."}
	]}`

	items, err := ParseFaqList(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("item count = %d, want 3", len(items))
	}
	if items[0].Question != "Premier?" || items[2].Question != "Troisième?" {
		t.Errorf("items out of order: %+v", items)
	}
}

func TestParseSingleQA(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantQuestion string
		wantAnswer   string
		wantKind     Kind
	}{
		{
			name:         "bare object",
			raw:          `{"question": "Quoi?", "answer": "Ceci."}`,
			wantQuestion: "Quoi?",
			wantAnswer:   "Ceci.",
		},
		{
			name:         "wrapped in prose",
			raw:          "Bien sûr!\n" + `{"question": "Quoi?", "answer": "Ceci."}`,
			wantQuestion: "Quoi?",
			wantAnswer:   "Ceci.",
		},
		{
			name:     "missing answer",
			raw:      `{"question": "Quoi?"}`,
			wantKind: KindSchemaMismatch,
		},
		{
			name:     "blank question",
			raw:      `{"question": " ", "answer": "Ceci."}`,
			wantKind: KindSchemaMismatch,
		},
		{
			name:     "no json",
			raw:      "désolé",
			wantKind: KindNoJsonFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, answer, err := ParseSingleQA(tt.raw)

			if tt.wantKind != "" {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected ParseError, got %v", err)
				}
				if perr.Kind != tt.wantKind {
					t.Errorf("Kind = %s, want %s", perr.Kind, tt.wantKind)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if question != tt.wantQuestion {
				t.Errorf("question = %q, want %q", question, tt.wantQuestion)
			}
			if answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", answer, tt.wantAnswer)
			}
		})
	}
}
