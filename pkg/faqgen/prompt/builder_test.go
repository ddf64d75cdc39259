package prompt

import (
	"strings"
	"testing"

	"ai-faq-generator-be/internal/entity"
)

func TestFaqBuilderFileWinsOverUrl(t *testing.T) {
	p := NewFaqBuilder(Input{
		Url:         "https://example.com",
		FileName:    "menu.pdf",
		FileContent: "Nos horaires et nos tarifs.",
	}).Build()

	if !strings.Contains(p, `Contenu du fichier "menu.pdf":`) {
		t.Errorf("prompt missing file section:\n%s", p)
	}
	if strings.Contains(p, "URL du site") {
		t.Errorf("url section should be dropped when file content is present:\n%s", p)
	}
}

func TestFaqBuilderUrlSource(t *testing.T) {
	p := NewFaqBuilder(Input{
		Url:         "https://example.com",
		Description: "Un restaurant italien à Lyon",
	}).Build()

	if !strings.Contains(p, "URL du site: https://example.com") {
		t.Errorf("prompt missing url line:\n%s", p)
	}
	if !strings.Contains(p, "Description: Un restaurant italien à Lyon") {
		t.Errorf("prompt missing description line:\n%s", p)
	}
}

func TestFaqBuilderStyleSection(t *testing.T) {
	p := NewFaqBuilder(Input{
		Url:      "https://example.com",
		Tone:     "professionnel",
		Keywords: []string{"pizza", "Livraison", " pizza ", "", "livraison"},
	}).Build()

	if !strings.Contains(p, "Ton souhaité: professionnel") {
		t.Errorf("prompt missing tone line:\n%s", p)
	}
	// Duplicates collapse case-insensitively, first spelling wins.
	if !strings.Contains(p, "Mots-clés à inclure: pizza, Livraison") {
		t.Errorf("keywords not deduped:\n%s", p)
	}
}

func TestFaqBuilderOmitsEmptySections(t *testing.T) {
	p := NewFaqBuilder(Input{Url: "https://example.com"}).Build()

	if strings.Contains(p, "Ton souhaité") {
		t.Errorf("tone line should be absent:\n%s", p)
	}
	if strings.Contains(p, "Mots-clés") {
		t.Errorf("keywords line should be absent:\n%s", p)
	}
}

func TestFaqBuilderClosingDirective(t *testing.T) {
	p := NewFaqBuilder(Input{Url: "https://example.com"}).Build()

	if !strings.Contains(p, "Créez 5-8 questions") {
		t.Errorf("prompt missing count directive:\n%s", p)
	}
	if !strings.Contains(p, `"faqs"`) {
		t.Errorf("prompt missing json schema directive:\n%s", p)
	}
	if !strings.HasPrefix(p, "Générez une FAQ basée sur les informations suivantes:") {
		t.Errorf("unexpected prompt opening:\n%s", p)
	}
}

func TestAddQuestionBuilderTranscript(t *testing.T) {
	items := []entity.FaqItem{
		{Id: "faq-1", Question: "Quels sont vos horaires?", Answer: "De 9h à 18h."},
		{Id: "faq-2", Question: "Livrez-vous?", Answer: "Oui, partout en France."},
	}

	p := NewAddQuestionBuilder("FAQ du restaurant", items, "Acceptez-vous les chèques?").Build()

	if !strings.Contains(p, "UNE nouvelle question-réponse") {
		t.Errorf("prompt missing single-pair directive:\n%s", p)
	}
	if !strings.Contains(p, `Contexte de la FAQ existante "FAQ du restaurant":`) {
		t.Errorf("prompt missing context header:\n%s", p)
	}
	if !strings.Contains(p, "Q: Quels sont vos horaires?\nR: De 9h à 18h.") {
		t.Errorf("prompt missing first transcript pair:\n%s", p)
	}
	if !strings.Contains(p, "Q: Livrez-vous?\nR: Oui, partout en France.") {
		t.Errorf("prompt missing second transcript pair:\n%s", p)
	}
	if !strings.Contains(p, "Nouvelle question à créer: Acceptez-vous les chèques?") {
		t.Errorf("prompt missing topic line:\n%s", p)
	}
	if !strings.Contains(p, `"question"`) || !strings.Contains(p, `"answer"`) {
		t.Errorf("prompt missing json schema directive:\n%s", p)
	}
}

func TestDedupeKeywords(t *testing.T) {
	got := dedupeKeywords([]string{" SEO ", "seo", "prix", "", "Prix", "horaires"})
	want := []string{"SEO", "prix", "horaires"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
