package prompt

import (
	"fmt"
	"strings"

	"ai-faq-generator-be/internal/entity"
)

// Input carries everything the generation prompt can mention. File content
// wins over the url when both are present.
type Input struct {
	Url         string
	FileName    string
	FileContent string
	Description string
	Tone        string
	Keywords    []string
}

// FaqBuilder assembles the French generation prompt sent to the model.
type FaqBuilder struct {
	input Input
}

func NewFaqBuilder(input Input) *FaqBuilder {
	return &FaqBuilder{input: input}
}

func (b *FaqBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("Générez une FAQ basée sur les informations suivantes:\n\n")

	b.writeSource(&prompt)
	b.writeStyle(&prompt)
	b.writeDirective(&prompt)

	return prompt.String()
}

func (b *FaqBuilder) writeSource(prompt *strings.Builder) {
	if b.input.FileContent != "" {
		fmt.Fprintf(prompt, "Contenu du fichier %q:\n%s\n\n", b.input.FileName, b.input.FileContent)
		if b.input.Description != "" {
			fmt.Fprintf(prompt, "Description supplémentaire: %s\n", b.input.Description)
		}
		return
	}
	if b.input.Url != "" {
		fmt.Fprintf(prompt, "URL du site: %s\n", b.input.Url)
	}
	if b.input.Description != "" {
		fmt.Fprintf(prompt, "Description: %s\n", b.input.Description)
	}
}

func (b *FaqBuilder) writeStyle(prompt *strings.Builder) {
	if b.input.Tone != "" {
		fmt.Fprintf(prompt, "Ton souhaité: %s\n", b.input.Tone)
	}
	keywords := dedupeKeywords(b.input.Keywords)
	if len(keywords) > 0 {
		fmt.Fprintf(prompt, "Mots-clés à inclure: %s\n", strings.Join(keywords, ", "))
	}
}

func (b *FaqBuilder) writeDirective(prompt *strings.Builder) {
	prompt.WriteString("\nCréez 5-8 questions fréquemment posées avec des réponses " +
		"pas trop longues et utiles. " +
		"Assurez-vous que les réponses sont informatives et " +
		"optimisées pour le SEO.\n\n" +
		"Répondez uniquement avec un JSON valide dans ce format exact:\n" +
		"{\n  \"faqs\": [\n    {\n      \"id\": \"faq-1\",\n      " +
		"\"question\": \"Question ici\",\n      \"answer\": " +
		"\"Réponse détaillée ici\"\n    }\n  ]\n}")
}

func dedupeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// AddQuestionBuilder assembles the follow-up prompt that asks for exactly
// one new question/answer pair fitting an existing document.
type AddQuestionBuilder struct {
	title string
	items []entity.FaqItem
	topic string
}

func NewAddQuestionBuilder(title string, items []entity.FaqItem, topic string) *AddQuestionBuilder {
	return &AddQuestionBuilder{
		title: title,
		items: items,
		topic: topic,
	}
}

func (b *AddQuestionBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("Vous devez générer UNE nouvelle question-réponse pour cette FAQ existante.\n\n")

	fmt.Fprintf(&prompt, "Contexte de la FAQ existante %q:\n", b.title)
	prompt.WriteString(b.transcript())
	prompt.WriteString("\n\n")

	fmt.Fprintf(&prompt, "Nouvelle question à créer: %s\n\n", b.topic)

	prompt.WriteString("Générez une question pertinente et sa réponse détaillée qui s'intègre bien " +
		"avec le contexte existant. La réponse doit être informative et cohérente avec le ton des autres réponses.\n\n")

	prompt.WriteString("Répondez uniquement avec un JSON valide dans ce format exact:\n" +
		"{\n  \"question\": \"Votre question ici\",\n  \"answer\": \"Votre réponse détaillée ici\"\n}")

	return prompt.String()
}

func (b *AddQuestionBuilder) transcript() string {
	pairs := make([]string, 0, len(b.items))
	for _, item := range b.items {
		pairs = append(pairs, fmt.Sprintf("Q: %s\nR: %s", item.Question, item.Answer))
	}
	return strings.Join(pairs, "\n\n")
}
