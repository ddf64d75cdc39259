package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-faq-generator-be/internal/config"
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/memory"
	"ai-faq-generator-be/pkg/genai"
	"ai-faq-generator-be/pkg/quota"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a canned response and records the prompt it saw.
type stubGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *stubGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// capturePublisher records credit messages instead of going through the bus.
type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) messages(t *testing.T) []dto.CreditSpentMessage {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]dto.CreditSpentMessage, 0, len(p.payloads))
	for _, raw := range p.payloads {
		var msg dto.CreditSpentMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		out = append(out, msg)
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type faqServiceFixture struct {
	svc       IFaqService
	factory   *memory.Factory
	generator *stubGenerator
	publisher *capturePublisher
}

func newFaqServiceFixture(gen *stubGenerator) *faqServiceFixture {
	factory := memory.NewFactory()
	publisher := &capturePublisher{}
	svc := NewFaqService(
		factory,
		publisher,
		gen,
		nil,
		quota.NewLedger(),
		nopLogger{},
		config.AIConfig{MaxOutputTokens: 2048, AddQuestionTokens: 1024},
	)
	return &faqServiceFixture{
		svc:       svc,
		factory:   factory,
		generator: gen,
		publisher: publisher,
	}
}

const validFaqJson = `Voici votre FAQ:
{"faqs": [
  {"id": "faq-1", "question": "Quels sont vos horaires?", "answer": "De 9h à 18h."},
  {"id": "faq-2", "question": "Livrez-vous?", "answer": "Oui."}
]}`

func TestGenerateHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	userId := uuid.New()

	res, err := f.svc.Generate(ctx, userId, &dto.GenerateFaqRequest{
		SourceType:  "url",
		Url:         "https://example.com",
		Description: "Un restaurant italien",
		Tone:        "professionnel",
		Keywords:    []string{"pizza", "livraison"},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Quels sont vos horaires?", res.Title)

	// The prompt carries all the request fields.
	p := f.generator.lastPrompt()
	assert.Contains(t, p, "URL du site: https://example.com")
	assert.Contains(t, p, "Description: Un restaurant italien")
	assert.Contains(t, p, "Ton souhaité: professionnel")
	assert.Contains(t, p, "Mots-clés à inclure: pizza, livraison")

	// The document is persisted under the caller.
	docs, err := f.factory.Uow.Documents.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, userId, docs[0].UserId)
	assert.Equal(t, entity.SourceTypeUrl, docs[0].Source.Type)

	// One credit message went out.
	msgs := f.publisher.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, userId, msgs[0].UserId)
	assert.Equal(t, ServiceFaqGenerate, msgs[0].Service)
	assert.Equal(t, -1, msgs[0].Amount)
}

func TestGenerateFileSourceWinsOverUrl(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})

	_, err := f.svc.Generate(ctx, uuid.New(), &dto.GenerateFaqRequest{
		SourceType:    "file",
		Url:           "https://example.com",
		FileName:      "menu.pdf",
		ExtractedText: "Nos horaires et nos tarifs.",
	})
	require.NoError(t, err)

	p := f.generator.lastPrompt()
	assert.Contains(t, p, `Contenu du fichier "menu.pdf":`)
	assert.NotContains(t, p, "URL du site")
}

func TestGenerateRejectsBadInputBeforeSpending(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	userId := uuid.New()

	tests := []struct {
		name string
		req  *dto.GenerateFaqRequest
	}{
		{"unknown source type", &dto.GenerateFaqRequest{SourceType: "feed"}},
		{"url source with nothing to work from", &dto.GenerateFaqRequest{SourceType: "url"}},
		{"file source without text", &dto.GenerateFaqRequest{SourceType: "file", FileName: "menu.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Generate(ctx, userId, tt.req)
			var inputErr *dto.InputError
			require.True(t, errors.As(err, &inputErr))
		})
	}

	// No credit was touched and no message was published.
	user, err := f.factory.Uow.Users.FindOne(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, f.publisher.messages(t))
}

func TestGenerateSpendsCreditEvenWhenModelFails(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{err: genai.ErrRateLimited})
	userId := uuid.New()

	_, err := f.svc.Generate(ctx, userId, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.ErrorIs(t, err, genai.ErrRateLimited)

	// The credit stays consumed and the audit message is already out.
	user, findErr := f.factory.Uow.Users.FindOne(ctx)
	require.NoError(t, findErr)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.FaqDailyUsage)
	assert.Len(t, f.publisher.messages(t), 1)

	// But no document was created.
	docs, findErr := f.factory.Uow.Documents.FindAll(ctx)
	require.NoError(t, findErr)
	assert.Empty(t, docs)
}

func TestGenerateSpendsCreditOnUnparseableOutput(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: "Je ne peux pas faire cela."})
	userId := uuid.New()

	_, err := f.svc.Generate(ctx, userId, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.Error(t, err)

	user, findErr := f.factory.Uow.Users.FindOne(ctx)
	require.NoError(t, findErr)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.FaqDailyUsage)
}

func TestGenerateStopsAtDailyLimit(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	userId := uuid.New()
	req := &dto.GenerateFaqRequest{SourceType: "url", Url: "https://example.com"}

	for i := 0; i < quota.FreeDailyLimit; i++ {
		_, err := f.svc.Generate(ctx, userId, req)
		require.NoError(t, err)
	}

	_, err := f.svc.Generate(ctx, userId, req)
	var limitErr *dto.LimitExceededError
	require.True(t, errors.As(err, &limitErr))

	// The refused call produced no extra credit message.
	assert.Len(t, f.publisher.messages(t), quota.FreeDailyLimit)
}

func TestGenerateNormalizesItemIds(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: `{"faqs": [
		{"id": "", "question": "Q1?", "answer": "A1."},
		{"id": "faq-2", "question": "Q2?", "answer": "A2."},
		{"id": "faq-2", "question": "Q3?", "answer": "A3."}
	]}`})

	res, err := f.svc.Generate(ctx, uuid.New(), &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "faq-1", res.Items[0].Id)
	assert.Equal(t, "faq-2", res.Items[1].Id)
	assert.Equal(t, "faq-2-2", res.Items[2].Id)
}

func TestGenerateTitleFallbacks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		response  string
		req       *dto.GenerateFaqRequest
		wantTitle string
	}{
		{
			name:      "first question wins",
			response:  validFaqJson,
			req:       &dto.GenerateFaqRequest{SourceType: "file", FileName: "menu.pdf", ExtractedText: "texte"},
			wantTitle: "Quels sont vos horaires?",
		},
		{
			name:      "file name when no items",
			response:  `{"faqs": []}`,
			req:       &dto.GenerateFaqRequest{SourceType: "file", FileName: "menu.pdf", ExtractedText: "texte"},
			wantTitle: "FAQ pour menu.pdf",
		},
		{
			name:      "url when no items and no file",
			response:  `{"faqs": []}`,
			req:       &dto.GenerateFaqRequest{SourceType: "url", Url: "https://example.com"},
			wantTitle: "FAQ pour https://example.com",
		},
		{
			name:      "description truncated",
			response:  `{"faqs": []}`,
			req:       &dto.GenerateFaqRequest{SourceType: "url", Description: strings.Repeat("a", 60)},
			wantTitle: strings.Repeat("a", 50) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFaqServiceFixture(&stubGenerator{response: tt.response})
			res, err := f.svc.Generate(ctx, uuid.New(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, res.Title)
		})
	}
}

func TestShowIsShareable(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	owner := uuid.New()

	created, err := f.svc.Generate(ctx, owner, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)

	// Show takes no caller identity at all.
	shown, err := f.svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Title, shown.Title)
	assert.Len(t, shown.Items, 2)

	_, err = f.svc.Show(ctx, uuid.New())
	var notFound *dto.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestMutationsRequireOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	owner := uuid.New()
	stranger := uuid.New()

	created, err := f.svc.Generate(ctx, owner, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)

	var notFound *dto.NotFoundError

	err = f.svc.Delete(ctx, stranger, created.Id)
	require.True(t, errors.As(err, &notFound))

	_, err = f.svc.UpdateItem(ctx, stranger, &dto.UpdateFaqItemRequest{
		DocumentId: created.Id,
		ItemId:     "faq-1",
		Question:   "Autre?",
		Answer:     "Non.",
	})
	require.True(t, errors.As(err, &notFound))

	_, err = f.svc.DeleteItem(ctx, stranger, created.Id, "faq-1")
	require.True(t, errors.As(err, &notFound))

	// The document survived untouched.
	doc, findErr := f.factory.Uow.Documents.FindOne(ctx)
	require.NoError(t, findErr)
	require.NotNil(t, doc)
	assert.Len(t, doc.Items, 2)
}

func TestAddQuestionAppendsServerAssignedId(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	owner := uuid.New()

	created, err := f.svc.Generate(ctx, owner, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)

	f.generator.response = `{"question": "Acceptez-vous les chèques?", "answer": "Oui, sans problème."}`

	res, err := f.svc.AddQuestion(ctx, owner, &dto.AddQuestionRequest{
		DocumentId: created.Id,
		Question:   "Acceptez-vous les chèques?",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Item.Id, "faq-"))
	assert.Equal(t, "Acceptez-vous les chèques?", res.Item.Question)

	// The follow-up prompt carried the existing transcript.
	p := f.generator.lastPrompt()
	assert.Contains(t, p, "Q: Quels sont vos horaires?")
	assert.Contains(t, p, "Nouvelle question à créer: Acceptez-vous les chèques?")

	doc, findErr := f.factory.Uow.Documents.FindOne(ctx)
	require.NoError(t, findErr)
	require.Len(t, doc.Items, 3)
	assert.Equal(t, res.Item.Id, doc.Items[2].Id)

	// Both the generation and the follow-up spent a credit.
	msgs := f.publisher.messages(t)
	require.Len(t, msgs, 2)
	assert.Equal(t, ServiceFaqAddQuestion, msgs[1].Service)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	owner := uuid.New()

	created, err := f.svc.Generate(ctx, owner, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)

	res, err := f.svc.UpdateItem(ctx, owner, &dto.UpdateFaqItemRequest{
		DocumentId: created.Id,
		ItemId:     "faq-2",
		Question:   "Livrez-vous à domicile?",
		Answer:     "Oui, partout en France.",
	})
	require.NoError(t, err)
	assert.Equal(t, "faq-2", res.Item.Id)

	doc, findErr := f.factory.Uow.Documents.FindOne(ctx)
	require.NoError(t, findErr)
	assert.Equal(t, "Livrez-vous à domicile?", doc.Items[1].Question)

	// Unknown item id is a 404-class error.
	_, err = f.svc.UpdateItem(ctx, owner, &dto.UpdateFaqItemRequest{
		DocumentId: created.Id,
		ItemId:     "faq-99",
		Question:   "Q",
		Answer:     "A",
	})
	var notFound *dto.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	owner := uuid.New()

	created, err := f.svc.Generate(ctx, owner, &dto.GenerateFaqRequest{
		SourceType: "url",
		Url:        "https://example.com",
	})
	require.NoError(t, err)

	_, err = f.svc.DeleteItem(ctx, owner, created.Id, "faq-1")
	require.NoError(t, err)

	// Deleting the same id again still succeeds.
	_, err = f.svc.DeleteItem(ctx, owner, created.Id, "faq-1")
	require.NoError(t, err)

	doc, findErr := f.factory.Uow.Documents.FindOne(ctx)
	require.NoError(t, findErr)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "faq-2", doc.Items[0].Id)
}

func TestGetAllListsOnlyOwnDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	alice := uuid.New()
	bob := uuid.New()

	_, err := f.svc.Generate(ctx, alice, &dto.GenerateFaqRequest{SourceType: "url", Url: "https://a.example.com"})
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, bob, &dto.GenerateFaqRequest{SourceType: "url", Url: "https://b.example.com"})
	require.NoError(t, err)

	list, err := f.svc.GetAll(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ItemCount)
	assert.Equal(t, "url", list[0].SourceType)
}

func TestCreditsSummary(t *testing.T) {
	ctx := context.Background()
	f := newFaqServiceFixture(&stubGenerator{response: validFaqJson})
	userId := uuid.New()

	_, err := f.svc.Generate(ctx, userId, &dto.GenerateFaqRequest{SourceType: "url", Url: "https://example.com"})
	require.NoError(t, err)

	summary, err := f.svc.Credits(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, quota.FreeDailyLimit, summary.Limit)
	assert.Equal(t, 1, summary.Used)
	assert.Equal(t, quota.FreeDailyLimit-1, summary.Remaining)
	assert.True(t, summary.ResetAfter.After(time.Now()))
}
