package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-faq-generator-be/internal/config"
	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/pkg/logger"
	"ai-faq-generator-be/internal/repository/specification"
	"ai-faq-generator-be/internal/repository/unitofwork"
	"ai-faq-generator-be/pkg/events"
	"ai-faq-generator-be/pkg/faqgen/parser"
	"ai-faq-generator-be/pkg/faqgen/prompt"
	"ai-faq-generator-be/pkg/genai"
	pkgNats "ai-faq-generator-be/pkg/nats"
	"ai-faq-generator-be/pkg/quota"

	"github.com/google/uuid"
)

const (
	ServiceFaqGenerate    = "faq_generate"
	ServiceFaqAddQuestion = "faq_add_question"
)

type IFaqService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateFaqRequest) (*dto.GenerateFaqResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllFaqsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowFaqResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	AddQuestion(ctx context.Context, userId uuid.UUID, req *dto.AddQuestionRequest) (*dto.AddQuestionResponse, error)
	UpdateItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateFaqItemRequest) (*dto.UpdateFaqItemResponse, error)
	DeleteItem(ctx context.Context, userId uuid.UUID, docId uuid.UUID, itemId string) (*dto.DeleteFaqItemResponse, error)
	Credits(ctx context.Context, userId uuid.UUID) (*dto.CreditSummaryResponse, error)
}

type faqService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	generator        genai.Generator
	eventPublisher   *pkgNats.Publisher
	ledger           *quota.Ledger
	logger           logger.ILogger
	aiCfg            config.AIConfig
}

func NewFaqService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	generator genai.Generator,
	eventPublisher *pkgNats.Publisher,
	ledger *quota.Ledger,
	log logger.ILogger,
	aiCfg config.AIConfig,
) IFaqService {
	return &faqService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		generator:        generator,
		eventPublisher:   eventPublisher,
		ledger:           ledger,
		logger:           log,
		aiCfg:            aiCfg,
	}
}

func (s *faqService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateFaqRequest) (*dto.GenerateFaqResponse, error) {
	// Input checks run before any credit is touched.
	if err := validateSource(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ledger.TryConsume(ctx, uow, userId); err != nil {
		return nil, err
	}

	// The credit is spent from here on, even if the model call or the
	// persistence below fails.
	docId := uuid.New()
	s.recordSpend(ctx, userId, ServiceFaqGenerate, docId)

	builder := prompt.NewFaqBuilder(prompt.Input{
		Url:         req.Url,
		FileName:    req.FileName,
		FileContent: req.ExtractedText,
		Description: req.Description,
		Tone:        req.Tone,
		Keywords:    req.Keywords,
	})

	raw, err := s.generator.Generate(ctx, builder.Build(), s.aiCfg.MaxOutputTokens)
	if err != nil {
		s.logger.Error("FAQ", "Model call failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, err
	}

	items, err := parser.ParseFaqList(raw)
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			s.logger.Error("FAQ", "Unparseable model output", map[string]interface{}{
				"user_id": userId,
				"kind":    string(perr.Kind),
				"raw":     perr.Raw,
			})
		}
		return nil, err
	}

	normalizeItemIds(items)

	doc := entity.FaqDocument{
		Id:        docId,
		UserId:    userId,
		Title:     deriveTitle(items, req),
		Items:     items,
		Source:    sourceDescriptor(req),
		CreatedAt: time.Now(),
	}

	if err := uow.FaqDocumentRepository().Create(ctx, &doc); err != nil {
		return nil, &dto.StorageError{Op: "create faq document", Err: err}
	}

	s.publishEvent(ctx, "FAQ_GENERATED", map[string]interface{}{
		"document_id": doc.Id,
		"user_id":     userId,
		"item_count":  len(doc.Items),
		"source_type": string(doc.Source.Type),
		"occurred_at": time.Now(),
	})

	return &dto.GenerateFaqResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Items:     toItemDTOs(doc.Items),
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *faqService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllFaqsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.FaqDocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllFaqsResponse, 0, len(docs))
	for _, doc := range docs {
		res = append(res, &dto.GetAllFaqsResponse{
			Id:         doc.Id,
			Title:      doc.Title,
			ItemCount:  len(doc.Items),
			SourceType: string(doc.Source.Type),
			CreatedAt:  doc.CreatedAt,
			UpdatedAt:  doc.UpdatedAt,
		})
	}
	return res, nil
}

// Show has no owner restriction: generated FAQs are shareable by link.
func (s *faqService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowFaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.FaqDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &dto.NotFoundError{Resource: "faq document"}
	}

	return &dto.ShowFaqResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Items:     toItemDTOs(doc.Items),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *faqService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.FaqDocumentRepository().Delete(ctx, doc.Id)
}

func (s *faqService) AddQuestion(ctx context.Context, userId uuid.UUID, req *dto.AddQuestionRequest) (*dto.AddQuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := s.findOwned(ctx, uow, userId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.TryConsume(ctx, uow, userId); err != nil {
		return nil, err
	}
	s.recordSpend(ctx, userId, ServiceFaqAddQuestion, doc.Id)

	builder := prompt.NewAddQuestionBuilder(doc.Title, doc.Items, req.Question)
	raw, err := s.generator.Generate(ctx, builder.Build(), s.aiCfg.AddQuestionTokens)
	if err != nil {
		s.logger.Error("FAQ", "Model call failed", map[string]interface{}{
			"user_id":     userId,
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		return nil, err
	}

	question, answer, err := parser.ParseSingleQA(raw)
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			s.logger.Error("FAQ", "Unparseable model output", map[string]interface{}{
				"user_id":     userId,
				"document_id": doc.Id,
				"kind":        string(perr.Kind),
				"raw":         perr.Raw,
			})
		}
		return nil, err
	}

	item := entity.FaqItem{
		Id:       fmt.Sprintf("faq-%d", time.Now().UnixMilli()),
		Question: question,
		Answer:   answer,
	}
	doc.AppendItem(item)

	if err := uow.FaqDocumentRepository().Update(ctx, doc); err != nil {
		return nil, &dto.StorageError{Op: "append faq item", Err: err}
	}

	s.publishEvent(ctx, "FAQ_QUESTION_ADDED", map[string]interface{}{
		"document_id": doc.Id,
		"user_id":     userId,
		"item_id":     item.Id,
		"occurred_at": time.Now(),
	})

	return &dto.AddQuestionResponse{
		DocumentId: doc.Id,
		Item:       dto.FaqItemDTO{Id: item.Id, Question: item.Question, Answer: item.Answer},
	}, nil
}

func (s *faqService) UpdateItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateFaqItemRequest) (*dto.UpdateFaqItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := s.findOwned(ctx, uow, userId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	if !doc.UpdateItem(req.ItemId, req.Question, req.Answer) {
		return nil, &dto.NotFoundError{Resource: "faq item"}
	}

	if err := uow.FaqDocumentRepository().Update(ctx, doc); err != nil {
		return nil, &dto.StorageError{Op: "update faq item", Err: err}
	}

	return &dto.UpdateFaqItemResponse{
		DocumentId: doc.Id,
		Item:       dto.FaqItemDTO{Id: req.ItemId, Question: req.Question, Answer: req.Answer},
	}, nil
}

// DeleteItem is idempotent: deleting an absent item id succeeds.
func (s *faqService) DeleteItem(ctx context.Context, userId uuid.UUID, docId uuid.UUID, itemId string) (*dto.DeleteFaqItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := s.findOwned(ctx, uow, userId, docId)
	if err != nil {
		return nil, err
	}

	if doc.HasItem(itemId) {
		doc.RemoveItem(itemId)
		if err := uow.FaqDocumentRepository().Update(ctx, doc); err != nil {
			return nil, &dto.StorageError{Op: "delete faq item", Err: err}
		}
	}

	return &dto.DeleteFaqItemResponse{
		DocumentId: doc.Id,
		ItemId:     itemId,
	}, nil
}

func (s *faqService) Credits(ctx context.Context, userId uuid.UUID) (*dto.CreditSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.ledger.Summary(ctx, uow, userId)
}

// findOwned fetches a document and checks ownership. Mutating operations
// always go through here; only Show skips it.
func (s *faqService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, docId uuid.UUID) (*entity.FaqDocument, error) {
	doc, err := uow.FaqDocumentRepository().FindOne(ctx,
		specification.ByID{ID: docId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &dto.NotFoundError{Resource: "faq document"}
	}
	return doc, nil
}

func (s *faqService) recordSpend(ctx context.Context, userId uuid.UUID, service string, relatedId uuid.UUID) {
	msg := dto.CreditSpentMessage{
		UserId:     userId,
		Service:    service,
		Amount:     -1,
		DocumentId: relatedId,
		SpentAt:    time.Now(),
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Warn("FAQ", "Failed to publish credit message", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *faqService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("FAQ", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func validateSource(req *dto.GenerateFaqRequest) error {
	switch entity.SourceType(req.SourceType) {
	case entity.SourceTypeUrl:
		if req.Url == "" && req.Description == "" {
			return dto.NewInputError("url or description is required for url sources")
		}
	case entity.SourceTypeFile:
		if req.ExtractedText == "" {
			return dto.NewInputError("extracted_text is required for file sources")
		}
	default:
		return dto.NewInputError("source_type must be 'url' or 'file'")
	}
	return nil
}

func sourceDescriptor(req *dto.GenerateFaqRequest) entity.SourceDescriptor {
	return entity.SourceDescriptor{
		Type:          entity.SourceType(req.SourceType),
		Url:           req.Url,
		FileName:      req.FileName,
		ExtractedText: req.ExtractedText,
		Description:   req.Description,
		Tone:          req.Tone,
		Keywords:      req.Keywords,
	}
}

// normalizeItemIds fills in ids the model left blank and de-duplicates
// the ones it repeated.
func normalizeItemIds(items []entity.FaqItem) {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := items[i].Id
		if id == "" {
			id = fmt.Sprintf("faq-%d", i+1)
		}
		base := id
		for n := 2; ; n++ {
			if _, dup := seen[id]; !dup {
				break
			}
			id = fmt.Sprintf("%s-%d", base, n)
		}
		items[i].Id = id
		seen[id] = struct{}{}
	}
}

func deriveTitle(items []entity.FaqItem, req *dto.GenerateFaqRequest) string {
	if len(items) > 0 {
		return truncate(items[0].Question, 50)
	}
	if req.FileName != "" {
		return fmt.Sprintf("FAQ pour %s", req.FileName)
	}
	if req.Url != "" {
		return fmt.Sprintf("FAQ pour %s", req.Url)
	}
	if req.Description != "" {
		return truncate(req.Description, 50)
	}
	return fmt.Sprintf("FAQ générée le %s", time.Now().Format("02/01/2006"))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func toItemDTOs(items []entity.FaqItem) []dto.FaqItemDTO {
	res := make([]dto.FaqItemDTO, 0, len(items))
	for _, item := range items {
		res = append(res, dto.FaqItemDTO{
			Id:       item.Id,
			Question: item.Question,
			Answer:   item.Answer,
		})
	}
	return res
}
