package contract

import (
	"context"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaqDocumentRepository interface {
	Create(ctx context.Context, doc *entity.FaqDocument) error
	Update(ctx context.Context, doc *entity.FaqDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
