package contract

import (
	"context"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/specification"
)

type CreditTransactionRepository interface {
	Create(ctx context.Context, tx *entity.CreditTransaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
