package contract

import (
	"context"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ConsumeDailyCredit increments faq_daily_usage by one, but only while the
	// counter is still below limit. Returns false when the user is out of
	// credits. The check and the increment are a single statement, so two
	// concurrent calls can never both succeed on the last credit.
	ConsumeDailyCredit(ctx context.Context, id uuid.UUID, limit int) (bool, error)

	// ResetDailyUsage zeroes the counter and stamps the reset time.
	ResetDailyUsage(ctx context.Context, id uuid.UUID) error
}
