package contract

import (
	"context"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)

	CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error)
	FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error)
}
