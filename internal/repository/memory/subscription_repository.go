package memory

import (
	"context"
	"sync"
	"time"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/contract"
	"ai-faq-generator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*entity.SubscriptionPlan
	subs  map[uuid.UUID]*entity.UserSubscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		plans: make(map[uuid.UUID]*entity.SubscriptionPlan),
		subs:  make(map[uuid.UUID]*entity.UserSubscription),
	}
}

func (r *SubscriptionRepository) planMatches(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.BySlug:
			if p.Slug != s.Slug {
				return false
			}
		case specification.ActivePlans:
			if !p.IsActive {
				return false
			}
		}
	}
	return true
}

func (r *SubscriptionRepository) subMatches(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sub.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if sub.UserId != s.UserID {
				return false
			}
		case specification.ByStatus:
			if string(sub.Status) != s.Status {
				return false
			}
		case specification.ByPaymentStatus:
			if string(sub.PaymentStatus) != s.PaymentStatus {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "midtrans_transaction_id":
				if sub.MidtransTransactionId == nil || *sub.MidtransTransactionId != s.Value {
					return false
				}
			case "plan_id":
				if sub.PlanId != s.Value {
					return false
				}
			}
		}
	}
	return true
}

func (r *SubscriptionRepository) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	c := *plan
	r.plans[plan.Id] = &c
	return nil
}

func (r *SubscriptionRepository) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *plan
	r.plans[plan.Id] = &c
	return nil
}

func (r *SubscriptionRepository) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if r.planMatches(p, specs) {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepository) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SubscriptionPlan
	for _, p := range r.plans {
		if r.planMatches(p, specs) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	c := *sub
	r.subs[sub.Id] = &c
	return nil
}

func (r *SubscriptionRepository) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.UpdatedAt = time.Now()
	c := *sub
	r.subs[sub.Id] = &c
	return nil
}

func (r *SubscriptionRepository) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if r.subMatches(s, specs) {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepository) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserSubscription
	for _, s := range r.subs {
		if r.subMatches(s, specs) {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

var _ contract.SubscriptionRepository = (*SubscriptionRepository)(nil)
