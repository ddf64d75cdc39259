package quota

import (
	"context"
	"fmt"
	"math"
	"time"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/specification"
	"ai-faq-generator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// FreeDailyLimit applies when a user has no paid subscription.
const FreeDailyLimit = 5

const FreePlanName = "Gratuit"

// Ledger gates every model call behind the daily credit counter. The
// credit is consumed before the model is invoked and never given back.
type Ledger struct {
	limits *cache.Cache
}

type resolvedLimit struct {
	Limit int
	Plan  string
}

func NewLedger() *Ledger {
	// Plan lookups are cached briefly so a burst of requests does not
	// re-read the subscription tables on every call.
	return &Ledger{
		limits: cache.New(30*time.Second, time.Minute),
	}
}

// TryConsume takes one credit for userId or returns LimitExceededError.
// The user row is created on first access because accounts come from the
// identity provider, not from this service.
func (l *Ledger) TryConsume(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := l.ensureUser(ctx, uow, userId)
	if err != nil {
		return err
	}

	now := time.Now()
	if differentDay(now, user.FaqDailyUsageLastReset) {
		if err := uow.UserRepository().ResetDailyUsage(ctx, user.Id); err != nil {
			return err
		}
		user.FaqDailyUsage = 0
		user.FaqDailyUsageLastReset = now
	}

	resolved, err := l.resolveLimit(ctx, uow, user)
	if err != nil {
		return err
	}

	guard := resolved.Limit
	if guard < 0 {
		guard = math.MaxInt32
	}

	ok, err := uow.UserRepository().ConsumeDailyCredit(ctx, user.Id, guard)
	if err != nil {
		return err
	}
	if !ok {
		return &dto.LimitExceededError{
			Limit:      resolved.Limit,
			Used:       user.FaqDailyUsage,
			ResetAfter: nextMidnight(now),
		}
	}
	return nil
}

// Summary reports the current counter without consuming anything.
func (l *Ledger) Summary(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.CreditSummaryResponse, error) {
	user, err := l.ensureUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	used := user.FaqDailyUsage
	if differentDay(now, user.FaqDailyUsageLastReset) {
		used = 0
	}

	resolved, err := l.resolveLimit(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	remaining := resolved.Limit - used
	if resolved.Limit < 0 {
		remaining = -1
	} else if remaining < 0 {
		remaining = 0
	}

	return &dto.CreditSummaryResponse{
		Plan:       resolved.Plan,
		Limit:      resolved.Limit,
		Used:       used,
		Remaining:  remaining,
		ResetAfter: nextMidnight(now),
	}, nil
}

// ResolveLimit exposes the plan lookup for the admin views.
func (l *Ledger) ResolveLimit(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (int, string, error) {
	resolved, err := l.resolveLimit(ctx, uow, user)
	if err != nil {
		return 0, "", err
	}
	return resolved.Limit, resolved.Plan, nil
}

func (l *Ledger) ensureUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          0,
		FaqDailyUsageLastReset: time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// A concurrent request may have created the row first.
		existing, findErr := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

func (l *Ledger) resolveLimit(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (resolvedLimit, error) {
	if user.FaqDailyLimitOverride != nil {
		return resolvedLimit{Limit: *user.FaqDailyLimitOverride, Plan: "custom"}, nil
	}

	key := fmt.Sprintf("limit:%s", user.Id)
	if cached, found := l.limits.Get(key); found {
		return cached.(resolvedLimit), nil
	}

	resolved := resolvedLimit{Limit: FreeDailyLimit, Plan: FreePlanName}

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return resolvedLimit{}, err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		// Canceled subscriptions keep access until the period ends.
		if sub.Status == entity.SubscriptionStatusCanceled && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		if sub.PaymentStatus == entity.PaymentStatusPaid && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
	}

	if activeSub != nil {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
		if err == nil && plan != nil {
			resolved = resolvedLimit{Limit: plan.FaqDailyLimit, Plan: plan.Name}
		}
	}

	l.limits.Set(key, resolved, cache.DefaultExpiration)
	return resolved, nil
}

func differentDay(a, b time.Time) bool {
	return a.Year() != b.Year() || a.Month() != b.Month() || a.Day() != b.Day()
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
