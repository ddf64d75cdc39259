package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, uow *memory.UnitOfWork, user *entity.User) {
	t.Helper()
	require.NoError(t, uow.Users.Create(context.Background(), user))
}

func TestTryConsumeCreatesUserLazily(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	err := ledger.TryConsume(ctx, uow, userId)
	require.NoError(t, err)

	user, err := uow.Users.FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userId, user.Id)
	assert.Equal(t, 1, user.FaqDailyUsage)
	assert.Equal(t, entity.UserRoleUser, user.Role)
}

func TestTryConsumeStopsAtFreeLimit(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	for i := 0; i < FreeDailyLimit; i++ {
		require.NoError(t, ledger.TryConsume(ctx, uow, userId))
	}

	err := ledger.TryConsume(ctx, uow, userId)
	var limitErr *dto.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, FreeDailyLimit, limitErr.Limit)
	assert.Equal(t, FreeDailyLimit, limitErr.Used)
	assert.True(t, limitErr.ResetAfter.After(time.Now()))
}

func TestTryConsumeConcurrentNeverOverspends(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsageLastReset: time.Now(),
	})

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.TryConsume(ctx, uow, userId)
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted++
			continue
		}
		var limitErr *dto.LimitExceededError
		require.True(t, errors.As(err, &limitErr), "unexpected error: %v", err)
	}
	assert.Equal(t, FreeDailyLimit, granted)

	user, err := uow.Users.FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, FreeDailyLimit, user.FaqDailyUsage)
}

func TestTryConsumeResetsOnNewDay(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          FreeDailyLimit,
		FaqDailyUsageLastReset: time.Now().Add(-48 * time.Hour),
	})

	require.NoError(t, ledger.TryConsume(ctx, uow, userId))

	user, err := uow.Users.FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, user.FaqDailyUsage)
}

func TestTryConsumeHonorsAdminOverride(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	override := 2
	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyLimitOverride:  &override,
		FaqDailyUsageLastReset: time.Now(),
	})

	require.NoError(t, ledger.TryConsume(ctx, uow, userId))
	require.NoError(t, ledger.TryConsume(ctx, uow, userId))

	err := ledger.TryConsume(ctx, uow, userId)
	var limitErr *dto.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 2, limitErr.Limit)
}

func TestTryConsumeUsesSubscribedPlanLimit(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          FreeDailyLimit,
		FaqDailyUsageLastReset: time.Now(),
	})

	plan := &entity.SubscriptionPlan{
		Id:            uuid.New(),
		Name:          "Pro",
		Slug:          "pro-monthly",
		FaqDailyLimit: 20,
		IsActive:      true,
	}
	require.NoError(t, uow.Subscriptions.CreatePlan(ctx, plan))
	require.NoError(t, uow.Subscriptions.CreateSubscription(ctx, &entity.UserSubscription{
		Id:                 uuid.New(),
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		PaymentStatus:      entity.PaymentStatusPaid,
		CurrentPeriodStart: time.Now().Add(-time.Hour),
		CurrentPeriodEnd:   time.Now().Add(30 * 24 * time.Hour),
	}))

	// Already past the free limit, but the Pro plan allows more.
	require.NoError(t, ledger.TryConsume(ctx, uow, userId))

	summary, err := ledger.Summary(ctx, uow, userId)
	require.NoError(t, err)
	assert.Equal(t, "Pro", summary.Plan)
	assert.Equal(t, 20, summary.Limit)
}

func TestTryConsumeIgnoresExpiredSubscription(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          FreeDailyLimit,
		FaqDailyUsageLastReset: time.Now(),
	})

	plan := &entity.SubscriptionPlan{
		Id:            uuid.New(),
		Name:          "Pro",
		Slug:          "pro-monthly",
		FaqDailyLimit: 20,
		IsActive:      true,
	}
	require.NoError(t, uow.Subscriptions.CreatePlan(ctx, plan))
	require.NoError(t, uow.Subscriptions.CreateSubscription(ctx, &entity.UserSubscription{
		Id:                 uuid.New(),
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		PaymentStatus:      entity.PaymentStatusPaid,
		CurrentPeriodStart: time.Now().Add(-60 * 24 * time.Hour),
		CurrentPeriodEnd:   time.Now().Add(-30 * 24 * time.Hour),
	}))

	err := ledger.TryConsume(ctx, uow, userId)
	var limitErr *dto.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, FreeDailyLimit, limitErr.Limit)
}

func TestUnlimitedPlan(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          1000,
		FaqDailyUsageLastReset: time.Now(),
	})

	plan := &entity.SubscriptionPlan{
		Id:            uuid.New(),
		Name:          "Illimité",
		Slug:          "unlimited-monthly",
		FaqDailyLimit: -1,
		IsActive:      true,
	}
	require.NoError(t, uow.Subscriptions.CreatePlan(ctx, plan))
	require.NoError(t, uow.Subscriptions.CreateSubscription(ctx, &entity.UserSubscription{
		Id:                 uuid.New(),
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		PaymentStatus:      entity.PaymentStatusPaid,
		CurrentPeriodStart: time.Now().Add(-time.Hour),
		CurrentPeriodEnd:   time.Now().Add(30 * 24 * time.Hour),
	}))

	require.NoError(t, ledger.TryConsume(ctx, uow, userId))

	summary, err := ledger.Summary(ctx, uow, userId)
	require.NoError(t, err)
	assert.Equal(t, -1, summary.Limit)
	assert.Equal(t, -1, summary.Remaining)
}

func TestSummaryForFreshUser(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	summary, err := ledger.Summary(ctx, uow, userId)
	require.NoError(t, err)

	assert.Equal(t, FreePlanName, summary.Plan)
	assert.Equal(t, FreeDailyLimit, summary.Limit)
	assert.Equal(t, 0, summary.Used)
	assert.Equal(t, FreeDailyLimit, summary.Remaining)
	assert.True(t, summary.ResetAfter.After(time.Now()))
}

func TestSummaryReportsStaleUsageAsZero(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork()
	ledger := NewLedger()
	userId := uuid.New()

	seedUser(t, uow, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          4,
		FaqDailyUsageLastReset: time.Now().Add(-48 * time.Hour),
	})

	summary, err := ledger.Summary(ctx, uow, userId)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Used)
	assert.Equal(t, FreeDailyLimit, summary.Remaining)
}
