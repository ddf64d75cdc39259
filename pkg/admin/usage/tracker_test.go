package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/memory"
	"ai-faq-generator-be/pkg/quota"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTrackerFixture() (*Tracker, *memory.UnitOfWork) {
	uow := memory.NewUnitOfWork()
	return NewTracker(nopLogger{}, quota.NewLedger()), uow
}

func TestGetUsageReportsLimitsAndDocuments(t *testing.T) {
	ctx := context.Background()
	tracker, uow := newTrackerFixture()

	email := "alice@example.com"
	override := 50
	alice := &entity.User{
		Id:                     uuid.New(),
		Email:                  &email,
		FullName:               "Alice",
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          3,
		FaqDailyUsageLastReset: time.Now(),
		FaqDailyLimitOverride:  &override,
	}
	require.NoError(t, uow.Users.Create(ctx, alice))

	bob := &entity.User{
		Id:                     uuid.New(),
		FullName:               "Bob",
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsageLastReset: time.Now(),
	}
	require.NoError(t, uow.Users.Create(ctx, bob))

	require.NoError(t, uow.Documents.Create(ctx, &entity.FaqDocument{
		Id:     uuid.New(),
		UserId: alice.Id,
		Title:  "FAQ pour example.com",
	}))

	res, err := tracker.GetUsage(ctx, uow, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Users, 2)

	byId := make(map[uuid.UUID]dto.AdminUserUsageResponse, 2)
	for _, row := range res.Users {
		byId[row.UserId] = row
	}

	aliceRow := byId[alice.Id]
	assert.Equal(t, "alice@example.com", aliceRow.Email)
	assert.Equal(t, "custom", aliceRow.Plan)
	assert.Equal(t, 50, aliceRow.DailyLimit)
	assert.Equal(t, 3, aliceRow.UsedToday)
	assert.Equal(t, int64(1), aliceRow.DocumentCount)

	bobRow := byId[bob.Id]
	assert.Equal(t, quota.FreePlanName, bobRow.Plan)
	assert.Equal(t, quota.FreeDailyLimit, bobRow.DailyLimit)
	assert.Equal(t, int64(0), bobRow.DocumentCount)
}

func TestSetLimitOverride(t *testing.T) {
	ctx := context.Background()
	tracker, uow := newTrackerFixture()

	userId := uuid.New()
	require.NoError(t, uow.Users.Create(ctx, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsageLastReset: time.Now(),
	}))

	limit := 100
	user, err := tracker.SetLimitOverride(ctx, uow, dto.AdminSetLimitOverrideRequest{
		UserId: userId,
		Limit:  &limit,
	})
	require.NoError(t, err)
	require.NotNil(t, user.FaqDailyLimitOverride)
	assert.Equal(t, 100, *user.FaqDailyLimitOverride)

	// Nil limit clears the override back to plan-based resolution.
	user, err = tracker.SetLimitOverride(ctx, uow, dto.AdminSetLimitOverrideRequest{
		UserId: userId,
		Limit:  nil,
	})
	require.NoError(t, err)
	assert.Nil(t, user.FaqDailyLimitOverride)

	stored, err := uow.Users.FindOne(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored.FaqDailyLimitOverride)
}

func TestSetLimitOverrideUnknownUser(t *testing.T) {
	ctx := context.Background()
	tracker, uow := newTrackerFixture()

	limit := 10
	_, err := tracker.SetLimitOverride(ctx, uow, dto.AdminSetLimitOverrideRequest{
		UserId: uuid.New(),
		Limit:  &limit,
	})
	var notFound *dto.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestResetUsage(t *testing.T) {
	ctx := context.Background()
	tracker, uow := newTrackerFixture()

	userId := uuid.New()
	require.NoError(t, uow.Users.Create(ctx, &entity.User{
		Id:                     userId,
		Role:                   entity.UserRoleUser,
		Status:                 entity.UserStatusActive,
		FaqDailyUsage:          5,
		FaqDailyUsageLastReset: time.Now().Add(-time.Hour),
	}))

	user, err := tracker.ResetUsage(ctx, uow, userId)
	require.NoError(t, err)
	assert.Equal(t, 0, user.FaqDailyUsage)

	stored, err := uow.Users.FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FaqDailyUsage)
}

func TestGetTransactions(t *testing.T) {
	ctx := context.Background()
	tracker, uow := newTrackerFixture()

	userId := uuid.New()
	other := uuid.New()
	docId := uuid.New()

	require.NoError(t, uow.Transactions.Create(ctx, &entity.CreditTransaction{
		Id: uuid.New(), UserId: userId, Service: "faq_generate", Amount: -1,
		RelatedId: &docId, CreatedAt: time.Now(),
	}))
	require.NoError(t, uow.Transactions.Create(ctx, &entity.CreditTransaction{
		Id: uuid.New(), UserId: other, Service: "faq_generate", Amount: -1,
		CreatedAt: time.Now(),
	}))

	rows, err := tracker.GetTransactions(ctx, uow, userId, 1, 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, userId, rows[0].UserId)
	assert.Equal(t, "faq_generate", rows[0].Service)
	assert.Equal(t, -1, rows[0].Amount)
	require.NotNil(t, rows[0].RelatedId)
	assert.Equal(t, docId, *rows[0].RelatedId)
}
