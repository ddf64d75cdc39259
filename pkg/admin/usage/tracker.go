package usage

import (
	"context"
	"time"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/pkg/logger"
	"ai-faq-generator-be/internal/repository/specification"
	"ai-faq-generator-be/internal/repository/unitofwork"
	"ai-faq-generator-be/pkg/quota"

	"github.com/google/uuid"
)

// Tracker backs the admin views over credit usage.
type Tracker struct {
	logger logger.ILogger
	ledger *quota.Ledger
}

func NewTracker(logger logger.ILogger, ledger *quota.Ledger) *Tracker {
	return &Tracker{
		logger: logger,
		ledger: ledger,
	}
}

// GetUsage retrieves paginated users with their FAQ credit usage.
func (t *Tracker) GetUsage(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int) (*dto.AdminUsageListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	users, err := uow.UserRepository().FindAll(ctx,
		specification.Pagination{Limit: limit, Offset: offset},
		specification.OrderBy{Field: "faq_daily_usage", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AdminUserUsageResponse, 0, len(users))
	for _, user := range users {
		dailyLimit, planName, err := t.ledger.ResolveLimit(ctx, uow, user)
		if err != nil {
			return nil, err
		}

		docCount, err := uow.FaqDocumentRepository().Count(ctx,
			specification.UserOwnedBy{UserID: user.Id})
		if err != nil {
			return nil, err
		}

		email := ""
		if user.Email != nil {
			email = *user.Email
		}

		rows = append(rows, dto.AdminUserUsageResponse{
			UserId:        user.Id,
			Email:         email,
			FullName:      user.FullName,
			Plan:          planName,
			DailyLimit:    dailyLimit,
			UsedToday:     user.FaqDailyUsage,
			LastReset:     user.FaqDailyUsageLastReset,
			DocumentCount: docCount,
		})
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &dto.AdminUsageListResponse{
		Users:      rows,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
	}, nil
}

// SetLimitOverride pins (or clears) a per-user daily limit regardless of plan.
func (t *Tracker) SetLimitOverride(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminSetLimitOverrideRequest) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	user.FaqDailyLimitOverride = req.Limit
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	t.logger.Info("ADMIN", "Updated FAQ limit override", map[string]interface{}{
		"user_id": req.UserId,
		"limit":   req.Limit,
	})

	return user, nil
}

// ResetUsage zeroes a user's daily counter.
func (t *Tracker) ResetUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	if err := uow.UserRepository().ResetDailyUsage(ctx, userId); err != nil {
		return nil, err
	}
	user.FaqDailyUsage = 0
	user.FaqDailyUsageLastReset = time.Now()

	t.logger.Info("ADMIN", "Reset FAQ usage", map[string]interface{}{
		"user_id": userId,
	})

	return user, nil
}

// GetTransactions lists the audit rows behind a user's counter.
func (t *Tracker) GetTransactions(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, page, limit int) ([]dto.AdminCreditTransactionResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	txs, err := uow.CreditTransactionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AdminCreditTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, dto.AdminCreditTransactionResponse{
			Id:        tx.Id,
			UserId:    tx.UserId,
			Service:   tx.Service,
			Amount:    tx.Amount,
			RelatedId: tx.RelatedId,
			Notes:     tx.Notes,
			CreatedAt: tx.CreatedAt,
		})
	}
	return rows, nil
}
