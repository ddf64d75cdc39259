package service

import (
	"context"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/repository/unitofwork"
	"ai-faq-generator-be/pkg/admin/usage"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetUsage(ctx context.Context, page, limit int) (*dto.AdminUsageListResponse, error)
	SetLimitOverride(ctx context.Context, req *dto.AdminSetLimitOverrideRequest) error
	ResetUsage(ctx context.Context, userId uuid.UUID) error
	GetTransactions(ctx context.Context, userId uuid.UUID, page, limit int) ([]dto.AdminCreditTransactionResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	tracker    *usage.Tracker
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, tracker *usage.Tracker) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		tracker:    tracker,
	}
}

func (s *adminService) GetUsage(ctx context.Context, page, limit int) (*dto.AdminUsageListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.tracker.GetUsage(ctx, uow, page, limit)
}

func (s *adminService) SetLimitOverride(ctx context.Context, req *dto.AdminSetLimitOverrideRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := s.tracker.SetLimitOverride(ctx, uow, *req)
	return err
}

func (s *adminService) ResetUsage(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := s.tracker.ResetUsage(ctx, uow, userId)
	return err
}

func (s *adminService) GetTransactions(ctx context.Context, userId uuid.UUID, page, limit int) ([]dto.AdminCreditTransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.tracker.GetTransactions(ctx, uow, userId, page, limit)
}
