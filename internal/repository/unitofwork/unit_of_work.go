package unitofwork

import (
	"context"

	"ai-faq-generator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FaqDocumentRepository() contract.FaqDocumentRepository
	SubscriptionRepository() contract.SubscriptionRepository
	CreditTransactionRepository() contract.CreditTransactionRepository
}
