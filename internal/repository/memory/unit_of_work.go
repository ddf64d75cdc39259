package memory

import (
	"context"

	"ai-faq-generator-be/internal/repository/contract"
	"ai-faq-generator-be/internal/repository/unitofwork"
)

// UnitOfWork hands out the shared in-memory repositories. Begin/Commit
// are no-ops: the memory stores mutate in place.
type UnitOfWork struct {
	Users         *UserRepository
	Documents     *FaqDocumentRepository
	Subscriptions *SubscriptionRepository
	Transactions  *CreditTransactionRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Users:         NewUserRepository(),
		Documents:     NewFaqDocumentRepository(),
		Subscriptions: NewSubscriptionRepository(),
		Transactions:  NewCreditTransactionRepository(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return u.Users
}

func (u *UnitOfWork) FaqDocumentRepository() contract.FaqDocumentRepository {
	return u.Documents
}

func (u *UnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return u.Subscriptions
}

func (u *UnitOfWork) CreditTransactionRepository() contract.CreditTransactionRepository {
	return u.Transactions
}

// Factory returns the same unit of work for every request so tests can
// seed state up front and inspect it afterwards.
type Factory struct {
	Uow *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{Uow: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.Uow
}

var (
	_ unitofwork.UnitOfWork        = (*UnitOfWork)(nil)
	_ unitofwork.RepositoryFactory = (*Factory)(nil)
)
