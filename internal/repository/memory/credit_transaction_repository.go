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

type CreditTransactionRepository struct {
	mu  sync.Mutex
	txs []*entity.CreditTransaction
}

func NewCreditTransactionRepository() *CreditTransactionRepository {
	return &CreditTransactionRepository{}
}

func (r *CreditTransactionRepository) matches(t *entity.CreditTransaction, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if t.UserId != s.UserID {
				return false
			}
		case specification.ByService:
			if t.Service != s.Service {
				return false
			}
		}
	}
	return true
}

func (r *CreditTransactionRepository) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.Id == uuid.Nil {
		tx.Id = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	c := *tx
	r.txs = append(r.txs, &c)
	return nil
}

func (r *CreditTransactionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditTransaction
	for _, t := range r.txs {
		if r.matches(t, specs) {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *CreditTransactionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.txs {
		if r.matches(t, specs) {
			n++
		}
	}
	return n, nil
}

var _ contract.CreditTransactionRepository = (*CreditTransactionRepository)(nil)
