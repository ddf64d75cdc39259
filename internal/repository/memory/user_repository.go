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

// UserRepository is an in-memory contract.UserRepository used by the
// service and quota tests. It interprets the same specifications the
// gorm implementation feeds to the query builder.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	if u.FaqDailyLimitOverride != nil {
		v := *u.FaqDailyLimitOverride
		c.FaqDailyLimitOverride = &v
	}
	if u.Email != nil {
		e := *u.Email
		c.Email = &e
	}
	return &c
}

func (r *UserRepository) matches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email == nil || *u.Email != s.Email {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "id":
				if u.Id != s.Value {
					return false
				}
			case "status":
				if string(u.Status) != s.Value {
					return false
				}
			case "role":
				if string(u.Role) != s.Value {
					return false
				}
			}
		}
	}
	return true
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.Id] = copyUser(user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.users[user.Id] = copyUser(user)
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if r.matches(u, specs) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if r.matches(u, specs) {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if r.matches(u, specs) {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) ConsumeDailyCredit(ctx context.Context, id uuid.UUID, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	if u.FaqDailyUsage >= limit {
		return false, nil
	}
	u.FaqDailyUsage++
	return true, nil
}

func (r *UserRepository) ResetDailyUsage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.FaqDailyUsage = 0
		u.FaqDailyUsageLastReset = time.Now()
	}
	return nil
}

var _ contract.UserRepository = (*UserRepository)(nil)
