package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/contract"
	"ai-faq-generator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaqDocumentRepository struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.FaqDocument
}

func NewFaqDocumentRepository() *FaqDocumentRepository {
	return &FaqDocumentRepository{
		docs: make(map[uuid.UUID]*entity.FaqDocument),
	}
}

func copyDoc(d *entity.FaqDocument) *entity.FaqDocument {
	c := *d
	c.Items = append([]entity.FaqItem(nil), d.Items...)
	c.Source.Keywords = append([]string(nil), d.Source.Keywords...)
	if d.UpdatedAt != nil {
		t := *d.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func (r *FaqDocumentRepository) matches(d *entity.FaqDocument, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if d.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "user_id":
				if d.UserId != s.Value {
					return false
				}
			case "title":
				if d.Title != s.Value {
					return false
				}
			}
		}
	}
	return true
}

func applyOrderAndPage(docs []*entity.FaqDocument, specs []specification.Specification) []*entity.FaqDocument {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.SliceStable(docs, func(i, j int) bool {
				if s.Desc {
					return docs[i].CreatedAt.After(docs[j].CreatedAt)
				}
				return docs[i].CreatedAt.Before(docs[j].CreatedAt)
			})
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(docs) {
				return nil
			}
			docs = docs[s.Offset:]
			if s.Limit > 0 && s.Limit < len(docs) {
				docs = docs[:s.Limit]
			}
		}
	}
	return docs
}

func (r *FaqDocumentRepository) Create(ctx context.Context, doc *entity.FaqDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	r.docs[doc.Id] = copyDoc(doc)
	return nil
}

func (r *FaqDocumentRepository) Update(ctx context.Context, doc *entity.FaqDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	doc.UpdatedAt = &now
	r.docs[doc.Id] = copyDoc(doc)
	return nil
}

func (r *FaqDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *FaqDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if r.matches(d, specs) {
			return copyDoc(d), nil
		}
	}
	return nil, nil
}

func (r *FaqDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.FaqDocument
	for _, d := range r.docs {
		if r.matches(d, specs) {
			out = append(out, copyDoc(d))
		}
	}
	return applyOrderAndPage(out, specs), nil
}

func (r *FaqDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.docs {
		if r.matches(d, specs) {
			n++
		}
	}
	return n, nil
}

var _ contract.FaqDocumentRepository = (*FaqDocumentRepository)(nil)
