package implementation

import (
	"context"
	"errors"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/mapper"
	"ai-faq-generator-be/internal/model"
	"ai-faq-generator-be/internal/repository/contract"
	"ai-faq-generator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaqDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaqMapper
}

func NewFaqDocumentRepository(db *gorm.DB) contract.FaqDocumentRepository {
	return &FaqDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaqMapper(),
	}
}

func (r *FaqDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FaqDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.FaqDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaqDocumentRepositoryImpl) Update(ctx context.Context, doc *entity.FaqDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaqDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FaqDocument{}, id).Error
}

func (r *FaqDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqDocument, error) {
	var m model.FaqDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FaqDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqDocument, error) {
	var models []*model.FaqDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FaqDocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FaqDocument{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
