package mapper

import (
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		BillingPeriod: entity.BillingPeriod(p.BillingPeriod),
		FaqDailyLimit: p.FaqDailyLimit,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		BillingPeriod: string(p.BillingPeriod),
		FaqDailyLimit: p.FaqDailyLimit,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		PaymentStatus:         string(s.PaymentStatus),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionsToEntities(subs []*model.UserSubscription) []*entity.UserSubscription {
	entities := make([]*entity.UserSubscription, len(subs))
	for i, s := range subs {
		entities[i] = m.SubscriptionToEntity(s)
	}
	return entities
}

type CreditTransactionMapper struct{}

func NewCreditTransactionMapper() *CreditTransactionMapper {
	return &CreditTransactionMapper{}
}

func (m *CreditTransactionMapper) ToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:        t.Id,
		UserId:    t.UserId,
		Service:   t.Service,
		Amount:    t.Amount,
		RelatedId: t.RelatedId,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

func (m *CreditTransactionMapper) ToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:        t.Id,
		UserId:    t.UserId,
		Service:   t.Service,
		Amount:    t.Amount,
		RelatedId: t.RelatedId,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

func (m *CreditTransactionMapper) ToEntities(txs []*model.CreditTransaction) []*entity.CreditTransaction {
	entities := make([]*entity.CreditTransaction, len(txs))
	for i, t := range txs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
