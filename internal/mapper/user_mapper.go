package mapper

import (
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                     u.Id,
		Email:                  u.Email,
		FullName:               u.FullName,
		Role:                   entity.UserRole(u.Role),
		Status:                 entity.UserStatus(u.Status),
		FaqDailyUsage:          u.FaqDailyUsage,
		FaqDailyUsageLastReset: u.FaqDailyUsageLastReset,
		FaqDailyLimitOverride:  u.FaqDailyLimitOverride,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                     u.Id,
		Email:                  u.Email,
		FullName:               u.FullName,
		Role:                   string(u.Role),
		Status:                 string(u.Status),
		FaqDailyUsage:          u.FaqDailyUsage,
		FaqDailyUsageLastReset: u.FaqDailyUsageLastReset,
		FaqDailyLimitOverride:  u.FaqDailyLimitOverride,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
