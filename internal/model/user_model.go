package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    *string   `gorm:"type:varchar(255);uniqueIndex"`
	FullName string    `gorm:"type:varchar(255)"`
	Role     string    `gorm:"type:varchar(20);not null;default:user"`
	Status   string    `gorm:"type:varchar(20);not null;default:active"`

	FaqDailyUsage          int       `gorm:"not null;default:0"`
	FaqDailyUsageLastReset time.Time `gorm:"not null;default:now()"`
	FaqDailyLimitOverride  *int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
