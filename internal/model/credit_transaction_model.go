package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransaction struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Service   string     `gorm:"type:varchar(50);not null;index"`
	Amount    int        `gorm:"not null"`
	RelatedId *uuid.UUID `gorm:"type:uuid"`
	Notes     *string    `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"default:now();not null"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
