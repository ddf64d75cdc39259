package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FaqDocument keeps the ordered item array in a single JSONB column so a
// mutation is always a whole-array replace inside one UPDATE.
type FaqDocument struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Faqs       datatypes.JSON `gorm:"not null"`
	SourceData datatypes.JSON
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (FaqDocument) TableName() string {
	return "faq_documents"
}
