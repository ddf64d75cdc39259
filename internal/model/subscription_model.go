package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Slug          string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description   string    `gorm:"type:text"`
	Price         float64   `gorm:"not null;default:0"`
	BillingPeriod string    `gorm:"type:varchar(20);not null;default:monthly"`
	FaqDailyLimit int       `gorm:"not null;default:5"`
	IsActive      bool      `gorm:"not null;default:true"`
	SortOrder     int       `gorm:"not null;default:0"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null"`
	Status                string    `gorm:"type:varchar(20);not null;default:inactive"`
	PaymentStatus         string    `gorm:"type:varchar(20);not null;default:pending"`
	CurrentPeriodStart    time.Time `gorm:"not null"`
	CurrentPeriodEnd      time.Time `gorm:"not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(100)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
