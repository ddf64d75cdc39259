package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingPeriod string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Price         float64
	BillingPeriod BillingPeriod
	FaqDailyLimit int // FAQ generations per day, -1 = unlimited
	IsActive      bool
	SortOrder     int
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                SubscriptionStatus
	PaymentStatus         PaymentStatus
	CurrentPeriodStart    time.Time
	CurrentPeriodEnd      time.Time
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
