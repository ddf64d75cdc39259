package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User mirrors the identity provider's account locally and carries the
// credit counters. Rows are created lazily on a user's first generation
// request, so Email may be unknown at that point.
type User struct {
	Id       uuid.UUID
	Email    *string
	FullName string
	Role     UserRole
	Status   UserStatus

	FaqDailyUsage          int
	FaqDailyUsageLastReset time.Time
	FaqDailyLimitOverride  *int // Nullable admin override

	CreatedAt time.Time
	UpdatedAt time.Time
}
