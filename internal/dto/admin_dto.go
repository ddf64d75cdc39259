package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminUserUsageResponse struct {
	UserId        uuid.UUID `json:"user_id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Plan          string    `json:"plan"`
	DailyLimit    int       `json:"daily_limit"`
	UsedToday     int       `json:"used_today"`
	LastReset     time.Time `json:"last_reset"`
	DocumentCount int64     `json:"document_count"`
}

type AdminUsageListResponse struct {
	Users      []AdminUserUsageResponse `json:"users"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
}

type AdminCreditTransactionResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    uuid.UUID  `json:"user_id"`
	Service   string     `json:"service"`
	Amount    int        `json:"amount"`
	RelatedId *uuid.UUID `json:"related_id,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AdminSetLimitOverrideRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Limit  *int      `json:"limit"` // nil clears the override
}
