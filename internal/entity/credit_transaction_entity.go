package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreditTransaction is the audit trail behind the daily counter: one row
// per consumed credit, written by the consumer service off the pubsub.
type CreditTransaction struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Service   string // "faq_generate" | "faq_add_question"
	Amount    int    // negative for spend
	RelatedId *uuid.UUID
	Notes     *string
	CreatedAt time.Time
}
