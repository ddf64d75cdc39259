package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreditSpentMessage travels over the in-process pubsub from the FAQ
// service to the consumer that writes the audit row.
type CreditSpentMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Service    string    `json:"service"`
	Amount     int       `json:"amount"`
	DocumentId uuid.UUID `json:"document_id"`
	SpentAt    time.Time `json:"spent_at"`
}
