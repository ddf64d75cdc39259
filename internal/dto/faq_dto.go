package dto

import (
	"time"

	"github.com/google/uuid"
)

type FaqItemDTO struct {
	Id       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GenerateFaqRequest struct {
	SourceType    string   `json:"source_type" validate:"required,oneof=url file"`
	Url           string   `json:"url" validate:"omitempty,url"`
	FileName      string   `json:"file_name"`
	ExtractedText string   `json:"extracted_text"`
	Description   string   `json:"description" validate:"max=2000"`
	Tone          string   `json:"tone" validate:"max=100"`
	Keywords      []string `json:"keywords" validate:"max=20,dive,max=100"`
}

type GenerateFaqResponse struct {
	Id        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Items     []FaqItemDTO `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

type GetAllFaqsResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	ItemCount  int        `json:"item_count"`
	SourceType string     `json:"source_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ShowFaqResponse struct {
	Id        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Items     []FaqItemDTO `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
}

type AddQuestionRequest struct {
	DocumentId uuid.UUID
	Question   string `json:"question" validate:"required,max=1000"`
}

type AddQuestionResponse struct {
	DocumentId uuid.UUID  `json:"document_id"`
	Item       FaqItemDTO `json:"item"`
}

type UpdateFaqItemRequest struct {
	DocumentId uuid.UUID
	ItemId     string
	Question   string `json:"question" validate:"required,max=1000"`
	Answer     string `json:"answer" validate:"required,max=5000"`
}

type UpdateFaqItemResponse struct {
	DocumentId uuid.UUID  `json:"document_id"`
	Item       FaqItemDTO `json:"item"`
}

type DeleteFaqItemResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	ItemId     string    `json:"item_id"`
}
