package entity

import (
	"time"

	"github.com/google/uuid"
)

type SourceType string

const (
	SourceTypeUrl  SourceType = "url"
	SourceTypeFile SourceType = "file"
)

// FaqItem is one question/answer pair. Item ids are strings ("faq-1")
// because the model proposes them on the create flow and the server
// assigns timestamp-based ones on append.
type FaqItem struct {
	Id       string
	Question string
	Answer   string
}

// SourceDescriptor captures the input the document was generated from.
// Recorded once at creation for provenance, never consulted afterwards.
type SourceDescriptor struct {
	Type          SourceType
	Url           string
	FileName      string
	ExtractedText string
	Description   string
	Tone          string
	Keywords      []string
}

type FaqDocument struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Items     []FaqItem
	Source    SourceDescriptor
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// AppendItem adds an item at the end, preserving display order.
func (d *FaqDocument) AppendItem(item FaqItem) {
	d.Items = append(d.Items, item)
}

// RemoveItem deletes the item with the given id. Removing an absent id is
// a no-op so deletes stay idempotent.
func (d *FaqDocument) RemoveItem(itemId string) {
	filtered := make([]FaqItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Id != itemId {
			filtered = append(filtered, item)
		}
	}
	d.Items = filtered
}

// UpdateItem replaces question/answer of the item with the given id.
// Returns false if no item matched.
func (d *FaqDocument) UpdateItem(itemId, question, answer string) bool {
	for i := range d.Items {
		if d.Items[i].Id == itemId {
			d.Items[i].Question = question
			d.Items[i].Answer = answer
			return true
		}
	}
	return false
}

func (d *FaqDocument) HasItem(itemId string) bool {
	for _, item := range d.Items {
		if item.Id == itemId {
			return true
		}
	}
	return false
}
