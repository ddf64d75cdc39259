package mapper

import (
	"encoding/json"
	"time"

	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/model"

	"gorm.io/datatypes"
)

// jsonFaqItem is the stored shape of one item inside the faqs JSONB column.
// Kept identical to the wire shape the frontend consumes.
type jsonFaqItem struct {
	Id       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type jsonSourceData struct {
	Type        string   `json:"type"`
	Url         string   `json:"url,omitempty"`
	FileName    string   `json:"file_name,omitempty"`
	FileContent string   `json:"file_content,omitempty"`
	Description string   `json:"description,omitempty"`
	Tone        string   `json:"tone,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(d *model.FaqDocument) *entity.FaqDocument {
	if d == nil {
		return nil
	}

	var rawItems []jsonFaqItem
	// A document is never written without a faqs array; an unreadable column
	// degrades to an empty item list rather than failing the read.
	_ = json.Unmarshal(d.Faqs, &rawItems)

	items := make([]entity.FaqItem, 0, len(rawItems))
	for _, it := range rawItems {
		items = append(items, entity.FaqItem{
			Id:       it.Id,
			Question: it.Question,
			Answer:   it.Answer,
		})
	}

	var rawSource jsonSourceData
	_ = json.Unmarshal(d.SourceData, &rawSource)

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() && !d.UpdatedAt.Equal(d.CreatedAt) {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.FaqDocument{
		Id:     d.Id,
		UserId: d.UserId,
		Title:  d.Title,
		Items:  items,
		Source: entity.SourceDescriptor{
			Type:          entity.SourceType(rawSource.Type),
			Url:           rawSource.Url,
			FileName:      rawSource.FileName,
			ExtractedText: rawSource.FileContent,
			Description:   rawSource.Description,
			Tone:          rawSource.Tone,
			Keywords:      rawSource.Keywords,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaqMapper) ToModel(d *entity.FaqDocument) *model.FaqDocument {
	if d == nil {
		return nil
	}

	rawItems := make([]jsonFaqItem, 0, len(d.Items))
	for _, it := range d.Items {
		rawItems = append(rawItems, jsonFaqItem{
			Id:       it.Id,
			Question: it.Question,
			Answer:   it.Answer,
		})
	}
	faqsJson, _ := json.Marshal(rawItems)

	sourceJson, _ := json.Marshal(jsonSourceData{
		Type:        string(d.Source.Type),
		Url:         d.Source.Url,
		FileName:    d.Source.FileName,
		FileContent: d.Source.ExtractedText,
		Description: d.Source.Description,
		Tone:        d.Source.Tone,
		Keywords:    d.Source.Keywords,
	})

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.FaqDocument{
		Id:         d.Id,
		UserId:     d.UserId,
		Title:      d.Title,
		Faqs:       datatypes.JSON(faqsJson),
		SourceData: datatypes.JSON(sourceJson),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *FaqMapper) ToEntities(docs []*model.FaqDocument) []*entity.FaqDocument {
	entities := make([]*entity.FaqDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
