package engine

import (
	"encoding/json"
	"fmt"

	"github.com/Spok95/compliance-audit/internal/models"
)

// rawField — поле как оно приходит с сервера. Вес исторически живёт под
// двумя именами (weight и weightage); нормализуем здесь один раз, чтобы
// скоринг про это не знал.
type rawField struct {
	ID          string               `json:"id"`
	Kind        string               `json:"kind"`
	Label       string               `json:"label"`
	Required    bool                 `json:"required"`
	Placeholder string               `json:"placeholder"`
	Weight      *float64             `json:"weight"`
	Weightage   *float64             `json:"weightage"`
	Options     []models.FieldOption `json:"options"`
}

type rawSchema struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      *[]rawField `json:"fields"`
}

// ParseSchema разбирает JSON-документ формы в FormSchema.
// Отклоняет документ без fields, дубликаты id и неизвестные kind.
// После разбора схема считается неизменяемой.
func ParseSchema(doc []byte) (*models.FormSchema, error) {
	var raw rawSchema
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("malformed document: %v", err)}
	}
	if raw.Fields == nil {
		return nil, &SchemaError{Reason: "fields is missing"}
	}

	seen := make(map[string]struct{}, len(*raw.Fields))
	fields := make([]models.FieldDefinition, 0, len(*raw.Fields))
	for i, rf := range *raw.Fields {
		if rf.ID == "" {
			return nil, &SchemaError{Reason: fmt.Sprintf("field #%d has empty id", i)}
		}
		if _, dup := seen[rf.ID]; dup {
			return nil, &SchemaError{Reason: fmt.Sprintf("duplicate field id %q", rf.ID)}
		}
		seen[rf.ID] = struct{}{}

		kind := models.FieldKind(rf.Kind)
		if !kind.Valid() {
			return nil, &SchemaError{Reason: fmt.Sprintf("field %q: unknown kind %q", rf.ID, rf.Kind)}
		}

		w, err := normalizeWeight(rf)
		if err != nil {
			return nil, err
		}

		fields = append(fields, models.FieldDefinition{
			ID:          rf.ID,
			Kind:        kind,
			Label:       rf.Label,
			Required:    rf.Required,
			Placeholder: rf.Placeholder,
			Weight:      w,
			Options:     rf.Options,
		})
	}

	return &models.FormSchema{
		Title:       raw.Title,
		Description: raw.Description,
		Fields:      fields,
	}, nil
}

// normalizeWeight: weight приоритетнее weightage, отсутствие обоих — вес 1.
func normalizeWeight(rf rawField) (float64, error) {
	w := 1.0
	switch {
	case rf.Weight != nil:
		w = *rf.Weight
	case rf.Weightage != nil:
		w = *rf.Weightage
	}
	if w < 0 {
		return 0, &SchemaError{Reason: fmt.Sprintf("field %q: negative weight %v", rf.ID, w)}
	}
	return w, nil
}
