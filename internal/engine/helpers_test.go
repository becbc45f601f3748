package engine_test

import (
	"github.com/Spok95/compliance-audit/internal/models"
)

func boolField(id, label string, weight float64, required bool) models.FieldDefinition {
	return models.FieldDefinition{
		ID: id, Kind: models.FieldBoolean, Label: label,
		Required: required, Weight: weight,
	}
}

func selectField(id, label string, weight float64, required bool, opts ...models.FieldOption) models.FieldDefinition {
	return models.FieldDefinition{
		ID: id, Kind: models.FieldSelect, Label: label,
		Required: required, Weight: weight, Options: opts,
	}
}

func textField(id, label string, required bool) models.FieldDefinition {
	return models.FieldDefinition{
		ID: id, Kind: models.FieldText, Label: label,
		Required: required, Weight: 1,
	}
}

func opt(value string, points float64, fail bool) models.FieldOption {
	return models.FieldOption{Value: value, Points: points, IsFailOption: fail}
}

func schemaOf(fields ...models.FieldDefinition) *models.FormSchema {
	return &models.FormSchema{Title: "Проверка объекта", Fields: fields}
}

func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }
