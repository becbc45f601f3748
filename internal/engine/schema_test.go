package engine_test

import (
	"errors"
	"testing"

	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
)

func TestParseSchema_NormalizesLegacyWeight(t *testing.T) {
	doc := []byte(`{
		"title": "Санитарный чек-лист",
		"fields": [
			{"id": "f1", "kind": "select", "label": "Полы чистые", "weight": 2,
				"options": [{"value": "да", "points": 5}, {"value": "нет", "points": 0}]},
			{"id": "f2", "kind": "select", "label": "Склад закрыт", "weightage": 3,
				"options": [{"value": "да", "points": 5}]},
			{"id": "f3", "kind": "text", "label": "Комментарий"}
		]
	}`)

	schema, err := engine.ParseSchema(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := schema.Fields[0].Weight; got != 2 {
		t.Errorf("weight: ожидали 2, получили %v", got)
	}
	// легаси-имя weightage сводится к тому же канону
	if got := schema.Fields[1].Weight; got != 3 {
		t.Errorf("weightage: ожидали 3, получили %v", got)
	}
	// отсутствие обоих — вес 1
	if got := schema.Fields[2].Weight; got != 1 {
		t.Errorf("default weight: ожидали 1, получили %v", got)
	}
}

func TestParseSchema_WeightWinsOverWeightage(t *testing.T) {
	doc := []byte(`{"title": "t", "fields": [
		{"id": "f1", "kind": "number", "label": "x", "weight": 4, "weightage": 9}
	]}`)
	schema, err := engine.ParseSchema(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := schema.Fields[0].Weight; got != 4 {
		t.Errorf("ожидали канонический weight=4, получили %v", got)
	}
}

func TestParseSchema_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing fields", `{"title": "пусто"}`},
		{"duplicate id", `{"fields": [
			{"id": "f1", "kind": "text", "label": "a"},
			{"id": "f1", "kind": "text", "label": "b"}
		]}`},
		{"unknown kind", `{"fields": [{"id": "f1", "kind": "slider", "label": "a"}]}`},
		{"empty id", `{"fields": [{"id": "", "kind": "text", "label": "a"}]}`},
		{"negative weight", `{"fields": [{"id": "f1", "kind": "text", "label": "a", "weight": -1}]}`},
		{"not json", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ParseSchema([]byte(tc.doc))
			var se *engine.SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("ожидали SchemaError, получили %v", err)
			}
		})
	}
}

func TestParseSchema_EmptyFieldsAllowed(t *testing.T) {
	// пустой список — валидная (хоть и бессмысленная) форма,
	// отсутствие ключа fields — нет
	schema, err := engine.ParseSchema([]byte(`{"title": "t", "fields": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(schema.Fields) != 0 {
		t.Fatalf("ожидали 0 полей, получили %d", len(schema.Fields))
	}
}

func TestMaxOptionPoints_TieTakesMaximum(t *testing.T) {
	f := models.FieldDefinition{Options: []models.FieldOption{
		{Value: "a", Points: 5}, {Value: "b", Points: 5}, {Value: "c", Points: 2},
	}}
	if got := f.MaxOptionPoints(); got != 5 {
		t.Fatalf("ожидали 5, получили %v", got)
	}
}
