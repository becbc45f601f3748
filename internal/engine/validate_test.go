package engine_test

import (
	"reflect"
	"testing"

	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
)

func TestValidate_RequiredMissing(t *testing.T) {
	schema := schemaOf(
		textField("name", "Имя объекта", true),
		textField("note", "Примечание", false),
	)

	cases := []struct {
		name    string
		answers models.AnswerSet
		want    map[string]string
	}{
		{"absent", models.AnswerSet{}, map[string]string{"name": "Имя объекта is required"}},
		{"empty string", models.AnswerSet{"name": ""}, map[string]string{"name": "Имя объекта is required"}},
		{"nil value", models.AnswerSet{"name": nil}, map[string]string{"name": "Имя объекта is required"}},
		{"filled", models.AnswerSet{"name": "Склад №3"}, map[string]string{}},
		// необязательное поле не проверяется, что бы в нём ни было
		{"optional empty", models.AnswerSet{"name": "x", "note": ""}, map[string]string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Validate(schema, tc.answers)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ожидали %v, получили %v", tc.want, got)
			}
		})
	}
}

func TestValidate_BooleanFalseIsAnswered(t *testing.T) {
	schema := schemaOf(boolField("ok", "Всё в порядке", 1, true))

	if errs := engine.Validate(schema, models.AnswerSet{"ok": false}); len(errs) != 0 {
		t.Fatalf("false — валидный ответ, получили ошибки %v", errs)
	}
	if errs := engine.Validate(schema, models.AnswerSet{}); len(errs) != 1 {
		t.Fatalf("отсутствие ответа должно давать ошибку, получили %v", errs)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	schema := schemaOf(
		textField("a", "Поле А", true),
		textField("b", "Поле Б", true),
	)
	answers := models.AnswerSet{"a": ""}

	first := engine.Validate(schema, answers)
	second := engine.Validate(schema, answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("чистая функция вернула разное: %v vs %v", first, second)
	}
}
