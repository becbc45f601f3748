package engine

import (
	"fmt"
	"strconv"

	"github.com/Spok95/compliance-audit/internal/models"
)

type AutoFailOutcome struct {
	Triggered  bool   `json:"triggered"`
	FieldLabel string `json:"field_label,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// DetectAutoFail идёт по полям в порядке схемы и останавливается на первом,
// где выбран вариант с is_fail_option. Порядок важен только для того, какая
// причина попадёт в отчёт при нескольких сработавших полях: побеждает первое
// по схеме. Это осознанная политика, тесты на неё опираются.
func DetectAutoFail(schema *models.FormSchema, answers models.AnswerSet) AutoFailOutcome {
	for _, f := range schema.Fields {
		if len(f.Options) == 0 {
			continue
		}
		key, ok := answerKey(answers[f.ID])
		if !ok {
			continue
		}
		for _, opt := range f.Options {
			if opt.Value == key && opt.IsFailOption {
				return AutoFailOutcome{
					Triggered:  true,
					FieldLabel: f.Label,
					Reason:     fmt.Sprintf("selected option %q triggers automatic failure", key),
				}
			}
		}
	}
	return AutoFailOutcome{}
}

// answerKey приводит ответ к строке для сравнения с option.Value.
// Boolean-поля со скорингом хранят варианты как "true"/"false".
func answerKey(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
