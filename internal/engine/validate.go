package engine

import "github.com/Spok95/compliance-audit/internal/models"

// Validate — чистая функция: по схеме и ответам отдаёт id поля → сообщение.
// Пустая мапа означает, что набор ответов можно отправлять.
// Boolean false — полноценный ответ, «не отвечено» и «ответил false» различаем.
func Validate(schema *models.FormSchema, answers models.AnswerSet) map[string]string {
	errs := make(map[string]string)
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		v, ok := answers[f.ID]
		if !ok || v == nil {
			errs[f.ID] = f.Label + " is required"
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			errs[f.ID] = f.Label + " is required"
		}
	}
	return errs
}
