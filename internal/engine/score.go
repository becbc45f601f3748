package engine

import "github.com/Spok95/compliance-audit/internal/models"

type ScoreResult struct {
	EarnedPoints float64 `json:"earned_points"`
	MaxPoints    float64 `json:"max_points"`
	Percentage   float64 `json:"percentage"`
}

// Score считает взвешенные баллы по схеме и ответам.
// Поля с вариантами: очки выбранного варианта * вес, максимум — лучший
// вариант поля * вес. Boolean без вариантов: true даёт 1*вес, false — 0,
// но в максимум входит. Свободный текст и числа информационные, не скорятся.
// Проценты не округляем: округление происходит один раз при сохранении,
// иначе ошибка накапливается.
func Score(schema *models.FormSchema, answers models.AnswerSet) ScoreResult {
	var earned, maxPts float64
	for _, f := range schema.Fields {
		if len(f.Options) > 0 {
			key, ok := answerKey(answers[f.ID])
			if !ok {
				continue
			}
			for _, opt := range f.Options {
				if opt.Value == key {
					earned += opt.Points * f.Weight
					maxPts += f.MaxOptionPoints() * f.Weight
					break
				}
			}
			continue
		}
		if f.Kind == models.FieldBoolean {
			b, ok := answers[f.ID].(bool)
			if !ok {
				continue
			}
			maxPts += f.Weight
			if b {
				earned += f.Weight
			}
		}
	}

	var pct float64
	if maxPts > 0 {
		pct = 100 * earned / maxPts
	}
	return ScoreResult{EarnedPoints: earned, MaxPoints: maxPts, Percentage: pct}
}
