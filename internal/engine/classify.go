package engine

import (
	"math"
	"strings"

	"github.com/Spok95/compliance-audit/internal/models"
)

// DefaultPassThreshold — процент для зачёта, граница включительно.
const DefaultPassThreshold = 60.0

// Сентинелы для автофейла: хранилище отвергает нулевые marks/percentage
// у оценённой записи, поэтому вместо честного счёта пишем минимальные
// положительные значения. Это документированное поведение, не баг.
const (
	AutoFailMarks      = 0.1
	AutoFailPercentage = 1.0
)

type Outcome struct {
	Result     models.AuditResult `json:"result"`
	Status     models.AuditStatus `json:"status"`
	Marks      float64            `json:"marks"`
	Percentage float64            `json:"percentage"`
}

// Classify сводит автофейл и процент к вердикту и статусу жизненного цикла.
// Автофейл важнее счёта. Проваленный аудит остаётся в pending до
// корректирующих действий, пройденный закрывается как completed.
func Classify(sc ScoreResult, af AutoFailOutcome, passThreshold float64) Outcome {
	if passThreshold <= 0 {
		passThreshold = DefaultPassThreshold
	}
	if af.Triggered {
		return Outcome{
			Result:     models.ResultFailed,
			Status:     models.AuditPending,
			Marks:      AutoFailMarks,
			Percentage: AutoFailPercentage,
		}
	}

	result := models.ResultFailed
	status := models.AuditPending
	if sc.Percentage >= passThreshold {
		result = models.ResultPass
		status = models.AuditCompleted
	}
	return Outcome{
		Result:     result,
		Status:     status,
		Marks:      Round2(sc.EarnedPoints),
		Percentage: Round2(sc.Percentage),
	}
}

// FormatResult — отображение вердикта. Неизвестные легаси-значения
// не роняют клиент, просто поднимаем регистр.
func FormatResult(result string) string {
	switch models.AuditResult(result) {
	case models.ResultPass:
		return "PASSED"
	case models.ResultFailed:
		return "FAILED"
	default:
		return strings.ToUpper(result)
	}
}

// Round2 — округление до двух знаков в точке сохранения.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
