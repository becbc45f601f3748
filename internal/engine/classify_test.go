package engine_test

import (
	"testing"

	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
)

func TestClassify_AutoFailForcesSentinels(t *testing.T) {
	// даже при сыром счёте 95% автофейл перекрывает всё;
	// в хранилище уходят сентинелы, а не честные цифры
	sc := engine.ScoreResult{EarnedPoints: 95, MaxPoints: 100, Percentage: 95}
	af := engine.AutoFailOutcome{Triggered: true, FieldLabel: "Пожарный выход", Reason: "нет"}

	out := engine.Classify(sc, af, 0)
	if out.Result != models.ResultFailed {
		t.Fatalf("ожидали failed, получили %v", out.Result)
	}
	if out.Status != models.AuditPending {
		t.Fatalf("ожидали pending, получили %v", out.Status)
	}
	if out.Marks != 0.1 || out.Percentage != 1 {
		t.Fatalf("сентинелы: ожидали marks=0.1 percentage=1, получили %+v", out)
	}
}

func TestClassify_ThresholdInclusive(t *testing.T) {
	cases := []struct {
		pct        float64
		wantResult models.AuditResult
		wantStatus models.AuditStatus
	}{
		{100, models.ResultPass, models.AuditCompleted},
		{60, models.ResultPass, models.AuditCompleted}, // граница включительно
		{59.99, models.ResultFailed, models.AuditPending},
		{0, models.ResultFailed, models.AuditPending},
	}
	for _, tc := range cases {
		out := engine.Classify(engine.ScoreResult{Percentage: tc.pct}, engine.AutoFailOutcome{}, 0)
		if out.Result != tc.wantResult || out.Status != tc.wantStatus {
			t.Errorf("pct=%v: ожидали %v/%v, получили %v/%v",
				tc.pct, tc.wantResult, tc.wantStatus, out.Result, out.Status)
		}
	}
}

func TestClassify_RoundsAtPersistencePoint(t *testing.T) {
	sc := engine.ScoreResult{
		EarnedPoints: 3,
		MaxPoints:    9,
		Percentage:   100.0 * 3.0 / 9.0, // 33.333...
	}
	out := engine.Classify(sc, engine.AutoFailOutcome{}, 0)
	if out.Percentage != 33.33 {
		t.Errorf("percentage: ожидали 33.33, получили %v", out.Percentage)
	}
	if out.Marks != 3 {
		t.Errorf("marks: ожидали 3, получили %v", out.Marks)
	}
}

func TestClassify_CustomThreshold(t *testing.T) {
	out := engine.Classify(engine.ScoreResult{Percentage: 75}, engine.AutoFailOutcome{}, 80)
	if out.Result != models.ResultFailed {
		t.Fatalf("порог 80: 75%% должен быть провалом, получили %v", out.Result)
	}
}

func TestFormatResult(t *testing.T) {
	cases := map[string]string{
		"pass":    "PASSED",
		"failed":  "FAILED",
		"unknown": "UNKNOWN", // легаси-значения поднимаем в верхний регистр как есть
		"":        "",
	}
	for in, want := range cases {
		if got := engine.FormatResult(in); got != want {
			t.Errorf("FormatResult(%q) = %q, ожидали %q", in, got, want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := engine.Round2(33.336); got != 33.34 {
		t.Errorf("получили %v", got)
	}
	if got := engine.Round2(0.1); got != 0.1 {
		t.Errorf("получили %v", got)
	}
}
