package models

import "time"

type AuditStatus string

const (
	AuditDraft     AuditStatus = "draft"
	AuditPending   AuditStatus = "pending"
	AuditCompleted AuditStatus = "completed"
)

type AuditResult string

const (
	ResultPass   AuditResult = "pass"
	ResultFailed AuditResult = "failed"
)

// AuditRecord — сохранённый результат одного заполнения формы.
// verification_* поля пишет внешний процесс проверки, движок их не трогает.
type AuditRecord struct {
	ID                 int64       `json:"id" db:"id"`
	FormID             int64       `json:"form_id" db:"form_id"`
	UserID             string      `json:"user_id" db:"user_id"`
	TenantID           *string     `json:"tenant_id,omitempty" db:"tenant_id"`
	Status             AuditStatus `json:"status" db:"status"`
	Result             AuditResult `json:"result" db:"result"`
	Marks              float64     `json:"marks" db:"marks"`
	Percentage         float64     `json:"percentage" db:"percentage"`
	Comments           *string     `json:"comments,omitempty" db:"comments"`
	VerificationStatus *string     `json:"verification_status,omitempty" db:"verification_status"`
	VerifiedBy         *string     `json:"verified_by,omitempty" db:"verified_by"`
	CorrectiveAction   *string     `json:"corrective_action,omitempty" db:"corrective_action"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	LastEditAt         *time.Time  `json:"last_edit_at,omitempty" db:"last_edit_at"`
}

// AuditPatch — поля, которые пересчитываются при повторной отправке.
// created_at не входит: он неизменяем.
type AuditPatch struct {
	Status     AuditStatus
	Result     AuditResult
	Marks      float64
	Percentage float64
	Comments   *string
	LastEditAt time.Time
}

// AuditSummary — агрегат для дашборда истории.
type AuditSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Passed    int `json:"passed"`
	Failed    int `json:"failed"`
}
