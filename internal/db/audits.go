package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/compliance-audit/internal/ctxutil"
	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
)

const auditColumns = `
id, form_id, user_id, tenant_id, status, result, marks, percentage,
comments, verification_status, verified_by, corrective_action,
created_at, last_edit_at`

func scanAudit(row interface{ Scan(dest ...any) error }) (*models.AuditRecord, error) {
	var rec models.AuditRecord
	err := row.Scan(
		&rec.ID, &rec.FormID, &rec.UserID, &rec.TenantID,
		&rec.Status, &rec.Result, &rec.Marks, &rec.Percentage,
		&rec.Comments, &rec.VerificationStatus, &rec.VerifiedBy, &rec.CorrectiveAction,
		&rec.CreatedAt, &rec.LastEditAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FetchAudit — строго в рамках владельца: чужая запись эквивалентна отсутствующей.
func (s *Store) FetchAudit(ctx context.Context, recordID int64, userID string) (*models.AuditRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rec, err := scanAudit(s.DB.QueryRowContext(ctx, `
SELECT `+auditColumns+`
FROM audits
WHERE id = $1 AND user_id = $2`, recordID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Entity: "audit", ID: recordID, UserID: userID}
	}
	if err != nil {
		return nil, &engine.PersistenceError{Op: "fetch audit", Err: err}
	}
	return rec, nil
}

func (s *Store) InsertAudit(ctx context.Context, rec models.AuditRecord) (*models.AuditRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	saved, err := scanAudit(s.DB.QueryRowContext(ctx, `
INSERT INTO audits (form_id, user_id, tenant_id, status, result, marks, percentage, comments, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+auditColumns,
		rec.FormID, rec.UserID, rec.TenantID,
		rec.Status, rec.Result, rec.Marks, rec.Percentage,
		rec.Comments, rec.CreatedAt,
	))
	if err != nil {
		return nil, &engine.PersistenceError{Op: "insert audit", Err: err}
	}
	return saved, nil
}

// UpdateAudit пересохраняет оценку той же записи. created_at не трогаем,
// verification_* тоже: их ведёт внешний процесс проверки.
func (s *Store) UpdateAudit(ctx context.Context, recordID int64, userID string, patch models.AuditPatch) (*models.AuditRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	saved, err := scanAudit(s.DB.QueryRowContext(ctx, `
UPDATE audits
SET status = $1, result = $2, marks = $3, percentage = $4, comments = $5, last_edit_at = $6
WHERE id = $7 AND user_id = $8
RETURNING `+auditColumns,
		patch.Status, patch.Result, patch.Marks, patch.Percentage,
		patch.Comments, patch.LastEditAt,
		recordID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Entity: "audit", ID: recordID, UserID: userID}
	}
	if err != nil {
		return nil, &engine.PersistenceError{Op: "update audit", Err: err}
	}
	return saved, nil
}

// ListAuditsByUser — история для экранов списка, свежие сверху.
func ListAuditsByUser(ctx context.Context, database *sql.DB, userID string, limit int) ([]models.AuditRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := database.QueryContext(ctx, `
SELECT `+auditColumns+`
FROM audits
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, &engine.PersistenceError{Op: "list audits", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.AuditRecord
	for rows.Next() {
		rec, err := scanAudit(rows)
		if err != nil {
			return nil, &engine.PersistenceError{Op: "list audits", Err: err}
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &engine.PersistenceError{Op: "list audits", Err: err}
	}
	return out, nil
}

// SummaryByUser — агрегаты для дашборда истории.
func SummaryByUser(ctx context.Context, database *sql.DB, userID string) (*models.AuditSummary, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var s models.AuditSummary
	err := database.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE status = 'pending'),
    COUNT(*) FILTER (WHERE status = 'completed'),
    COUNT(*) FILTER (WHERE result = 'pass'),
    COUNT(*) FILTER (WHERE result = 'failed')
FROM audits
WHERE user_id = $1`, userID).Scan(&s.Total, &s.Pending, &s.Completed, &s.Passed, &s.Failed)
	if err != nil {
		return nil, &engine.PersistenceError{Op: "summary", Err: err}
	}
	return &s, nil
}

// CountPendingAudits — для фонового обновления метрики.
func CountPendingAudits(ctx context.Context, database *sql.DB) (int, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM audits WHERE status = 'pending'`).Scan(&n)
	if err != nil {
		return 0, &engine.PersistenceError{Op: "count pending", Err: err}
	}
	return n, nil
}
