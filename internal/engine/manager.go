package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Spok95/compliance-audit/internal/metrics"
	"github.com/Spok95/compliance-audit/internal/models"
	"go.uber.org/zap"
)

// Store — абстракция над реляционным хранилищем. Движку нужны ровно четыре
// операции; как именно они сделаны (Postgres, мок в тестах) — не его забота.
type Store interface {
	FetchForm(ctx context.Context, formID int64) (*models.FormSchema, error)
	FetchAudit(ctx context.Context, recordID int64, userID string) (*models.AuditRecord, error)
	InsertAudit(ctx context.Context, rec models.AuditRecord) (*models.AuditRecord, error)
	UpdateAudit(ctx context.Context, recordID int64, userID string, patch models.AuditPatch) (*models.AuditRecord, error)
}

// Manager прогоняет ответы через Validate → DetectAutoFail → Score → Classify
// и делает ровно одну запись в хранилище на успешный submit.
// До записи всё считается синхронно в памяти, без блокировок.
type Manager struct {
	store         Store
	log           *zap.Logger
	passThreshold float64
	now           func() time.Time
}

func NewManager(store Store, log *zap.Logger, passThreshold float64) *Manager {
	if passThreshold <= 0 {
		passThreshold = DefaultPassThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		store:         store,
		log:           log,
		passThreshold: passThreshold,
		now:           time.Now,
	}
}

type SubmitInput struct {
	FormID           int64
	UserID           string
	TenantID         *string
	Comments         *string
	Answers          models.AnswerSet
	ExistingRecordID *int64 // nil — новая запись, иначе повторная отправка
}

// Submit оценивает ответы и сохраняет результат.
// При ошибках валидации записи в хранилище не происходит вовсе.
// Повторная отправка обновляет ту же запись: created_at неизменен,
// last_edit_at выставляется на текущее время.
func (m *Manager) Submit(ctx context.Context, schema *models.FormSchema, in SubmitInput) (*models.AuditRecord, error) {
	if in.UserID == "" {
		return nil, ErrNoUser
	}

	if fieldErrs := Validate(schema, in.Answers); len(fieldErrs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, &ValidationError{Fields: fieldErrs}
	}

	autoFail := DetectAutoFail(schema, in.Answers)
	score := Score(schema, in.Answers)
	outcome := Classify(score, autoFail, m.passThreshold)

	if autoFail.Triggered {
		metrics.AutoFails.Inc()
		m.log.Info("autofail triggered",
			zap.Int64("form_id", in.FormID),
			zap.String("user_id", in.UserID),
			zap.String("field", autoFail.FieldLabel),
			zap.String("reason", autoFail.Reason),
		)
	}

	var (
		rec *models.AuditRecord
		err error
	)
	if in.ExistingRecordID != nil {
		rec, err = m.store.UpdateAudit(ctx, *in.ExistingRecordID, in.UserID, models.AuditPatch{
			Status:     outcome.Status,
			Result:     outcome.Result,
			Marks:      outcome.Marks,
			Percentage: outcome.Percentage,
			Comments:   in.Comments,
			LastEditAt: m.now().UTC(),
		})
	} else {
		rec, err = m.store.InsertAudit(ctx, models.AuditRecord{
			FormID:     in.FormID,
			UserID:     in.UserID,
			TenantID:   in.TenantID,
			Status:     outcome.Status,
			Result:     outcome.Result,
			Marks:      outcome.Marks,
			Percentage: outcome.Percentage,
			Comments:   in.Comments,
			CreatedAt:  m.now().UTC(),
		})
	}
	if err != nil {
		var pe *PersistenceError
		if errors.As(err, &pe) {
			metrics.PersistenceErrors.Inc()
		}
		return nil, err
	}

	metrics.Submits.WithLabelValues(string(outcome.Result)).Inc()
	m.log.Info("audit submitted",
		zap.Int64("audit_id", rec.ID),
		zap.Int64("form_id", rec.FormID),
		zap.String("user_id", rec.UserID),
		zap.String("result", string(rec.Result)),
		zap.String("status", string(rec.Status)),
		zap.Float64("percentage", rec.Percentage),
	)
	return rec, nil
}

// LoadForEdit достаёт запись для повторного заполнения строго в рамках
// владельца. Отсутствие записи — NotFoundError, молча создавать новую нельзя.
func (m *Manager) LoadForEdit(ctx context.Context, recordID int64, userID string) (*models.AuditRecord, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return m.store.FetchAudit(ctx, recordID, userID)
}
