package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/compliance-audit/internal/ctxutil"
	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
)

// Store реализует engine.Store поверх Postgres.
type Store struct {
	DB *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{DB: database}
}

// FetchForm достаёт активную форму и разбирает её JSONB-документ.
// Битый документ в базе всплывает как SchemaError — не прячем.
func (s *Store) FetchForm(ctx context.Context, formID int64) (*models.FormSchema, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var (
		doc       []byte
		createdAt time.Time
	)
	err := s.DB.QueryRowContext(ctx, `
SELECT schema, created_at
FROM forms
WHERE id = $1 AND is_active`, formID).Scan(&doc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Entity: "form", ID: formID}
	}
	if err != nil {
		return nil, &engine.PersistenceError{Op: "fetch form", Err: err}
	}

	schema, err := engine.ParseSchema(doc)
	if err != nil {
		return nil, err
	}
	schema.ID = formID
	schema.CreatedAt = createdAt
	return schema, nil
}

// CreateForm сохраняет документ формы как есть; валидность проверит
// ParseSchema при первом чтении. Используется сидами и тестами.
func CreateForm(ctx context.Context, database *sql.DB, title, description string, doc []byte) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO forms (title, description, schema)
VALUES ($1, $2, $3)
RETURNING id`, title, description, doc).Scan(&id)
	if err != nil {
		return 0, &engine.PersistenceError{Op: "create form", Err: err}
	}
	return id, nil
}
