//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Spok95/compliance-audit/internal/db"
	"github.com/Spok95/compliance-audit/internal/engine"
)

func TestFetchForm_RoundTrip(t *testing.T) {
	ctx := context.Background()
	formID := mustForm(t)

	schema, err := store.FetchForm(ctx, formID)
	if err != nil {
		t.Fatal(err)
	}
	if schema.ID != formID {
		t.Fatalf("id: ожидали %d, получили %d", formID, schema.ID)
	}
	if schema.Title != "Проверка склада" {
		t.Fatalf("title: получили %q", schema.Title)
	}
	if len(schema.Fields) != 2 {
		t.Fatalf("fields: получили %d", len(schema.Fields))
	}
	if schema.Fields[1].Weight != 2 {
		t.Fatalf("вес из JSONB: получили %v", schema.Fields[1].Weight)
	}
	if !schema.Fields[1].Options[1].IsFailOption {
		t.Fatal("is_fail_option потерялся при чтении")
	}
	if schema.CreatedAt.IsZero() {
		t.Fatal("created_at должен приходить из базы")
	}
}

func TestFetchForm_NotFound(t *testing.T) {
	_, err := store.FetchForm(context.Background(), 999999)
	var nErr *engine.NotFoundError
	if !errors.As(err, &nErr) {
		t.Fatalf("ожидали NotFoundError, получили %v", err)
	}
	if nErr.Entity != "form" {
		t.Fatalf("entity: получили %q", nErr.Entity)
	}
}

// Битый документ в базе не прячется за NotFound: он всплывает как SchemaError.
func TestFetchForm_MalformedDocument(t *testing.T) {
	ctx := context.Background()
	id, err := db.CreateForm(ctx, database, "сломанная", "",
		[]byte(`{"title": "x", "fields": [{"id": "a", "kind": "hologram", "label": "?"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.FetchForm(ctx, id)
	var sErr *engine.SchemaError
	if !errors.As(err, &sErr) {
		t.Fatalf("ожидали SchemaError, получили %v", err)
	}
}

func TestFetchForm_InactiveHidden(t *testing.T) {
	ctx := context.Background()
	formID := mustForm(t)

	if _, err := database.ExecContext(ctx, `UPDATE forms SET is_active = FALSE WHERE id = $1`, formID); err != nil {
		t.Fatal(err)
	}

	_, err := store.FetchForm(ctx, formID)
	var nErr *engine.NotFoundError
	if !errors.As(err, &nErr) {
		t.Fatalf("выключенная форма должна быть невидима: %v", err)
	}
}
