package engine

import (
	"errors"
	"fmt"
)

// ErrNoUser — нарушено предусловие: вызов без аутентифицированного пользователя.
var ErrNoUser = errors.New("engine: user id is required")

// SchemaError — битая или противоречивая схема формы.
// Не ретраится: схему надо чинить на сервере.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Reason
}

// ValidationError — обязательные поля не заполнены.
// Fields: id поля → сообщение для пользователя.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %d required field(s) missing", len(e.Fields))
}

// NotFoundError — запись не существует или принадлежит другому пользователю.
// Для вызывающего это «редактировать нельзя», а не «создать новую».
type NotFoundError struct {
	Entity string // "audit" | "form"
	ID     int64
	UserID string
}

func (e *NotFoundError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %d not found for user %s", e.Entity, e.ID, e.UserID)
}

// PersistenceError — сбой insert/update, включая нарушение check-ограничений
// на result/marks/percentage. Движок сам не ретраит (см. идемпотентность submit).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
