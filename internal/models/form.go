package models

import "time"

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldBoolean  FieldKind = "boolean"
	FieldSelect   FieldKind = "select"
)

func (k FieldKind) Valid() bool {
	switch k {
	case FieldText, FieldTextarea, FieldNumber, FieldBoolean, FieldSelect:
		return true
	}
	return false
}

// FieldOption — один вариант ответа для select/boolean полей.
// IsFailOption: выбор такого варианта заваливает весь аудит независимо от баллов.
type FieldOption struct {
	Value        string  `json:"value"`
	Points       float64 `json:"points"`
	IsFailOption bool    `json:"is_fail_option"`
}

type FieldDefinition struct {
	ID          string        `json:"id"`
	Kind        FieldKind     `json:"kind"`
	Label       string        `json:"label"`
	Required    bool          `json:"required"`
	Placeholder string        `json:"placeholder,omitempty"`
	Weight      float64       `json:"weight"`
	Options     []FieldOption `json:"options,omitempty"`
}

// MaxOptionPoints — максимум баллов среди вариантов поля.
// При нескольких максимумах берём наибольшее наблюдаемое значение.
func (f FieldDefinition) MaxOptionPoints() float64 {
	var maxPts float64
	for _, o := range f.Options {
		if o.Points > maxPts {
			maxPts = o.Points
		}
	}
	return maxPts
}

// FormSchema неизменяема после загрузки из хранилища.
type FormSchema struct {
	ID          int64             `json:"id" db:"id"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description,omitempty" db:"description"`
	Fields      []FieldDefinition `json:"fields"`
	CreatedAt   time.Time         `json:"created_at,omitempty" db:"created_at"`
}

// AnswerSet — ответы пользователя по id поля. Тип значения зависит от kind:
// string для text/textarea/select, bool для boolean, float64 для number.
type AnswerSet map[string]any
