package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB — типизированная jsonb-колонка. JSON null в БД пишется как SQL NULL.
type JSONB[T any] struct {
	Val T
}

func NewJSONB[T any](v T) JSONB[T] { return JSONB[T]{Val: v} }

func (j JSONB[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Val)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

func (j *JSONB[T]) Scan(value any) error {
	var zero T
	switch v := value.(type) {
	case nil:
		j.Val = zero
		return nil
	case []byte:
		return json.Unmarshal(v, &j.Val)
	case string:
		return json.Unmarshal([]byte(v), &j.Val)
	default:
		return fmt.Errorf("failed to scan JSONB: unsupported type %T", value)
	}
}

func (j JSONB[T]) MarshalJSON() ([]byte, error) { return json.Marshal(j.Val) }

func (j *JSONB[T]) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &j.Val) }
