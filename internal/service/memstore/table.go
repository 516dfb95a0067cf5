package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

// table — строки одной сущности по id. Колонки ищутся по схеме gorm,
// поэтому Update принимает те же map[column]value, что и настоящие репозитории.
type table[T any] struct {
	sch   *schema.Schema
	rows  map[uuid.UUID]T
	check func(*T) error
}

func newTable[T any](cache *sync.Map, check func(*T) error) *table[T] {
	sch, err := schema.Parse(new(T), cache, schema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("memstore: parse schema %T: %v", *new(T), err))
	}
	return &table[T]{sch: sch, rows: make(map[uuid.UUID]T), check: check}
}

func (t *table[T]) clone() *table[T] {
	rows := make(map[uuid.UUID]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return &table[T]{sch: t.sch, rows: rows, check: t.check}
}

func (t *table[T]) setColumn(v reflect.Value, column string, value any) error {
	f := t.sch.LookUpField(column)
	if f == nil {
		return fmt.Errorf("memstore: unknown column %s.%s", t.sch.Table, column)
	}
	return f.Set(context.Background(), v, value)
}

func (t *table[T]) validate(row *T) error {
	if t.check == nil {
		return nil
	}
	return t.check(row)
}

func (t *table[T]) insert(row *T, now time.Time) error {
	if err := t.validate(row); err != nil {
		return err
	}
	ctx := context.Background()
	v := reflect.ValueOf(row).Elem()

	pk := t.sch.PrioritizedPrimaryField
	raw, zero := pk.ValueOf(ctx, v)
	id, _ := raw.(uuid.UUID)
	if zero {
		id = uuid.New()
		if err := pk.Set(ctx, v, id); err != nil {
			return err
		}
	}
	if _, exists := t.rows[id]; exists {
		return uniqueViolation(t.sch.Table + "_pkey")
	}
	for _, col := range []string{"created_at", "updated_at"} {
		if err := t.setColumn(v, col, now); err != nil {
			return err
		}
	}
	t.rows[id] = *row
	return nil
}

func (t *table[T]) get(id uuid.UUID) *T {
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &row
}

func (t *table[T]) update(id uuid.UUID, fields map[string]any, now time.Time) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	if len(fields) == 0 {
		return &row, nil
	}
	v := reflect.ValueOf(&row).Elem()
	for col, val := range fields {
		if err := t.setColumn(v, col, val); err != nil {
			return nil, err
		}
	}
	if err := t.setColumn(v, "updated_at", now); err != nil {
		return nil, err
	}
	if err := t.validate(&row); err != nil {
		return nil, err
	}
	t.rows[id] = row
	return &row, nil
}

// mutate применяет fn к строке; если fn вернула false, строка не меняется.
func (t *table[T]) mutate(id uuid.UUID, now time.Time, fn func(*T) bool) (bool, error) {
	row, ok := t.rows[id]
	if !ok || !fn(&row) {
		return false, nil
	}
	if err := t.setColumn(reflect.ValueOf(&row).Elem(), "updated_at", now); err != nil {
		return false, err
	}
	if err := t.validate(&row); err != nil {
		return false, err
	}
	t.rows[id] = row
	return true, nil
}

func (t *table[T]) delete(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) list(keep func(*T) bool, less func(a, b *T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(&row) {
			out = append(out, row)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	}
	return out
}
