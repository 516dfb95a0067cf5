package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerFilter сужает выборку заявок покупателя; пустой фильтр отдаёт всю коллекцию.
type OwnerFilter struct {
	CustomerID *uuid.UUID
	Email      string
	Status     string
}

func (f OwnerFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if e := strings.TrimSpace(f.Email); e != "" {
		q = q.Where("lower(customer_email) = lower(?)", e)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	return q
}
