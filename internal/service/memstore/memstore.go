// Package memstore — хранилище магазина в памяти для тестов сервисов и HTTP-ручек.
// Повторяет поведение репозиториев Postgres: условные списания, CHECK- и
// UNIQUE-ограничения (ошибки *pgconn.PgError с теми же кодами), откат транзакции.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type tables struct {
	categories     *table[models.Category]
	products       *table[models.Product]
	classes        *table[models.ClassOffering]
	bookings       *table[models.Booking]
	orders         *table[models.Order]
	customRequests *table[models.CustomRequest]
	messages       *table[models.ContactMessage]
	uploads        map[string]models.Upload
}

func (t *tables) clone() *tables {
	uploads := make(map[string]models.Upload, len(t.uploads))
	for k, v := range t.uploads {
		uploads[k] = v
	}
	return &tables{
		categories:     t.categories.clone(),
		products:       t.products.clone(),
		classes:        t.classes.clone(),
		bookings:       t.bookings.clone(),
		orders:         t.orders.clone(),
		customRequests: t.customRequests.clone(),
		messages:       t.messages.clone(),
		uploads:        uploads,
	}
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	now  time.Time
	t    *tables
}

var _ service.Store = (*Store)(nil)

func New() *Store {
	cache := &sync.Map{}
	return &Store{
		now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		t: &tables{
			categories:     newTable[models.Category](cache, nil),
			products:       newTable(cache, checkProduct),
			classes:        newTable(cache, checkClass),
			bookings:       newTable(cache, checkBooking),
			orders:         newTable[models.Order](cache, nil),
			customRequests: newTable[models.CustomRequest](cache, nil),
			messages:       newTable[models.ContactMessage](cache, nil),
			uploads:        make(map[string]models.Upload),
		},
	}
}

// tick: монотонные часы, у каждой записи своё время, порядок created_at детерминирован.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Millisecond)
	return s.now
}

func (s *Store) Repos() service.Repos {
	return service.Repos{
		Categories:      (*categoryRepo)(s),
		Products:        (*productRepo)(s),
		Classes:         (*classRepo)(s),
		Bookings:        (*bookingRepo)(s),
		Orders:          (*orderRepo)(s),
		CustomRequests:  (*customRequestRepo)(s),
		ContactMessages: (*messageRepo)(s),
		Uploads:         (*uploadRepo)(s),
	}
}

// WithTx сериализует транзакции и откатывает все изменения, если fn вернула ошибку.
func (s *Store) WithTx(ctx context.Context, fn func(tx service.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func checkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23514", ConstraintName: constraint, Message: "new row violates check constraint"}
}

func checkProduct(p *models.Product) error {
	if p.Stock < 0 {
		return checkViolation("chk_products_stock")
	}
	return nil
}

func checkClass(c *models.ClassOffering) error {
	if c.SpotsLeft < 0 || c.SpotsLeft > c.Spots {
		return checkViolation("chk_classes_spots")
	}
	return nil
}

func checkBooking(b *models.Booking) error {
	if b.Attendees <= 0 {
		return checkViolation("chk_bookings_attendees")
	}
	return nil
}

func matchOwner(f service.OwnerFilter, c models.Customer, customerID *uuid.UUID, status string) bool {
	if f.CustomerID != nil && (customerID == nil || *customerID != *f.CustomerID) {
		return false
	}
	if e := strings.TrimSpace(f.Email); e != "" && !strings.EqualFold(e, c.Email) {
		return false
	}
	if st := strings.TrimSpace(f.Status); st != "" && st != status {
		return false
	}
	return true
}

func newestFirst(a, b time.Time) bool { return a.After(b) }
