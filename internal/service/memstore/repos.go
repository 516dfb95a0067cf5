package memstore

import (
	"context"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/google/uuid"
)

// ---- categories ----

type categoryRepo Store

func (r *categoryRepo) s() *Store { return (*Store)(r) }

func (r *categoryRepo) nameTaken(name string, except uuid.UUID) bool {
	for id, c := range r.s().t.categories.rows {
		if id != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *categoryRepo) Create(_ context.Context, c *models.Category) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.nameTaken(c.Name, uuid.Nil) {
		return uniqueViolation("ux_categories_name")
	}
	return s.t.categories.insert(c, s.tick())
}

func (r *categoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.categories.get(id), nil
}

func (r *categoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.t.categories.rows {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) List(_ context.Context) ([]models.Category, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.categories.list(nil, func(a, b *models.Category) bool { return a.Name < b.Name }), nil
}

func (r *categoryRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Category, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, ok := fields["name"].(string); ok && r.nameTaken(name, id) {
		return nil, uniqueViolation("ux_categories_name")
	}
	return s.t.categories.update(id, fields, s.tick())
}

func (r *categoryRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.categories.delete(id), nil
}

// ---- products ----

type productRepo Store

func (r *productRepo) s() *Store { return (*Store)(r) }

func (r *productRepo) Create(_ context.Context, p *models.Product) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.insert(p, s.tick())
}

func (r *productRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.get(id), nil
}

func (r *productRepo) BatchGetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if p := s.t.products.get(id); p != nil && !seen[id] {
			seen[id] = true
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *productRepo) List(_ context.Context, f service.ProductListFilter) ([]models.Product, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	list := s.t.products.list(func(p *models.Product) bool {
		if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, p.Category) {
			return false
		}
		if f.InStock != nil && *f.InStock != (p.Stock > 0) {
			return false
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Material), q) {
			return false
		}
		return true
	}, func(a, b *models.Product) bool { return newestFirst(a.CreatedAt, b.CreatedAt) })

	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return []models.Product{}, nil
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *productRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.update(id, fields, s.tick())
}

func (r *productRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.delete(id), nil
}

func (r *productRepo) TryTakeStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.mutate(id, s.tick(), func(p *models.Product) bool {
		if p.Stock < qty {
			return false
		}
		p.Stock -= qty
		return true
	})
}

func (r *productRepo) RestoreStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.products.mutate(id, s.tick(), func(p *models.Product) bool {
		p.Stock += qty
		return true
	})
}

// ---- classes ----

type classRepo Store

func (r *classRepo) s() *Store { return (*Store)(r) }

func (r *classRepo) Create(_ context.Context, c *models.ClassOffering) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.insert(c, s.tick())
}

func (r *classRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ClassOffering, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.get(id), nil
}

func (r *classRepo) List(_ context.Context, f service.ClassListFilter) ([]models.ClassOffering, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.list(func(c *models.ClassOffering) bool {
		if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(t, c.Type) {
			return false
		}
		if f.FromDate != "" && c.Date < f.FromDate {
			return false
		}
		return !f.Available || c.SpotsLeft > 0
	}, func(a, b *models.ClassOffering) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	}), nil
}

func (r *classRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.ClassOffering, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.update(id, fields, s.tick())
}

func (r *classRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.delete(id), nil
}

func (r *classRepo) TryTakeSpots(_ context.Context, id uuid.UUID, n int) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.mutate(id, s.tick(), func(c *models.ClassOffering) bool {
		if c.SpotsLeft < n {
			return false
		}
		c.SpotsLeft -= n
		return true
	})
}

func (r *classRepo) ReleaseSpots(_ context.Context, id uuid.UUID, n int) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.mutate(id, s.tick(), func(c *models.ClassOffering) bool {
		c.SpotsLeft = min(c.Spots, c.SpotsLeft+n)
		return true
	})
}

func (r *classRepo) Resize(_ context.Context, id uuid.UUID, spots int) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.classes.mutate(id, s.tick(), func(c *models.ClassOffering) bool {
		c.SpotsLeft = max(0, c.SpotsLeft+spots-c.Spots)
		c.Spots = spots
		return true
	})
}

// ---- bookings ----

type bookingRepo Store

func (r *bookingRepo) s() *Store { return (*Store)(r) }

func (r *bookingRepo) Create(_ context.Context, b *models.Booking) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.bookings.insert(b, s.tick())
}

func (r *bookingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.bookings.get(id), nil
}

func (r *bookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *bookingRepo) List(_ context.Context, f service.OwnerFilter) ([]models.Booking, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.bookings.list(func(b *models.Booking) bool {
		return matchOwner(f, b.Customer, b.CustomerID, string(b.Status))
	}, func(a, b *models.Booking) bool { return newestFirst(a.CreatedAt, b.CreatedAt) }), nil
}

func (r *bookingRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Booking, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.bookings.update(id, fields, s.tick())
}

func (r *bookingRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.bookings.delete(id), nil
}

// ---- orders ----

type orderRepo Store

func (r *orderRepo) s() *Store { return (*Store)(r) }

func (r *orderRepo) Create(_ context.Context, o *models.Order) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.t.orders.rows {
		if existing.OrderNumber == o.OrderNumber {
			return uniqueViolation("idx_orders_order_number")
		}
	}
	return s.t.orders.insert(o, s.tick())
}

func (r *orderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.orders.get(id), nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) List(_ context.Context, f service.OwnerFilter) ([]models.Order, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.orders.list(func(o *models.Order) bool {
		return matchOwner(f, o.Customer, o.CustomerID, string(o.Status))
	}, func(a, b *models.Order) bool { return newestFirst(a.CreatedAt, b.CreatedAt) }), nil
}

func (r *orderRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Order, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.orders.update(id, fields, s.tick())
}

func (r *orderRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.orders.delete(id), nil
}

// ---- custom requests ----

type customRequestRepo Store

func (r *customRequestRepo) s() *Store { return (*Store)(r) }

func (r *customRequestRepo) Create(_ context.Context, v *models.CustomRequest) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.customRequests.insert(v, s.tick())
}

func (r *customRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*models.CustomRequest, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.customRequests.get(id), nil
}

func (r *customRequestRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *customRequestRepo) List(_ context.Context, f service.OwnerFilter) ([]models.CustomRequest, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.customRequests.list(func(v *models.CustomRequest) bool {
		return matchOwner(f, v.Customer, v.CustomerID, string(v.Status))
	}, func(a, b *models.CustomRequest) bool { return newestFirst(a.CreatedAt, b.CreatedAt) }), nil
}

func (r *customRequestRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.CustomRequest, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.customRequests.update(id, fields, s.tick())
}

func (r *customRequestRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.customRequests.delete(id), nil
}

// ---- contact messages ----

type messageRepo Store

func (r *messageRepo) s() *Store { return (*Store)(r) }

func (r *messageRepo) Create(_ context.Context, m *models.ContactMessage) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.messages.insert(m, s.tick())
}

func (r *messageRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.messages.get(id), nil
}

func (r *messageRepo) List(_ context.Context, f service.ContactMessageFilter) ([]models.ContactMessage, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.messages.list(func(m *models.ContactMessage) bool {
		if f.Email != "" && !strings.EqualFold(f.Email, m.Email) {
			return false
		}
		return f.IsRead == nil || *f.IsRead == m.IsRead
	}, func(a, b *models.ContactMessage) bool { return newestFirst(a.CreatedAt, b.CreatedAt) }), nil
}

func (r *messageRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.ContactMessage, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.messages.update(id, fields, s.tick())
}

func (r *messageRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.messages.delete(id), nil
}

// ---- uploads ----

type uploadRepo Store

func (r *uploadRepo) s() *Store { return (*Store)(r) }

func (r *uploadRepo) Create(_ context.Context, u *models.Upload) error {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.t.uploads[u.Name]; ok {
		return uniqueViolation("uploads_pkey")
	}
	u.CreatedAt = s.tick()
	s.t.uploads[u.Name] = *u
	return nil
}

func (r *uploadRepo) GetByName(_ context.Context, name string) (*models.Upload, error) {
	s := r.s()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.t.uploads[name]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
