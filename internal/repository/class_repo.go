package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassListFilter struct {
	Type      string
	FromDate  string // YYYY-MM-DD, включительно
	Available bool   // только с оставшимися местами
}

type ClassRepo interface {
	Create(ctx context.Context, c *models.ClassOffering) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ClassOffering, error)
	List(ctx context.Context, f ClassListFilter) ([]models.ClassOffering, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.ClassOffering, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// TryTakeSpots: if spots_left >= n then spots_left -= n
	TryTakeSpots(ctx context.Context, id uuid.UUID, n int) (bool, error)
	// ReleaseSpots: spots_left += n, но не больше spots
	ReleaseSpots(ctx context.Context, id uuid.UUID, n int) (bool, error)
	// Resize меняет spots и сдвигает spots_left на ту же разницу (не ниже нуля)
	Resize(ctx context.Context, id uuid.UUID, spots int) (bool, error)
}

type classRepo struct{ db *gorm.DB }

func NewClassRepo(db *gorm.DB) ClassRepo { return &classRepo{db: db} }

func (r *classRepo) Create(ctx context.Context, c *models.ClassOffering) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *classRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ClassOffering, error) {
	var c models.ClassOffering
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classRepo) List(ctx context.Context, f ClassListFilter) ([]models.ClassOffering, error) {
	q := r.db.WithContext(ctx).Model(&models.ClassOffering{})

	if t := strings.TrimSpace(f.Type); t != "" {
		q = q.Where("type = ?", t)
	}
	if f.FromDate != "" {
		q = q.Where("date >= ?", f.FromDate)
	}
	if f.Available {
		q = q.Where("spots_left > 0")
	}

	var list []models.ClassOffering
	if err := q.Order("date ASC").Order("time ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *classRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.ClassOffering, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	var c models.ClassOffering
	tx := r.db.WithContext(ctx).Model(&c).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *classRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ClassOffering{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *classRepo) TryTakeSpots(ctx context.Context, id uuid.UUID, n int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE classes
SET spots_left = spots_left - @n,
    updated_at = now()
WHERE id = @id
  AND spots_left >= @n
`, map[string]any{
		"id": id,
		"n":  n,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *classRepo) ReleaseSpots(ctx context.Context, id uuid.UUID, n int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE classes
SET spots_left = LEAST(spots, spots_left + @n),
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id": id,
		"n":  n,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *classRepo) Resize(ctx context.Context, id uuid.UUID, spots int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE classes
SET spots_left = GREATEST(0, spots_left + @spots - spots),
    spots = @spots,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id":    id,
		"spots": spots,
	})
	return tx.RowsAffected > 0, tx.Error
}
