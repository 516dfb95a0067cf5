package repository

import (
	"context"
	"errors"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepo interface {
	Create(ctx context.Context, v *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, f OwnerFilter) ([]models.Booking, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) BookingRepo { return &bookingRepo{db: db} }

func (r *bookingRepo) Create(ctx context.Context, v *models.Booking) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate блокирует строку до конца транзакции.
func (r *bookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *bookingRepo) get(q *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var v models.Booking
	if err := q.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *bookingRepo) List(ctx context.Context, f OwnerFilter) ([]models.Booking, error) {
	var list []models.Booking
	q := f.apply(r.db.WithContext(ctx).Model(&models.Booking{}))
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookingRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Booking, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	var v models.Booking
	tx := r.db.WithContext(ctx).Model(&v).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &v, nil
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
