package repository

import (
	"context"
	"errors"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo interface {
	Create(ctx context.Context, v *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, f OwnerFilter) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, v *models.Order) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate блокирует строку до конца транзакции.
func (r *orderRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *orderRepo) get(q *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var v models.Order
	if err := q.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *orderRepo) List(ctx context.Context, f OwnerFilter) ([]models.Order, error) {
	var list []models.Order
	q := f.apply(r.db.WithContext(ctx).Model(&models.Order{}))
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Order, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	var v models.Order
	tx := r.db.WithContext(ctx).Model(&v).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &v, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
