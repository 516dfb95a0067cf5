package repository

import (
	"context"
	"errors"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomRequestRepo interface {
	Create(ctx context.Context, v *models.CustomRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error)
	List(ctx context.Context, f OwnerFilter) ([]models.CustomRequest, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.CustomRequest, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type customRequestRepo struct{ db *gorm.DB }

func NewCustomRequestRepo(db *gorm.DB) CustomRequestRepo { return &customRequestRepo{db: db} }

func (r *customRequestRepo) Create(ctx context.Context, v *models.CustomRequest) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *customRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate блокирует строку до конца транзакции.
func (r *customRequestRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *customRequestRepo) get(q *gorm.DB, id uuid.UUID) (*models.CustomRequest, error) {
	var v models.CustomRequest
	if err := q.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *customRequestRepo) List(ctx context.Context, f OwnerFilter) ([]models.CustomRequest, error) {
	var list []models.CustomRequest
	q := f.apply(r.db.WithContext(ctx).Model(&models.CustomRequest{}))
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *customRequestRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.CustomRequest, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	var v models.CustomRequest
	tx := r.db.WithContext(ctx).Model(&v).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &v, nil
}

func (r *customRequestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.CustomRequest{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
