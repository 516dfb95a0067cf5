package repository

import (
	"context"
	"errors"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactMessageFilter struct {
	Email  string
	IsRead *bool
}

type ContactMessageRepo interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	List(ctx context.Context, f ContactMessageFilter) ([]models.ContactMessage, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type contactMessageRepo struct{ db *gorm.DB }

func NewContactMessageRepo(db *gorm.DB) ContactMessageRepo { return &contactMessageRepo{db: db} }

func (r *contactMessageRepo) Create(ctx context.Context, m *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *contactMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *contactMessageRepo) List(ctx context.Context, f ContactMessageFilter) ([]models.ContactMessage, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if f.Email != "" {
		q = q.Where("lower(email) = lower(?)", f.Email)
	}
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}

	var list []models.ContactMessage
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *contactMessageRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.ContactMessage, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	var m models.ContactMessage
	tx := r.db.WithContext(ctx).Model(&m).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *contactMessageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
