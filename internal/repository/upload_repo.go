package repository

import (
	"context"
	"errors"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"gorm.io/gorm"
)

type UploadRepo interface {
	Create(ctx context.Context, u *models.Upload) error
	GetByName(ctx context.Context, name string) (*models.Upload, error)
}

type uploadRepo struct{ db *gorm.DB }

func NewUploadRepo(db *gorm.DB) UploadRepo { return &uploadRepo{db: db} }

func (r *uploadRepo) Create(ctx context.Context, u *models.Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *uploadRepo) GetByName(ctx context.Context, name string) (*models.Upload, error) {
	var u models.Upload
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
