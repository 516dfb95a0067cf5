package service

import (
	"context"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
)

type gormStore struct {
	repo *repository.Repository
}

func NewStore(r *repository.Repository) Store { return &gormStore{repo: r} }

func reposOf(r *repository.Repository) Repos {
	return Repos{
		Categories:      r.Categories,
		Products:        r.Products,
		Classes:         r.Classes,
		Bookings:        r.Bookings,
		Orders:          r.Orders,
		CustomRequests:  r.CustomRequests,
		ContactMessages: r.ContactMessages,
		Uploads:         r.Uploads,
	}
}

func (s *gormStore) Repos() Repos { return reposOf(s.repo) }

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Repos) error) error {
	return s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return fn(reposOf(tx))
	})
}
