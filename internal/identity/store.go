package identity

import (
	"context"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
)

type gormStore struct {
	repo *repository.Identity
}

func NewStore(r *repository.Identity) Store { return &gormStore{repo: r} }

func (s *gormStore) Users() UserRepo       { return s.repo.Users }
func (s *gormStore) Profiles() ProfileRepo { return s.repo.Profiles }

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.repo.WithTx(ctx, func(tx *repository.Identity) error {
		return fn(&gormStore{repo: tx})
	})
}
