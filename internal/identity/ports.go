package identity

import (
	"context"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	repo "github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"

	"github.com/google/uuid"
)

type (
	UserRepo    = repo.UserRepo
	ProfileRepo = repo.ProfileRepo
)

// Store — хранилище учётных записей; WithTx нужен, чтобы пользователь и профиль создавались вместе.
type Store interface {
	Users() UserRepo
	Profiles() ProfileRepo
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, email string, role models.Role, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// ProfileCache может быть nil, тогда профиль всегда читается из БД.
type ProfileCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
