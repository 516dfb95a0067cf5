package identity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/cache"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Principal — личность, восстановленная из токена и профиля на время одного запроса.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
	Name  string
	Phone string
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == models.RoleAdmin }

type ResolvedProfile struct {
	Role  models.Role `json:"role"`
	Name  string      `json:"name,omitempty"`
	Phone string      `json:"phone,omitempty"`
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     models.Role
}

type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Principal   *Principal
}

type Service struct {
	store    Store
	hasher   PasswordHasher
	tokens   TokenProvider
	cache    ProfileCache
	cacheTTL time.Duration

	accessTTL time.Duration
	log       *zap.Logger
}

func NewService(store Store, hasher PasswordHasher, tokens TokenProvider, profileCache ProfileCache, cacheTTL, accessTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		cache:     profileCache,
		cacheTTL:  cacheTTL,
		accessTTL: accessTTL,
		log:       log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp создаёт пользователя и профиль в одной транзакции.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Principal, error) {
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}
	p := &models.Profile{
		ID:    u.ID,
		Role:  role,
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}

	err = s.store.WithTx(ctx, func(tx Store) error {
		exists, err := tx.Users().ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailExists
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrEmailExists
			}
			return err
		}
		return tx.Profiles().Upsert(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("role", string(role)))
	return &Principal{ID: u.ID, Email: u.Email, Role: p.Role, Name: p.Name, Phone: p.Phone}, nil
}

// SignIn выдаёт токен, только если роль профиля совпадает с ожидаемой;
// несовпадение роли неотличимо от неверного пароля.
func (s *Service) SignIn(ctx context.Context, email, password string, want models.Role) (*Session, error) {
	u, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	hash := ""
	if u != nil {
		hash = u.PasswordHash
	}
	// hasher сравнивает и с пустым hash, время ответа не выдаёт, есть ли такой email
	if !s.hasher.Compare(hash, password) || u == nil {
		return nil, ErrInvalidCredentials
	}

	prof, err := s.ResolveProfile(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if prof.Role != want {
		s.log.Warn("sign in with wrong role", zap.String("user_id", u.ID.String()), zap.String("want", string(want)))
		return nil, ErrInvalidCredentials
	}

	tok, exp, err := s.tokens.SignAccess(ctx, u.ID, u.Email, prof.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: tok,
		ExpiresAt:   exp,
		Principal:   &Principal{ID: u.ID, Email: u.Email, Role: prof.Role, Name: prof.Name, Phone: prof.Phone},
	}, nil
}

// Validate проверяет подпись и срок токена; любая ошибка даёт ErrInvalidToken.
func (s *Service) Validate(ctx context.Context, token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveProfile: без профиля роль customer, это не ошибка.
func (s *Service) ResolveProfile(ctx context.Context, userID uuid.UUID) (ResolvedProfile, error) {
	key := cache.ProfileKey(userID.String())

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var rp ResolvedProfile
			if jsonErr := json.Unmarshal(raw, &rp); jsonErr == nil && rp.Role.Valid() {
				return rp, nil
			}
		case !errors.Is(err, cache.ErrMiss):
			s.log.Warn("profile cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	p, err := s.store.Profiles().Get(ctx, userID)
	if err != nil {
		return ResolvedProfile{}, err
	}

	rp := ResolvedProfile{Role: models.RoleCustomer}
	if p != nil {
		rp = ResolvedProfile{Role: p.Role, Name: p.Name, Phone: p.Phone}
		if !rp.Role.Valid() {
			rp.Role = models.RoleCustomer
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(rp); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				s.log.Warn("profile cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
			}
		}
	}
	return rp, nil
}

// Authenticate = Validate + ResolveProfile.
func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	prof, err := s.ResolveProfile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  prof.Role,
		Name:  prof.Name,
		Phone: prof.Phone,
	}, nil
}

// SetRole меняет роль пользователя и сбрасывает закэшированный профиль.
func (s *Service) SetRole(ctx context.Context, email string, role models.Role) (*Principal, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	u, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := s.store.Profiles().SetRole(ctx, u.ID, role); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID)

	prof, err := s.ResolveProfile(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("role changed", zap.String("user_id", u.ID.String()), zap.String("role", string(role)))
	return &Principal{ID: u.ID, Email: u.Email, Role: prof.Role, Name: prof.Name, Phone: prof.Phone}, nil
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cache.ProfileKey(userID.String())); err != nil {
		s.log.Warn("profile cache invalidate failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
