package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/cache"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Моки зависимостей identity.Service

type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *models.User) error
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type MockProfileRepo struct {
	GetFunc     func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertFunc  func(ctx context.Context, p *models.Profile) error
	SetRoleFunc func(ctx context.Context, userID uuid.UUID, role models.Role) error
}

func (m *MockProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockProfileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return nil
}

func (m *MockProfileRepo) SetRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, userID, role)
	}
	return nil
}

// MockStore выполняет WithTx без настоящей транзакции.
type MockStore struct {
	users    *MockUserRepo
	profiles *MockProfileRepo
}

func (m *MockStore) Users() identity.UserRepo       { return m.users }
func (m *MockStore) Profiles() identity.ProfileRepo { return m.profiles }

func (m *MockStore) WithTx(ctx context.Context, fn func(tx identity.Store) error) error {
	return fn(m)
}

type MockPasswordHasher struct{}

func (MockPasswordHasher) Hash(password string) (string, error) { return "hashed_" + password, nil }
func (MockPasswordHasher) Compare(hash, password string) bool  { return hash == "hashed_"+password }

type MockTokenProvider struct {
	SignAccessFunc             func(ctx context.Context, sub uuid.UUID, email string, role models.Role, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccessFunc func(ctx context.Context, token string) (*identity.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, sub uuid.UUID, email string, role models.Role, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, email, role, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*identity.Claims, error) {
	if m.ParseAndValidateAccessFunc != nil {
		return m.ParseAndValidateAccessFunc(ctx, token)
	}
	return nil, errors.New("not configured")
}

// MockCache считает обращения к кэшу профилей.
type MockCache struct {
	data map[string][]byte
	gets int
	dels int
}

func newMockCache() *MockCache { return &MockCache{data: map[string][]byte{}} }

func (m *MockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *MockCache) Del(_ context.Context, keys ...string) error {
	m.dels++
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func newTestService(users *MockUserRepo, profiles *MockProfileRepo, tokens identity.TokenProvider, c identity.ProfileCache) *identity.Service {
	if users == nil {
		users = &MockUserRepo{}
	}
	if profiles == nil {
		profiles = &MockProfileRepo{}
	}
	if tokens == nil {
		tokens = &MockTokenProvider{}
	}
	return identity.NewService(&MockStore{users: users, profiles: profiles}, MockPasswordHasher{}, tokens, c, time.Minute, time.Hour, zap.NewNop())
}

func TestSignUp_Success(t *testing.T) {
	users := &MockUserRepo{}
	profiles := &MockProfileRepo{}

	var created *models.User
	users.CreateFunc = func(ctx context.Context, u *models.User) error {
		created = u
		return nil
	}
	profiles.UpsertFunc = func(ctx context.Context, p *models.Profile) error {
		if p.ID != created.ID {
			t.Errorf("profile id %v must match user id %v", p.ID, created.ID)
		}
		if p.Role != models.RoleCustomer {
			t.Errorf("Expected default role customer, got %s", p.Role)
		}
		return nil
	}

	svc := newTestService(users, profiles, nil, nil)
	p, err := svc.SignUp(context.Background(), identity.SignUpInput{Email: " Test@Example.com ", Password: "secret1", Name: "Ann"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got %s", p.Email)
	}
	if created.PasswordHash != "hashed_secret1" {
		t.Errorf("Expected hashed password, got %s", created.PasswordHash)
	}
	if p.Name != "Ann" {
		t.Errorf("Expected name Ann, got %s", p.Name)
	}
}

func TestSignUp_EmailExists(t *testing.T) {
	users := &MockUserRepo{}
	users.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) { return true, nil }
	users.CreateFunc = func(ctx context.Context, u *models.User) error {
		t.Error("Create must not be called for an existing email")
		return nil
	}

	svc := newTestService(users, nil, nil, nil)
	_, err := svc.SignUp(context.Background(), identity.SignUpInput{Email: "a@example.com", Password: "secret1"})
	if !errors.Is(err, identity.ErrEmailExists) {
		t.Fatalf("Expected ErrEmailExists, got %v", err)
	}
}

func TestSignUp_InvalidRole(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)
	_, err := svc.SignUp(context.Background(), identity.SignUpInput{Email: "a@example.com", Password: "x", Role: "root"})
	if !errors.Is(err, identity.ErrInvalidRole) {
		t.Fatalf("Expected ErrInvalidRole, got %v", err)
	}
}

func userWith(id uuid.UUID) func(ctx context.Context, email string) (*models.User, error) {
	return func(ctx context.Context, email string) (*models.User, error) {
		if email != "a@example.com" {
			return nil, nil
		}
		return &models.User{ID: id, Email: email, PasswordHash: "hashed_secret1"}, nil
	}
}

func TestSignIn_Success(t *testing.T) {
	id := uuid.New()
	users := &MockUserRepo{GetByEmailFunc: userWith(id)}
	profiles := &MockProfileRepo{GetFunc: func(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
		return &models.Profile{ID: userID, Role: models.RoleAdmin, Name: "Owner"}, nil
	}}
	tokens := &MockTokenProvider{SignAccessFunc: func(ctx context.Context, sub uuid.UUID, email string, role models.Role, ttl time.Duration) (string, time.Time, error) {
		if sub != id || role != models.RoleAdmin {
			t.Errorf("unexpected token subject %v role %s", sub, role)
		}
		if ttl != time.Hour {
			t.Errorf("Expected ttl 1h, got %v", ttl)
		}
		return "tok", time.Now().Add(ttl), nil
	}}

	svc := newTestService(users, profiles, tokens, nil)
	sess, err := svc.SignIn(context.Background(), "A@example.com", "secret1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sess.AccessToken != "tok" {
		t.Errorf("Expected token tok, got %s", sess.AccessToken)
	}
	if !sess.Principal.IsAdmin() || sess.Principal.Name != "Owner" {
		t.Errorf("unexpected principal %+v", sess.Principal)
	}
}

func TestSignIn_WrongPasswordOrRole(t *testing.T) {
	id := uuid.New()
	users := &MockUserRepo{GetByEmailFunc: userWith(id)}
	tokens := &MockTokenProvider{SignAccessFunc: func(context.Context, uuid.UUID, string, models.Role, time.Duration) (string, time.Time, error) {
		t.Error("token must not be issued")
		return "", time.Time{}, nil
	}}
	// профиля нет, значит покупатель
	svc := newTestService(users, nil, tokens, nil)

	cases := []struct {
		name     string
		email    string
		password string
		want     models.Role
	}{
		{"unknown email", "nobody@example.com", "secret1", models.RoleCustomer},
		{"wrong password", "a@example.com", "nope", models.RoleCustomer},
		{"customer on admin login", "a@example.com", "secret1", models.RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), tc.email, tc.password, tc.want)
			if !errors.Is(err, identity.ErrInvalidCredentials) {
				t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokens := &MockTokenProvider{ParseAndValidateAccessFunc: func(ctx context.Context, token string) (*identity.Claims, error) {
		return nil, errors.New("token is expired")
	}}
	svc := newTestService(nil, nil, tokens, nil)

	for _, tok := range []string{"", "   ", "expired"} {
		if _, err := svc.Authenticate(context.Background(), tok); !errors.Is(err, identity.ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestAuthenticate_UsesProfileCache(t *testing.T) {
	id := uuid.New()
	profileReads := 0
	profiles := &MockProfileRepo{GetFunc: func(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
		profileReads++
		return &models.Profile{ID: userID, Role: models.RoleAdmin}, nil
	}}
	tokens := &MockTokenProvider{ParseAndValidateAccessFunc: func(ctx context.Context, token string) (*identity.Claims, error) {
		return &identity.Claims{UserID: id, Email: "a@example.com", Role: models.RoleCustomer}, nil
	}}
	c := newMockCache()
	svc := newTestService(nil, profiles, tokens, c)

	for i := 0; i < 3; i++ {
		p, err := svc.Authenticate(context.Background(), "tok")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		// роль берётся из профиля, а не из токена
		if p.Role != models.RoleAdmin {
			t.Fatalf("Expected admin role from profile, got %s", p.Role)
		}
	}
	if profileReads != 1 {
		t.Errorf("Expected 1 profile read, got %d", profileReads)
	}
	if _, ok := c.data[cache.ProfileKey(id.String())]; !ok {
		t.Error("profile must be cached")
	}
}

func TestResolveProfile_MissingIsCustomer(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)
	rp, err := svc.ResolveProfile(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rp.Role != models.RoleCustomer {
		t.Errorf("Expected customer, got %s", rp.Role)
	}
}

func TestSetRole_InvalidatesCache(t *testing.T) {
	id := uuid.New()
	role := models.RoleCustomer
	users := &MockUserRepo{GetByEmailFunc: userWith(id)}
	profiles := &MockProfileRepo{
		GetFunc: func(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
			return &models.Profile{ID: userID, Role: role}, nil
		},
		SetRoleFunc: func(ctx context.Context, userID uuid.UUID, r models.Role) error {
			role = r
			return nil
		},
	}
	c := newMockCache()
	svc := newTestService(users, profiles, nil, c)

	if _, err := svc.ResolveProfile(context.Background(), id); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	p, err := svc.SetRole(context.Background(), "a@example.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Role != models.RoleAdmin {
		t.Errorf("Expected admin after SetRole, got %s", p.Role)
	}
	if c.dels != 1 {
		t.Errorf("Expected cache invalidation, got %d deletes", c.dels)
	}

	if _, err := svc.SetRole(context.Background(), "nobody@example.com", models.RoleAdmin); !errors.Is(err, identity.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.SetRole(context.Background(), "a@example.com", "root"); !errors.Is(err, identity.ErrInvalidRole) {
		t.Errorf("Expected ErrInvalidRole, got %v", err)
	}
}

type recordingHasher struct {
	MockPasswordHasher
	compared []string
	hashErr  error
}

func (h *recordingHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.MockPasswordHasher.Hash(password)
}

func (h *recordingHasher) Compare(hash, password string) bool {
	h.compared = append(h.compared, hash)
	return h.MockPasswordHasher.Compare(hash, password)
}

func TestSignIn_UnknownEmailStillComparesPassword(t *testing.T) {
	users := &MockUserRepo{GetByEmailFunc: userWith(uuid.New())}
	h := &recordingHasher{}
	svc := identity.NewService(&MockStore{users: users, profiles: &MockProfileRepo{}}, h, &MockTokenProvider{}, nil, time.Minute, time.Hour, zap.NewNop())

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "secret1", models.RoleCustomer)
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
	if len(h.compared) != 1 || h.compared[0] != "" {
		t.Fatalf("Expected one compare against empty hash, got %q", h.compared)
	}
}

func TestSignUp_PasswordTooLong(t *testing.T) {
	users := &MockUserRepo{CreateFunc: func(ctx context.Context, u *models.User) error {
		t.Error("Create must not be called when hashing fails")
		return nil
	}}
	h := &recordingHasher{hashErr: identity.ErrPasswordTooLong}
	svc := identity.NewService(&MockStore{users: users, profiles: &MockProfileRepo{}}, h, nil, nil, time.Minute, time.Hour, zap.NewNop())

	_, err := svc.SignUp(context.Background(), identity.SignUpInput{Email: "a@example.com", Password: "long"})
	if !errors.Is(err, identity.ErrPasswordTooLong) {
		t.Fatalf("Expected ErrPasswordTooLong, got %v", err)
	}
}
