package services

import (
	"context"
	"errors"
	"testing"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/config"
	"laundry-backend/internal/models"
	"laundry-backend/internal/store"
)

// ----- test doubles -----

// mockStore implements store.Store (only methods used by these tests).
type mockStore struct {
	GetUserByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	CreateUserFn        func(ctx context.Context, user *models.User) error
	SaveEntryFn         func(ctx context.Context, entry *models.Entry) error
	ReadEntriesFn       func(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error)
}

func (m *mockStore) Init(ctx context.Context) error { return nil }
func (m *mockStore) ListMaster(ctx context.Context, c store.MasterCategory) ([]models.MasterItem, error) {
	return nil, nil
}
func (m *mockStore) AddMaster(ctx context.Context, c store.MasterCategory, name string) error {
	return nil
}
func (m *mockStore) DeleteMaster(ctx context.Context, c store.MasterCategory, name string) error {
	return nil
}
func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetUserByUsernameFn != nil {
		return m.GetUserByUsernameFn(ctx, username)
	}
	return nil, store.ErrNotFound
}
func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, user)
	}
	return nil
}
func (m *mockStore) SaveEntry(ctx context.Context, entry *models.Entry) error {
	if m.SaveEntryFn != nil {
		return m.SaveEntryFn(ctx, entry)
	}
	return nil
}
func (m *mockStore) ReadEntries(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error) {
	if m.ReadEntriesFn != nil {
		return m.ReadEntriesFn(ctx, dateFrom, dateTo)
	}
	return nil, nil
}
func (m *mockStore) Close() error { return nil }

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "laundry-backend-test"
	return auth.NewJWTManager(cfg)
}

// ----- tests -----

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	svc := NewUserService(&mockStore{
		GetUserByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 7, Username: username, PasswordHash: hash, Role: models.RoleWashTech}, nil
		},
	}, testJWTManager())

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "tech1", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.Username != "tech1" || resp.User.Role != models.RoleWashTech {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	hash, _ := auth.HashPassword("hunter2")
	svc := NewUserService(&mockStore{
		GetUserByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			if username == "tech1" {
				return &models.User{Username: username, PasswordHash: hash, Role: models.RoleWashTech}, nil
			}
			return nil, store.ErrNotFound
		},
	}, testJWTManager())

	// Unknown user and wrong password must be indistinguishable
	_, unknownErr := svc.Login(context.Background(), &models.LoginRequest{Username: "ghost", Password: "hunter2"})
	_, wrongPassErr := svc.Login(context.Background(), &models.LoginRequest{Username: "tech1", Password: "nope"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", wrongPassErr)
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	var saved *models.User
	svc := NewUserService(&mockStore{
		CreateUserFn: func(ctx context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}, testJWTManager())

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: " tech2 ", Password: "s3cret", Role: models.RoleWashTech, FullName: " Tech Two ",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if saved.Username != "tech2" || saved.FullName != "Tech Two" {
		t.Errorf("saved user = %+v, want trimmed fields", saved)
	}
	if saved.PasswordHash == "s3cret" || saved.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if !auth.VerifyPassword(saved.PasswordHash, "s3cret") {
		t.Error("stored hash does not verify")
	}
}

func TestCreateUserRejectsBadRole(t *testing.T) {
	svc := NewUserService(&mockStore{}, testJWTManager())

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: "x", Password: "p", Role: "supervisor",
	})
	if err == nil {
		t.Fatal("expected role validation error")
	}
}

func TestCreateUserDuplicatePassesThrough(t *testing.T) {
	svc := NewUserService(&mockStore{
		CreateUserFn: func(ctx context.Context, user *models.User) error {
			return store.ErrUsernameTaken
		},
	}, testJWTManager())

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: "tech1", Password: "p", Role: models.RoleWashTech,
	})
	if !errors.Is(err, store.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}
