package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"disaster-response/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Username]; exists {
		return models.ErrConflict
	}
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindVolunteerByUsername(_ context.Context, username string) (*models.User, error) {
	user, err := f.FindByUsername(context.Background(), username)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleVolunteer {
		return nil, models.ErrNotFound
	}
	return user, nil
}

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testSecret)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	// The username is taken now.
	if _, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "other", Role: models.RoleUser}); !errors.Is(err, models.ErrConflict) {
		t.Errorf("expected conflict for duplicate username, got %v", err)
	}

	// Admin accounts cannot self-register.
	if _, err := svc.Register(ctx, models.RegisterRequest{Username: "boss", Password: "password123", Role: models.RoleAdmin}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected validation error for admin role, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testSecret)
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterRequest{Username: "vol", Password: "password123", Role: models.RoleVolunteer}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	auth, err := svc.Login(ctx, models.LoginRequest{Username: "vol", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if auth.AccessToken == "" {
		t.Fatal("expected a signed token")
	}

	// The token must carry the identity and role claims.
	claims := &models.JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(auth.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.Username != "vol" || claims.Role != models.RoleVolunteer || claims.UserID == "" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Username: "vol", Password: "wrong"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Username: "ghost", Password: "password123"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials for unknown user, got %v", err)
	}
}
