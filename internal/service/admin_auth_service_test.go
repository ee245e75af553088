package service

import (
	"testing"

	"courtside/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[string]*repository.Admin
}

func (f *fakeAdminRepo) GetByEmail(email string) (*repository.Admin, error) {
	return f.admins[email], nil
}

func (f *fakeAdminRepo) CreateNewUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	f.admins[email] = &repository.Admin{ID: len(f.admins) + 1, Email: email, PasswordHash: string(hash)}
	return nil
}

func newAuthService(t *testing.T) AdminAuthService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := &fakeAdminRepo{admins: map[string]*repository.Admin{}}
	svc := NewAdminAuthService(repo)
	if err := svc.CreateAdmin("admin@example.com", "hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestAdminLogin_IssuesVerifiableToken(t *testing.T) {
	svc := newAuthService(t)

	tokenString, err := svc.Login("admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected a valid token, got err=%v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("expected map claims")
	}
	if claims["email"] != "admin@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Login("admin@example.com", "wrong"); err == nil {
		t.Fatalf("expected invalid credentials error")
	}
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Login("nobody@example.com", "hunter2"); err == nil {
		t.Fatalf("expected invalid credentials error")
	}
}

func TestCreateAdmin_RequiresCredentials(t *testing.T) {
	svc := newAuthService(t)
	if err := svc.CreateAdmin("", ""); err == nil {
		t.Fatalf("expected error for empty credentials")
	}
}
