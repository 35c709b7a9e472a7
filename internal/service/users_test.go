package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/auth"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/repo/memory"
	"github.com/torchtask/taskhub/internal/service"
)

func newUserService() *service.UserService {
	tokens := auth.NewManager("test-secret", time.Hour)
	return service.NewUserService(memory.NewUsersRepo(), memory.NewTasksRepo(), tokens)
}

func strPtr(s string) *string { return &s }

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	payload, err := svc.Register(ctx, user.CreateRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "Passw0rd",
	})

	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if payload.Token == "" {
		t.Fatal("no token issued on register")
	}

	if payload.User.ID == 0 || payload.User.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", payload.User)
	}

	login, err := svc.Login(ctx, user.Credentials{Email: "alice@example.com", Password: "Passw0rd"})

	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if login.Token == "" || login.User.ID != payload.User.ID {
		t.Fatalf("unexpected login payload: %+v", login)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	req := user.CreateRequest{Email: "alice@example.com", Name: "Alice", Password: "Passw0rd"}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)

	if !apperror.Is(err, apperror.KindEmailExists) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindEmailExists)
	}
}

func TestLoginFailuresAreUndifferentiated(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	if _, err := svc.Register(ctx, user.CreateRequest{Email: "alice@example.com", Name: "Alice", Password: "Passw0rd"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name  string
		creds user.Credentials
	}{
		{name: "unknown_email", creds: user.Credentials{Email: "nobody@example.com", Password: "Passw0rd"}},
		{name: "wrong_password", creds: user.Credentials{Email: "alice@example.com", Password: "Wr0ngPass"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.creds)

			if !apperror.Is(err, apperror.KindInvalidCredentials) {
				t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindInvalidCredentials)
			}
		})
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	payload, err := svc.Register(ctx, user.CreateRequest{Email: "alice@example.com", Name: "Alice", Password: "Passw0rd"})

	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = svc.Update(ctx, payload.User.ID, user.Patch{Password: strPtr("N3wPassword")})

	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := svc.Login(ctx, user.Credentials{Email: "alice@example.com", Password: "Passw0rd"}); !apperror.Is(err, apperror.KindInvalidCredentials) {
		t.Fatalf("old password still works, error kind = %v", apperror.KindOf(err))
	}

	if _, err := svc.Login(ctx, user.Credentials{Email: "alice@example.com", Password: "N3wPassword"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUpdateDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	tokens := auth.NewManager("test-secret", time.Hour)
	users := memory.NewUsersRepo()
	svc := service.NewUserService(users, memory.NewTasksRepo(), tokens)

	// seed directly; Update doesn't touch the digest unless a password is set
	if _, err := users.Create(ctx, "alice@example.com", "digest", "Alice"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	bob, err := users.Create(ctx, "bob@example.com", "digest", "Bob")

	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err = svc.Update(ctx, bob.ID, user.Patch{Email: strPtr("alice@example.com")})

	if !apperror.Is(err, apperror.KindEmailExists) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindEmailExists)
	}
}

func TestDeleteThenLookupNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	payload, err := svc.Register(ctx, user.CreateRequest{Email: "alice@example.com", Name: "Alice", Password: "Passw0rd"})

	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	ok, err := svc.Delete(ctx, payload.User.ID)

	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", ok, err)
	}

	_, err = svc.GetByID(ctx, payload.User.ID)

	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindNotFound)
	}
}
