package auth_test

import (
	"testing"
	"time"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/auth"
)

func TestIssueAndResolveToken(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.IssueToken(42)

	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := m.ResolveToken(token)

	if err != nil {
		t.Fatalf("ResolveToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}

	if claims.Subject != "42" {
		t.Fatalf("Subject = %q, want %q", claims.Subject, "42")
	}
}

func TestResolveTokenWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.IssueToken(1)

	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	_, err = verifier.ResolveToken(token)

	if !apperror.Is(err, apperror.KindInvalidToken) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindInvalidToken)
	}
}

func TestResolveTokenExpired(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.IssueToken(1)

	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	_, err = m.ResolveToken(token)

	if !apperror.Is(err, apperror.KindInvalidToken) {
		t.Fatalf("error kind = %v, want %v", apperror.KindOf(err), apperror.KindInvalidToken)
	}
}

func TestResolveTokenGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.ResolveToken(raw); !apperror.Is(err, apperror.KindInvalidToken) {
			t.Fatalf("ResolveToken(%q) error kind = %v, want %v", raw, apperror.KindOf(err), apperror.KindInvalidToken)
		}
	}
}
