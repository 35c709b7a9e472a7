// Package authctx builds the per-request authorization context: the
// caller's resolved identity (if any) plus the service handles resolvers
// work against. The context carries data and capabilities only, never live
// transport state.
package authctx

import (
	"context"
	"strings"

	"github.com/torchtask/taskhub/internal/auth"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/service"
)

type Services struct {
	Users *service.UserService
	Tasks *service.TaskService
}

// Context is rebuilt for every request and discarded with it. A nil
// Identity means the caller is anonymous; resolvers decide what that means
// per operation.
type Context struct {
	Identity *user.Profile
	Services Services
}

type ctxKey struct{}

type Builder struct {
	tokens *auth.Manager
	svcs   Services
}

func NewBuilder(tokens *auth.Manager, users *service.UserService, tasks *service.TaskService) *Builder {
	return &Builder{
		tokens: tokens,
		svcs:   Services{Users: users, Tasks: tasks},
	}
}

// Build resolves the Authorization header into a request context. It never
// fails: a missing header, a malformed or expired token, or a vanished user
// all degrade to an anonymous context. Register and login must still work,
// and everything else fails later at the resolver with a clean
// "not authenticated" instead of a token parse error.
func (b *Builder) Build(ctx context.Context, authHeader string) Context {
	anonymous := Context{Services: b.svcs}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return anonymous
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

	if raw == "" {
		return anonymous
	}

	claims, err := b.tokens.ResolveToken(raw)

	if err != nil {
		return anonymous
	}

	profile, err := b.svcs.Users.GetByID(ctx, claims.UserID)

	if err != nil {
		return anonymous
	}

	return Context{Identity: &profile, Services: b.svcs}
}

func With(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

func From(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(ctxKey{}).(Context)
	return ac, ok
}
