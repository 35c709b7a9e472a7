// Package graph maps GraphQL operations onto the services. Resolvers own
// the operation-level authorization checks (must be authenticated, must be
// the target user); ownership of individual tasks is enforced one layer
// down in the task service.
package graph

import (
	"context"
	"errors"
	"time"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/graph/authctx"
)

// Resolver is the root. It is stateless: identity and service handles come
// from the per-request context built by authctx.
type Resolver struct{}

func current(ctx context.Context) (authctx.Context, error) {
	ac, ok := authctx.From(ctx)

	if !ok {
		// the transport always installs a context; hitting this means the
		// handler was mounted without the authctx middleware
		return authctx.Context{}, apperror.NewInternal(errors.New("request context not initialized"))
	}

	return ac, nil
}

func requireIdentity(ctx context.Context) (authctx.Context, *user.Profile, error) {
	ac, err := current(ctx)

	if err != nil {
		return ac, nil, err
	}

	if ac.Identity == nil {
		return ac, nil, apperror.NewUnauthenticated()
	}

	return ac, ac.Identity, nil
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
