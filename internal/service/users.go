// Package service owns entity lifecycles and the access-control invariants.
// Services speak typed apperrors upward and store interfaces downward; they
// never see raw persistence errors and never return password material.
package service

import (
	"context"
	"log/slog"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/auth"
	"github.com/torchtask/taskhub/internal/domain/task"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/security"
)

// UserStore is the persistence contract the user service consumes. Small on
// purpose so tests can fake it easily.
type UserStore interface {
	Create(ctx context.Context, email, passwordDigest, name string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, id int64, patch user.DigestPatch) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

// AuthPayload is what register and login hand back: a signed bearer token
// and the user, digest stripped.
type AuthPayload struct {
	Token string       `json:"token"`
	User  user.Profile `json:"user"`
}

type UserService struct {
	store  UserStore
	tasks  TaskStore
	tokens *auth.Manager
}

func NewUserService(store UserStore, tasks TaskStore, tokens *auth.Manager) *UserService {
	return &UserService{store: store, tasks: tasks, tokens: tokens}
}

// Register creates an account, hashes the password and issues a token.
func (s *UserService) Register(ctx context.Context, req user.CreateRequest) (AuthPayload, error) {
	_, err := s.store.GetByEmail(ctx, req.Email)

	if err == nil {
		return AuthPayload{}, apperror.NewEmailExists()
	}

	if !apperror.Is(err, apperror.KindNotFound) {
		return AuthPayload{}, err
	}

	digest, err := security.HashPassword(req.Password)

	if err != nil {
		return AuthPayload{}, apperror.NewInternal(err)
	}

	u, err := s.store.Create(ctx, req.Email, digest, req.Name)

	if err != nil {
		// two registrations racing on the same email: the loser hits the
		// unique constraint instead of the pre-check
		if apperror.Is(err, apperror.KindConflict) {
			return AuthPayload{}, apperror.NewEmailExists()
		}
		return AuthPayload{}, err
	}

	token, err := s.tokens.IssueToken(u.ID)

	if err != nil {
		return AuthPayload{}, apperror.NewInternal(err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", u.ID)

	return AuthPayload{Token: token, User: u.Profile()}, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the API never confirms whether an address is registered.
func (s *UserService) Login(ctx context.Context, creds user.Credentials) (AuthPayload, error) {
	u, err := s.store.GetByEmail(ctx, creds.Email)

	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return AuthPayload{}, apperror.NewInvalidCredentials()
		}
		return AuthPayload{}, err
	}

	if !security.CheckPassword(u.PasswordHash, creds.Password) {
		return AuthPayload{}, apperror.NewInvalidCredentials()
	}

	token, err := s.tokens.IssueToken(u.ID)

	if err != nil {
		return AuthPayload{}, apperror.NewInternal(err)
	}

	return AuthPayload{Token: token, User: u.Profile()}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (user.Profile, error) {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return user.Profile{}, err
	}

	return u.Profile(), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.Profile, error) {
	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		return user.Profile{}, err
	}

	return u.Profile(), nil
}

// TasksOf lists a user's tasks, newest first.
func (s *UserService) TasksOf(ctx context.Context, userID int64) ([]task.Task, error) {
	return s.tasks.ListByOwner(ctx, userID, task.Filters{Sort: task.SortCreatedDesc})
}

// Update applies a validated patch. Whether the caller may touch this user
// is the resolver's check, not ours. A new password is re-hashed here.
func (s *UserService) Update(ctx context.Context, id int64, patch user.Patch) (user.Profile, error) {
	digestPatch := user.DigestPatch{
		Email: patch.Email,
		Name:  patch.Name,
	}

	if patch.Password != nil {
		digest, err := security.HashPassword(*patch.Password)

		if err != nil {
			return user.Profile{}, apperror.NewInternal(err)
		}

		digestPatch.PasswordDigest = &digest
	}

	u, err := s.store.Update(ctx, id, digestPatch)

	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return user.Profile{}, apperror.NewEmailExists()
		}
		return user.Profile{}, err
	}

	return u.Profile(), nil
}

// Delete removes the account. Owned tasks go with it (schema cascade).
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id)

	return true, nil
}
