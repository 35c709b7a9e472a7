package graph

import (
	"context"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/graph/authctx"
	"github.com/torchtask/taskhub/internal/service"
	"github.com/torchtask/taskhub/internal/validation"
)

type createUserInput struct {
	Email    string
	Password string
	Name     string
}

type loginInput struct {
	Email    string
	Password string
}

type updateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UserResolver renders a user. The underlying profile never carries the
// password digest.
type UserResolver struct {
	p    user.Profile
	svcs authctx.Services
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.p.ID, 10))
}

func (r *UserResolver) Email() string { return r.p.Email }

func (r *UserResolver) Name() string { return r.p.Name }

func (r *UserResolver) CreatedAt() string { return isoTime(r.p.CreatedAt) }

func (r *UserResolver) UpdatedAt() string { return isoTime(r.p.UpdatedAt) }

func (r *UserResolver) Tasks(ctx context.Context) ([]*TaskResolver, error) {
	tasks, err := r.svcs.Users.TasksOf(ctx, r.p.ID)

	if err != nil {
		return nil, err
	}

	out := make([]*TaskResolver, 0, len(tasks))

	for _, t := range tasks {
		out = append(out, &TaskResolver{t: t, svcs: r.svcs})
	}

	return out, nil
}

type AuthPayloadResolver struct {
	payload service.AuthPayload
	svcs    authctx.Services
}

func (r *AuthPayloadResolver) Token() string { return r.payload.Token }

func (r *AuthPayloadResolver) User() *UserResolver {
	return &UserResolver{p: r.payload.User, svcs: r.svcs}
}

// --- Queries ---

func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	return &UserResolver{p: *identity, svcs: ac.Services}, nil
}

// Users exists in the schema but no caller is ever allowed to list users.
// There is no privilege tier, so the answer is a denial for everyone.
func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	if _, _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	return nil, apperror.NewForbidden(`Access denied. Use the "me" query to see your own profile.`)
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return nil, err
	}

	if identity.ID != id {
		return nil, apperror.NewForbidden("You can only view your own profile")
	}

	profile, err := ac.Services.Users.GetByID(ctx, id)

	if err != nil {
		return nil, err
	}

	return &UserResolver{p: profile, svcs: ac.Services}, nil
}

func (r *Resolver) UserByEmail(ctx context.Context, args struct{ Email string }) (*UserResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	email, err := validation.ParseEmail(args.Email)

	if err != nil {
		return nil, err
	}

	if identity.Email != email {
		return nil, apperror.NewForbidden("You can only view your own profile")
	}

	profile, err := ac.Services.Users.GetByEmail(ctx, email)

	if err != nil {
		return nil, err
	}

	return &UserResolver{p: profile, svcs: ac.Services}, nil
}

// --- Mutations ---

func (r *Resolver) Register(ctx context.Context, args struct{ Input createUserInput }) (*AuthPayloadResolver, error) {
	ac, err := current(ctx)

	if err != nil {
		return nil, err
	}

	req, err := validation.UserCreate(args.Input.Email, args.Input.Name, args.Input.Password)

	if err != nil {
		return nil, err
	}

	payload, err := ac.Services.Users.Register(ctx, req)

	if err != nil {
		return nil, err
	}

	return &AuthPayloadResolver{payload: payload, svcs: ac.Services}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input loginInput }) (*AuthPayloadResolver, error) {
	ac, err := current(ctx)

	if err != nil {
		return nil, err
	}

	creds, err := validation.Credentials(args.Input.Email, args.Input.Password)

	if err != nil {
		return nil, err
	}

	payload, err := ac.Services.Users.Login(ctx, creds)

	if err != nil {
		return nil, err
	}

	return &AuthPayloadResolver{payload: payload, svcs: ac.Services}, nil
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID    graphql.ID
	Input updateUserInput
}) (*UserResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	patch, err := validation.UserUpdate(user.Patch{
		Email:    args.Input.Email,
		Name:     args.Input.Name,
		Password: args.Input.Password,
	})

	if err != nil {
		return nil, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return nil, err
	}

	if identity.ID != id {
		return nil, apperror.NewForbidden("You can only update your own account")
	}

	profile, err := ac.Services.Users.Update(ctx, id, patch)

	if err != nil {
		return nil, err
	}

	return &UserResolver{p: profile, svcs: ac.Services}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return false, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return false, err
	}

	if identity.ID != id {
		return false, apperror.NewForbidden("You can only delete your own account")
	}

	return ac.Services.Users.Delete(ctx, id)
}
