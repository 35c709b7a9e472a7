package graph

import (
	"context"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/torchtask/taskhub/internal/domain/task"
	"github.com/torchtask/taskhub/internal/graph/authctx"
	"github.com/torchtask/taskhub/internal/validation"
)

type createTaskInput struct {
	TaskName    string
	Description string
	Status      *string
	DueDate     *string
}

type updateTaskInput struct {
	TaskName    *string
	Description *string
	Status      *string
	DueDate     *string
}

type taskFiltersInput struct {
	Status *string
	SortBy *string
}

type TaskResolver struct {
	t    task.Task
	svcs authctx.Services
}

func (r *TaskResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.t.ID, 10))
}

func (r *TaskResolver) TaskName() string { return r.t.Name }

func (r *TaskResolver) Description() string { return r.t.Description }

func (r *TaskResolver) Status() string { return string(r.t.Status) }

func (r *TaskResolver) UserID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.t.OwnerID, 10))
}

func (r *TaskResolver) User(ctx context.Context) (*UserResolver, error) {
	profile, err := r.svcs.Users.GetByID(ctx, r.t.OwnerID)

	if err != nil {
		return nil, err
	}

	return &UserResolver{p: profile, svcs: r.svcs}, nil
}

func (r *TaskResolver) CreatedAt() string { return isoTime(r.t.CreatedAt) }

func (r *TaskResolver) UpdatedAt() string { return isoTime(r.t.UpdatedAt) }

func (r *TaskResolver) DueDate() *string {
	if r.t.DueDate == nil {
		return nil
	}

	s := isoTime(*r.t.DueDate)
	return &s
}

// --- Queries ---

func (r *Resolver) TaskByUser(ctx context.Context, args struct{ Filters *taskFiltersInput }) ([]*TaskResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	filters := task.Filters{Sort: task.SortCreatedDesc}

	if args.Filters != nil {
		// both values are schema enums, so they arrive pre-checked; an
		// unknown sort key still falls back to newest-first
		if args.Filters.Status != nil {
			status := task.Status(*args.Filters.Status)
			filters.Status = &status
		}
		if args.Filters.SortBy != nil {
			filters.Sort = task.ParseSortKey(*args.Filters.SortBy)
		}
	}

	tasks, err := ac.Services.Tasks.ListByOwner(ctx, identity.ID, filters)

	if err != nil {
		return nil, err
	}

	out := make([]*TaskResolver, 0, len(tasks))

	for _, t := range tasks {
		out = append(out, &TaskResolver{t: t, svcs: ac.Services})
	}

	return out, nil
}

func (r *Resolver) TaskByID(ctx context.Context, args struct{ ID graphql.ID }) (*TaskResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return nil, err
	}

	t, err := ac.Services.Tasks.GetByID(ctx, id, identity.ID)

	if err != nil {
		return nil, err
	}

	return &TaskResolver{t: t, svcs: ac.Services}, nil
}

// --- Mutations ---

func (r *Resolver) CreateTask(ctx context.Context, args struct{ Input createTaskInput }) (*TaskResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	req, err := validation.TaskCreate(args.Input.TaskName, args.Input.Description, args.Input.Status, args.Input.DueDate)

	if err != nil {
		return nil, err
	}

	// owner is always the caller, never client input
	t, err := ac.Services.Tasks.Create(ctx, identity.ID, req)

	if err != nil {
		return nil, err
	}

	return &TaskResolver{t: t, svcs: ac.Services}, nil
}

func (r *Resolver) UpdateTask(ctx context.Context, args struct {
	ID    graphql.ID
	Input updateTaskInput
}) (*TaskResolver, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return nil, err
	}

	patch, err := validation.TaskUpdate(args.Input.TaskName, args.Input.Description, args.Input.Status, args.Input.DueDate)

	if err != nil {
		return nil, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return nil, err
	}

	t, err := ac.Services.Tasks.Update(ctx, id, patch, identity.ID)

	if err != nil {
		return nil, err
	}

	return &TaskResolver{t: t, svcs: ac.Services}, nil
}

func (r *Resolver) DeleteTask(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	ac, identity, err := requireIdentity(ctx)

	if err != nil {
		return false, err
	}

	id, err := validation.ParseID(string(args.ID))

	if err != nil {
		return false, err
	}

	return ac.Services.Tasks.Delete(ctx, id, identity.ID)
}
