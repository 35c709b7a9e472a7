package service

import (
	"context"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/task"
)

// TaskStore is the persistence contract the task service consumes.
type TaskStore interface {
	Create(ctx context.Context, ownerID int64, req task.CreateRequest) (task.Task, error)
	GetByID(ctx context.Context, id int64) (task.Task, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
	NameTaken(ctx context.Context, ownerID int64, name string) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, filters task.Filters) ([]task.Task, error)
	Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// VerifyOwnership is the single choke point every id-addressed operation
// passes through before reading or mutating. It loads only the owner id.
func (s *TaskService) VerifyOwnership(ctx context.Context, taskID, userID int64) error {
	ownerID, err := s.store.OwnerOf(ctx, taskID)

	if err != nil {
		return err
	}

	if ownerID != userID {
		return apperror.NewForbidden("You can only access your own tasks")
	}

	return nil
}

// Create persists a task for ownerID. The owner is always the authenticated
// caller; a client-supplied owner is never trusted.
func (s *TaskService) Create(ctx context.Context, ownerID int64, req task.CreateRequest) (task.Task, error) {
	taken, err := s.store.NameTaken(ctx, ownerID, req.Name)

	if err != nil {
		return task.Task{}, err
	}

	if taken {
		return task.Task{}, apperror.NewTaskExists()
	}

	t, err := s.store.Create(ctx, ownerID, req)

	if err != nil {
		// lost a race against an identical create; same owner+name exists now
		if apperror.Is(err, apperror.KindConflict) {
			return task.Task{}, apperror.NewTaskExists()
		}
		return task.Task{}, err
	}

	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id, callerID int64) (task.Task, error) {
	if err := s.VerifyOwnership(ctx, id, callerID); err != nil {
		return task.Task{}, err
	}

	// a concurrent delete can still win between the check and this fetch;
	// that surfaces as not found, never a crash
	return s.store.GetByID(ctx, id)
}

func (s *TaskService) ListByOwner(ctx context.Context, ownerID int64, filters task.Filters) ([]task.Task, error) {
	tasks, err := s.store.ListByOwner(ctx, ownerID, filters)

	if err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []task.Task{}
	}

	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, patch task.Patch, callerID int64) (task.Task, error) {
	if err := s.VerifyOwnership(ctx, id, callerID); err != nil {
		return task.Task{}, err
	}

	t, err := s.store.Update(ctx, id, patch)

	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return task.Task{}, apperror.NewTaskExists()
		}
		return task.Task{}, err
	}

	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id, callerID int64) (bool, error) {
	if err := s.VerifyOwnership(ctx, id, callerID); err != nil {
		return false, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return false, err
	}

	return true, nil
}
