package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/task"
)

type TasksRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]task.Task
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{items: make(map[int64]task.Task)}
}

func (r *TasksRepo) Create(ctx context.Context, ownerID int64, req task.CreateRequest) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.items {
		if t.OwnerID == ownerID && t.Name == req.Name {
			return task.Task{}, apperror.NewConflict("Task already exists")
		}
	}

	r.nextID++
	now := time.Now().UTC()

	t := task.Task{
		ID:          r.nextID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[t.ID] = t

	return t, nil
}

func (r *TasksRepo) GetByID(ctx context.Context, id int64) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]

	if !ok {
		return task.Task{}, apperror.NewNotFound("Task not found")
	}

	return t, nil
}

func (r *TasksRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]

	if !ok {
		return 0, apperror.NewNotFound("Task not found")
	}

	return t.OwnerID, nil
}

func (r *TasksRepo) NameTaken(ctx context.Context, ownerID int64, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.OwnerID == ownerID && t.Name == name {
			return true, nil
		}
	}

	return false, nil
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID int64, filters task.Filters) ([]task.Task, error) {
	r.mu.RLock()

	out := make([]task.Task, 0)

	for _, t := range r.items {
		if t.OwnerID != ownerID {
			continue
		}
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		out = append(out, t)
	}

	r.mu.RUnlock()

	sortTasks(out, filters.Sort)

	return out, nil
}

func sortTasks(items []task.Task, key task.SortKey) {
	less := func(i, j int) bool { return cmpCreated(items[i], items[j]) > 0 } // newest first

	switch key {
	case task.SortCreatedAsc:
		less = func(i, j int) bool { return cmpCreated(items[i], items[j]) < 0 }
	case task.SortNameAsc:
		less = func(i, j int) bool { return items[i].Name < items[j].Name }
	case task.SortNameDesc:
		less = func(i, j int) bool { return items[i].Name > items[j].Name }
	case task.SortDueAsc:
		less = func(i, j int) bool { return cmpDue(items[i], items[j]) < 0 }
	case task.SortDueDesc:
		less = func(i, j int) bool {
			a, b := items[i].DueDate, items[j].DueDate
			// undated tasks always sort last, matching the SQL NULLS LAST
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		}
	}

	sort.SliceStable(items, less)
}

func cmpCreated(a, b task.Task) int {
	switch {
	case a.CreatedAt.Before(b.CreatedAt):
		return -1
	case a.CreatedAt.After(b.CreatedAt):
		return 1
	default:
		// ties broken by id so ordering is stable across runs
		return int(a.ID - b.ID)
	}
}

// tasks without a due date sort last either way
func cmpDue(a, b task.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	case a.DueDate.Before(*b.DueDate):
		return -1
	case a.DueDate.After(*b.DueDate):
		return 1
	default:
		return 0
	}
}

func (r *TasksRepo) Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]

	if !ok {
		return task.Task{}, apperror.NewNotFound("Task not found")
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}

	t.UpdatedAt = time.Now().UTC()
	r.items[id] = t

	return t, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("Task not found")
	}

	delete(r.items, id)
	return nil
}
