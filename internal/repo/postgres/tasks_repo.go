package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/task"
	"github.com/torchtask/taskhub/internal/observability"
)

const taskColumns = `id, task_name, description, status, due_date, owner_id, created_at, updated_at`

type TasksRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTasksRepo(pool *pgxpool.Pool, prom *observability.Prom) *TasksRepo {
	return &TasksRepo{pool: pool, prom: prom}
}

func (r *TasksRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanTask(row interface{ Scan(...interface{}) error }, t *task.Task) error {
	return row.Scan(&t.ID, &t.Name, &t.Description, &t.Status, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TasksRepo) Create(ctx context.Context, ownerID int64, req task.CreateRequest) (task.Task, error) {
	var t task.Task

	err := r.observe("tasks.create", func() error {
		return scanTask(r.pool.QueryRow(ctx,
			`INSERT INTO tasks (task_name, description, status, due_date, owner_id)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+taskColumns,
			req.Name, req.Description, req.Status, req.DueDate, ownerID,
		), &t)
	})

	if err != nil {
		return task.Task{}, translateError(err, "Task")
	}

	return t, nil
}

func (r *TasksRepo) GetByID(ctx context.Context, id int64) (task.Task, error) {
	var t task.Task

	err := r.observe("tasks.get_by_id", func() error {
		return scanTask(r.pool.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
			id,
		), &t)
	})

	if err != nil {
		return task.Task{}, translateError(err, "Task")
	}

	return t, nil
}

// OwnerOf loads only the owner id. This is the minimal projection behind
// every ownership check.
func (r *TasksRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var ownerID int64

	err := r.observe("tasks.owner_of", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT owner_id FROM tasks WHERE id = $1`,
			id,
		).Scan(&ownerID)
	})

	if err != nil {
		return 0, translateError(err, "Task")
	}

	return ownerID, nil
}

// NameTaken reports whether the owner already has a task with this name.
// Uniqueness is per owner, not global.
func (r *TasksRepo) NameTaken(ctx context.Context, ownerID int64, name string) (bool, error) {
	var taken bool

	err := r.observe("tasks.name_taken", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM tasks WHERE owner_id = $1 AND task_name = $2)`,
			ownerID, name,
		).Scan(&taken)
	})

	if err != nil {
		return false, translateError(err, "Task")
	}

	return taken, nil
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID int64, filters task.Filters) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if filters.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filters.Status)
	}

	query += ` ORDER BY ` + orderClause(filters.Sort)

	var out []task.Task

	err := r.observe("tasks.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]task.Task, 0)

		for rows.Next() {
			var t task.Task

			if err := scanTask(rows, &t); err != nil {
				return err
			}

			out = append(out, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, translateError(err, "Task")
	}

	return out, nil
}

func orderClause(sort task.SortKey) string {
	switch sort {
	case task.SortCreatedAsc:
		return "created_at ASC, id ASC"
	case task.SortDueAsc:
		return "due_date ASC NULLS LAST, id ASC"
	case task.SortDueDesc:
		return "due_date DESC NULLS LAST, id DESC"
	case task.SortNameAsc:
		return "task_name ASC"
	case task.SortNameDesc:
		return "task_name DESC"
	default:
		// newest first
		return "created_at DESC, id DESC"
	}
}

func (r *TasksRepo) Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	pos := 2

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("task_name = $%d", pos))
		args = append(args, *patch.Name)
		pos++
	}

	if patch.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", pos))
		args = append(args, *patch.Description)
		pos++
	}

	if patch.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", pos))
		args = append(args, *patch.Status)
		pos++
	}

	if patch.DueDate != nil {
		sets = append(sets, fmt.Sprintf("due_date = $%d", pos))
		args = append(args, *patch.DueDate)
		pos++
	}

	var t task.Task

	err := r.observe("tasks.update", func() error {
		return scanTask(r.pool.QueryRow(ctx,
			`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+taskColumns,
			args...,
		), &t)
	})

	if err != nil {
		// a concurrent delete between the ownership check and this update
		// surfaces as no rows, which translates to not found
		return task.Task{}, translateError(err, "Task")
	}

	return t, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id int64) error {
	var affected int64

	err := r.observe("tasks.delete", func() error {
		res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)

		if err != nil {
			return err
		}

		affected = res.RowsAffected()
		return nil
	})

	if err != nil {
		return translateError(err, "Task")
	}

	if affected == 0 {
		return apperror.NewNotFound("Task not found")
	}

	return nil
}
