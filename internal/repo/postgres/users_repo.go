package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/user"
	"github.com/torchtask/taskhub/internal/observability"
)

const userColumns = `id, email, name, password_digest, created_at, updated_at`

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordDigest, name string) (user.User, error) {
	var u user.User

	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO users (email, name, password_digest)
			 VALUES ($1, $2, $3)
			 RETURNING `+userColumns,
			email, name, passwordDigest,
		).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, translateError(err, "User")
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, translateError(err, "User")
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, translateError(err, "User")
	}

	return u, nil
}

// Update applies a partial patch. The password arrives here already hashed.
func (r *UsersRepo) Update(ctx context.Context, id int64, patch user.DigestPatch) (user.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	pos := 2

	if patch.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", pos))
		args = append(args, *patch.Email)
		pos++
	}

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", pos))
		args = append(args, *patch.Name)
		pos++
	}

	if patch.PasswordDigest != nil {
		sets = append(sets, fmt.Sprintf("password_digest = $%d", pos))
		args = append(args, *patch.PasswordDigest)
		pos++
	}

	var u user.User

	err := r.observe("users.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+userColumns,
			args...,
		).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, translateError(err, "User")
	}

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	var tag int64

	err := r.observe("users.delete", func() error {
		res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

		if err != nil {
			return err
		}

		tag = res.RowsAffected()
		return nil
	})

	if err != nil {
		return translateError(err, "User")
	}

	// no rows deleted means the user was already gone
	if tag == 0 {
		return apperror.NewNotFound("User not found")
	}

	return nil
}
