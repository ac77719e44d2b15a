package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"schooldesk/model"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	ByEmail(ctx context.Context, email string) (*model.User, error)
	CountByRole(ctx context.Context) (map[model.Role]int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, student_no, class_name, created_at
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.StudentNo, &u.ClassName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *repo) CountByRole(ctx context.Context) (map[model.Role]int64, error) {
	const q = `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Role]int64)
	for rows.Next() {
		var (
			role string
			n    int64
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[model.Role(role)] = n
	}
	return out, rows.Err()
}
