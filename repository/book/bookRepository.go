package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"schooldesk/model"
)

var (
	ErrNotFound  = errors.New("book not found")
	ErrDuplicate = errors.New("a book with this title and author already exists")
)

// Totals are the catalog aggregates the admin dashboard shows, computed
// at the query boundary instead of over a full client-side fetch.
type Totals struct {
	Titles          int64 `json:"titles"`
	TotalCopies     int64 `json:"total_copies"`
	AvailableCopies int64 `json:"available_copies"`
}

type Repo interface {
	List(ctx context.Context, limit int) ([]model.Book, error)
	CreateBook(ctx context.Context, title, author string, copies int) (int64, error)
	AddCopies(ctx context.Context, bookID int64, n int) error
	Totals(ctx context.Context) (*Totals, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context, limit int) ([]model.Book, error) {
	const q = `
		SELECT id, title, author, total_copies, available_copies, created_at
		FROM books
		ORDER BY title, id
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) CreateBook(ctx context.Context, title, author string, copies int) (int64, error) {
	const q = `
		INSERT INTO books (title, author, total_copies, available_copies)
		VALUES ($1, $2, $3, $3)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, title, author, copies).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repo) AddCopies(ctx context.Context, bookID int64, n int) error {
	const q = `
		UPDATE books
		SET total_copies = total_copies + $2,
			available_copies = available_copies + $2
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, bookID, n)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) Totals(ctx context.Context) (*Totals, error) {
	const q = `
		SELECT COUNT(*),
			COALESCE(SUM(total_copies), 0),
			COALESCE(SUM(available_copies), 0)
		FROM books`
	t := &Totals{}
	if err := r.db.QueryRowContext(ctx, q).Scan(&t.Titles, &t.TotalCopies, &t.AvailableCopies); err != nil {
		return nil, err
	}
	return t, nil
}
