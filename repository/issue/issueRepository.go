package issuerepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schooldesk/model"
)

// sentinel errors; services map them to API error codes
var (
	ErrNotFound      = errors.New("issue not found")
	ErrNotRequested  = errors.New("issue is not in requested state")
	ErrNotIssued     = errors.New("issue is not in issued state")
	ErrNoCopies      = errors.New("no available copies")
	ErrQuotaExceeded = errors.New("student issue quota exceeded")
)

// IssueRow is the joined shape the librarian dashboard renders: the issue
// plus book and student display attributes.
type IssueRow struct {
	ID          int64             `json:"id"`
	Status      model.IssueStatus `json:"status"`
	RequestedAt time.Time         `json:"requested_at"`
	IssuedAt    *time.Time        `json:"issued_at,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	ReturnDate  *time.Time        `json:"return_date,omitempty"`
	BookID      int64             `json:"book_id"`
	BookTitle   string            `json:"book_title"`
	BookAuthor  string            `json:"book_author"`
	StudentID   int64             `json:"student_id"`
	StudentName string            `json:"student_name"`
	StudentNo   string            `json:"student_no"`
	ClassName   string            `json:"class_name"`
}

type Repo interface {
	ListRecent(ctx context.Context, limit int) ([]IssueRow, error)
	Approve(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error
	Return(ctx context.Context, issueID int64) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListRecent(ctx context.Context, limit int) ([]IssueRow, error) {
	const q = `
		SELECT
			i.id, i.status, i.requested_at, i.issued_at, i.due_date, i.return_date,
			b.id                          AS book_id,
			b.title                       AS book_title,
			b.author                      AS book_author,
			u.id                          AS student_id,
			u.name                        AS student_name,
			COALESCE(u.student_no, '')    AS student_no,
			COALESCE(u.class_name, '')    AS class_name
		FROM book_issues i
		JOIN books b ON b.id = i.book_id
		JOIN users u ON u.id = i.student_id
		ORDER BY i.requested_at DESC, i.id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IssueRow
	for rows.Next() {
		var (
			row    IssueRow
			status string
		)
		if err := rows.Scan(
			&row.ID, &status, &row.RequestedAt, &row.IssuedAt, &row.DueDate, &row.ReturnDate,
			&row.BookID, &row.BookTitle, &row.BookAuthor,
			&row.StudentID, &row.StudentName, &row.StudentNo, &row.ClassName,
		); err != nil {
			return nil, err
		}
		if row.Status, err = model.ParseIssueStatus(status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Approve moves a requested issue to issued and takes one copy off the
// shelf, all inside one transaction. The issue row is locked and the
// decrement is conditional, so concurrent approvals cannot drive the
// available count negative.
func (r *repo) Approve(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bookID, studentID, status, err := lockIssue(ctx, tx, issueID)
	if err != nil {
		return err
	}
	if status != model.IssueRequested {
		return ErrNotRequested
	}

	const countQ = `
		SELECT COUNT(*)
		FROM book_issues
		WHERE student_id = $1
		AND status IN ('issued', 'overdue')`
	var open int
	if err = tx.QueryRowContext(ctx, countQ, studentID).Scan(&open); err != nil {
		return err
	}
	if open >= maxPerStudent {
		return ErrQuotaExceeded
	}

	// Guard: only decrement while copies remain.
	const decQ = `
		UPDATE books
		SET available_copies = available_copies - 1
		WHERE id = $1
		AND available_copies > 0`
	res, err := tx.ExecContext(ctx, decQ, bookID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNoCopies
	}

	now := time.Now().UTC()
	const upQ = `
		UPDATE book_issues
		SET status = 'issued',
			issued_at = $2,
			due_date = $3,
			approved_by = $4
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, upQ, issueID, now, now.AddDate(0, 0, loanDays), staffID); err != nil {
		return err
	}
	return tx.Commit()
}

// Return marks an issued (or overdue) issue returned and puts the copy
// back, clamped at total_copies so a pre-existing over-count can never
// push the counter past the ceiling.
func (r *repo) Return(ctx context.Context, issueID int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bookID, _, status, err := lockIssue(ctx, tx, issueID)
	if err != nil {
		return err
	}
	if status != model.IssueIssued && status != model.IssueOverdue {
		return ErrNotIssued
	}

	const upQ = `
		UPDATE book_issues
		SET status = 'returned',
			return_date = $2
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, upQ, issueID, time.Now().UTC()); err != nil {
		return err
	}

	const incQ = `
		UPDATE books
		SET available_copies = LEAST(available_copies + 1, total_copies)
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, incQ, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

// MarkOverdue flips issued rows whose due date has elapsed. Run
// periodically; this is what makes the overdue status reachable.
func (r *repo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	const q = `
		UPDATE book_issues
		SET status = 'overdue'
		WHERE status = 'issued'
		AND due_date < $1`
	res, err := r.db.ExecContext(ctx, q, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func lockIssue(ctx context.Context, tx *sql.Tx, issueID int64) (bookID, studentID int64, status model.IssueStatus, err error) {
	const q = `
		SELECT book_id, student_id, status
		FROM book_issues
		WHERE id = $1
		FOR UPDATE`
	var raw string
	if err = tx.QueryRowContext(ctx, q, issueID).Scan(&bookID, &studentID, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return 0, 0, "", err
	}
	if status, err = model.ParseIssueStatus(raw); err != nil {
		return 0, 0, "", err
	}
	return bookID, studentID, status, nil
}
