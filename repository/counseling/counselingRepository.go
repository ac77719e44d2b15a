package counselrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schooldesk/model"
)

var (
	ErrNotFound    = errors.New("counseling request not found")
	ErrNotOwner    = errors.New("request belongs to another counselor")
	ErrNotPending  = errors.New("request is not pending")
	ErrNotAccepted = errors.New("request is not accepted")
)

// RequestRow joins the request with the student attributes the counselor
// dashboard shows.
type RequestRow struct {
	ID          int64                  `json:"id"`
	Reason      string                 `json:"reason"`
	Message     *string                `json:"message,omitempty"`
	Status      model.CounselingStatus `json:"status"`
	RequestedAt time.Time              `json:"requested_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	StudentID   int64                  `json:"student_id"`
	StudentName string                 `json:"student_name"`
	StudentNo   string                 `json:"student_no"`
	ClassName   string                 `json:"class_name"`
}

type Repo interface {
	ListForCounselor(ctx context.Context, counselorID int64, limit int) ([]RequestRow, error)
	Accept(ctx context.Context, requestID, counselorID int64) error
	Complete(ctx context.Context, requestID, counselorID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListForCounselor(ctx context.Context, counselorID int64, limit int) ([]RequestRow, error) {
	const q = `
		SELECT
			cr.id, cr.reason, cr.message, cr.status, cr.requested_at, cr.completed_at,
			u.id                       AS student_id,
			u.name                     AS student_name,
			COALESCE(u.student_no, '') AS student_no,
			COALESCE(u.class_name, '') AS class_name
		FROM counseling_requests cr
		JOIN users u ON u.id = cr.student_id
		WHERE cr.counselor_id = $1
		ORDER BY cr.requested_at DESC, cr.id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, counselorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var (
			row    RequestRow
			status string
		)
		if err := rows.Scan(
			&row.ID, &row.Reason, &row.Message, &status, &row.RequestedAt, &row.CompletedAt,
			&row.StudentID, &row.StudentName, &row.StudentNo, &row.ClassName,
		); err != nil {
			return nil, err
		}
		if row.Status, err = model.ParseCounselingStatus(status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) Accept(ctx context.Context, requestID, counselorID int64) error {
	return r.transition(ctx, requestID, counselorID, model.CounselingPending, `
		UPDATE counseling_requests
		SET status = 'accepted'
		WHERE id = $1`)
}

func (r *repo) Complete(ctx context.Context, requestID, counselorID int64) error {
	return r.transition(ctx, requestID, counselorID, model.CounselingAccepted, `
		UPDATE counseling_requests
		SET status = 'completed',
			completed_at = NOW()
		WHERE id = $1`)
}

// transition locks the request, re-checks ownership (the handler may be
// exposed as a shared service, so the loader's counselor filter is not
// trusted here) and the expected current status, then applies the update.
func (r *repo) transition(ctx context.Context, requestID, counselorID int64, want model.CounselingStatus, upQ string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
		SELECT counselor_id, status
		FROM counseling_requests
		WHERE id = $1
		FOR UPDATE`
	var (
		owner int64
		raw   string
	)
	if err = tx.QueryRowContext(ctx, q, requestID).Scan(&owner, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if owner != counselorID {
		return ErrNotOwner
	}
	status, err := model.ParseCounselingStatus(raw)
	if err != nil {
		return err
	}
	if status != want {
		if want == model.CounselingPending {
			return ErrNotPending
		}
		return ErrNotAccepted
	}

	if _, err = tx.ExecContext(ctx, upQ, requestID); err != nil {
		return err
	}
	return tx.Commit()
}
