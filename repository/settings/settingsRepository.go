package settingsrepo

import (
	"context"
	"database/sql"
	"errors"

	"schooldesk/model"
)

var ErrNotSeeded = errors.New("school settings row missing; run schoolctl migrate")

type Repo interface {
	Get(ctx context.Context) (*model.SchoolSettings, error)
	Update(ctx context.Context, s model.SchoolSettings) (*model.SchoolSettings, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Get(ctx context.Context) (*model.SchoolSettings, error) {
	const q = `
		SELECT school_name, academic_year, loan_period_days, max_books_per_student, updated_at
		FROM school_settings
		WHERE id = 1`
	s := &model.SchoolSettings{}
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.SchoolName, &s.AcademicYear, &s.LoanPeriodDays, &s.MaxBooksPerStudent, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotSeeded
		}
		return nil, err
	}
	return s, nil
}

func (r *repo) Update(ctx context.Context, s model.SchoolSettings) (*model.SchoolSettings, error) {
	const q = `
		UPDATE school_settings
		SET school_name = $1,
			academic_year = $2,
			loan_period_days = $3,
			max_books_per_student = $4,
			updated_at = NOW()
		WHERE id = 1
		RETURNING school_name, academic_year, loan_period_days, max_books_per_student, updated_at`
	out := &model.SchoolSettings{}
	err := r.db.QueryRowContext(ctx, q,
		s.SchoolName, s.AcademicYear, s.LoanPeriodDays, s.MaxBooksPerStudent,
	).Scan(&out.SchoolName, &out.AcademicYear, &out.LoanPeriodDays, &out.MaxBooksPerStudent, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotSeeded
		}
		return nil, err
	}
	return out, nil
}
