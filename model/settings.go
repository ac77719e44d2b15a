package model

import "time"

// SchoolSettings is a single-row table; LoanPeriodDays feeds the due date
// stamped at approval and MaxBooksPerStudent caps concurrent issues.
type SchoolSettings struct {
	SchoolName         string    `json:"school_name"`
	AcademicYear       string    `json:"academic_year"`
	LoanPeriodDays     int       `json:"loan_period_days"`
	MaxBooksPerStudent int       `json:"max_books_per_student"`
	UpdatedAt          time.Time `json:"updated_at"`
}
