package library

import (
	"context"
	"errors"
	"time"

	"schooldesk/model"
	issuerepo "schooldesk/repository/issue"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrNotRequested  ErrCode = "NOT_REQUESTED"
	ErrNotIssued     ErrCode = "NOT_ISSUED"
	ErrOutOfStock    ErrCode = "OUT_OF_STOCK"
	ErrQuotaExceeded ErrCode = "QUOTA_EXCEEDED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type IssueRow = issuerepo.IssueRow

// Snapshot is the librarian dashboard's working copy: the catalog plus the
// most recent issues, loaded together or not at all.
type Snapshot struct {
	Books  []model.Book `json:"books"`
	Issues []IssueRow   `json:"issues"`
}

type Stats struct {
	TotalBooks      int64 `json:"totalBooks"`
	AvailableBooks  int64 `json:"availableBooks"`
	IssuedBooks     int64 `json:"issuedBooks"`
	PendingRequests int64 `json:"pendingRequests"`
	OverdueBooks    int64 `json:"overdueBooks"`
	ReturnedBooks   int64 `json:"returnedBooks"`
}

type IssueRepo interface {
	ListRecent(ctx context.Context, limit int) ([]issuerepo.IssueRow, error)
	Approve(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error
	Return(ctx context.Context, issueID int64) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type BookRepo interface {
	List(ctx context.Context, limit int) ([]model.Book, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*model.SchoolSettings, error)
}

type Service interface {
	// Snapshot loads the full dashboard state; a failure on any query
	// aborts the whole load so the caller never sees partial data.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Approve issues a requested book and returns the refreshed snapshot.
	Approve(ctx context.Context, issueID, staffID int64) (*Snapshot, error)

	// Return marks an issued book returned and returns the refreshed snapshot.
	Return(ctx context.Context, issueID int64) (*Snapshot, error)
}

type service struct {
	issues   IssueRepo
	books    BookRepo
	settings SettingsRepo
	limit    int
}

func New(issues IssueRepo, books BookRepo, settings SettingsRepo, limit int) Service {
	return &service{issues: issues, books: books, settings: settings, limit: limit}
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	books, err := s.books.List(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	issues, err := s.issues.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Books: books, Issues: issues}, nil
}

func (s *service) Approve(ctx context.Context, issueID, staffID int64) (*Snapshot, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.issues.Approve(ctx, issueID, staffID, cfg.LoanPeriodDays, cfg.MaxBooksPerStudent); err != nil {
		return nil, mapIssueErr(err)
	}
	return s.Snapshot(ctx)
}

func (s *service) Return(ctx context.Context, issueID int64) (*Snapshot, error) {
	if err := s.issues.Return(ctx, issueID); err != nil {
		return nil, mapIssueErr(err)
	}
	return s.Snapshot(ctx)
}

func mapIssueErr(err error) error {
	switch {
	case errors.Is(err, issuerepo.ErrNotFound):
		return makeErr(ErrNotFound)
	case errors.Is(err, issuerepo.ErrNotRequested):
		return makeErr(ErrNotRequested)
	case errors.Is(err, issuerepo.ErrNotIssued):
		return makeErr(ErrNotIssued)
	case errors.Is(err, issuerepo.ErrNoCopies):
		return makeErr(ErrOutOfStock)
	case errors.Is(err, issuerepo.ErrQuotaExceeded):
		return makeErr(ErrQuotaExceeded)
	}
	return err
}

// ComputeStats reduces a snapshot to the dashboard counters. Pure and
// order-independent: only sums and per-status counts.
func ComputeStats(snap *Snapshot) Stats {
	var st Stats
	for _, b := range snap.Books {
		st.TotalBooks += b.TotalCopies
		st.AvailableBooks += b.AvailableCopies
	}
	for _, i := range snap.Issues {
		switch i.Status {
		case model.IssueRequested:
			st.PendingRequests++
		case model.IssueIssued:
			st.IssuedBooks++
		case model.IssueOverdue:
			st.OverdueBooks++
		case model.IssueReturned:
			st.ReturnedBooks++
		}
	}
	return st
}
