package admin

import (
	"context"
	"errors"

	"schooldesk/model"
	bookrepo "schooldesk/repository/book"
)

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrDuplicate ErrCode = "DUPLICATE_BOOK"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// UserCounts breaks the users table down by role for the admin dashboard.
type UserCounts struct {
	Students   int64 `json:"students"`
	Teachers   int64 `json:"teachers"`
	Counselors int64 `json:"counselors"`
	Librarians int64 `json:"librarians"`
	Admins     int64 `json:"admins"`
}

type Snapshot struct {
	Users    UserCounts           `json:"users"`
	Catalog  bookrepo.Totals      `json:"catalog"`
	Settings model.SchoolSettings `json:"settings"`
}

type UserRepo interface {
	CountByRole(ctx context.Context) (map[model.Role]int64, error)
}

type BookRepo interface {
	CreateBook(ctx context.Context, title, author string, copies int) (int64, error)
	AddCopies(ctx context.Context, bookID int64, n int) error
	Totals(ctx context.Context) (*bookrepo.Totals, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*model.SchoolSettings, error)
	Update(ctx context.Context, s model.SchoolSettings) (*model.SchoolSettings, error)
}

type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	UpdateSettings(ctx context.Context, s model.SchoolSettings) (*model.SchoolSettings, error)
	CreateBook(ctx context.Context, title, author string, copies int) (int64, error)
	AddCopies(ctx context.Context, bookID int64, n int) error
}

type service struct {
	users    UserRepo
	books    BookRepo
	settings SettingsRepo
}

func New(users UserRepo, books BookRepo, settings SettingsRepo) Service {
	return &service{users: users, books: books, settings: settings}
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.books.Totals(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Users: UserCounts{
			Students:   counts[model.RoleStudent],
			Teachers:   counts[model.RoleTeacher],
			Counselors: counts[model.RoleCounselor],
			Librarians: counts[model.RoleLibrarian],
			Admins:     counts[model.RoleAdmin],
		},
		Catalog:  *totals,
		Settings: *cfg,
	}, nil
}

func (s *service) UpdateSettings(ctx context.Context, in model.SchoolSettings) (*model.SchoolSettings, error) {
	if in.SchoolName == "" || in.AcademicYear == "" {
		return nil, makeErr(ErrBadInput)
	}
	if in.LoanPeriodDays < 1 || in.LoanPeriodDays > 90 {
		return nil, makeErr(ErrBadInput)
	}
	if in.MaxBooksPerStudent < 1 || in.MaxBooksPerStudent > 20 {
		return nil, makeErr(ErrBadInput)
	}
	return s.settings.Update(ctx, in)
}

func (s *service) CreateBook(ctx context.Context, title, author string, copies int) (int64, error) {
	if title == "" || author == "" || copies < 1 {
		return 0, makeErr(ErrBadInput)
	}
	id, err := s.books.CreateBook(ctx, title, author, copies)
	if err != nil {
		if errors.Is(err, bookrepo.ErrDuplicate) {
			return 0, makeErr(ErrDuplicate)
		}
		return 0, err
	}
	return id, nil
}

func (s *service) AddCopies(ctx context.Context, bookID int64, n int) error {
	if n < 1 {
		return makeErr(ErrBadInput)
	}
	if err := s.books.AddCopies(ctx, bookID, n); err != nil {
		if errors.Is(err, bookrepo.ErrNotFound) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return nil
}
