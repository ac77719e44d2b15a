package library_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schooldesk/model"
	issuerepo "schooldesk/repository/issue"
	"schooldesk/service/library"
)

type issueRepoMock struct {
	listFn        func(ctx context.Context, limit int) ([]issuerepo.IssueRow, error)
	approveFn     func(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error
	returnFn      func(ctx context.Context, issueID int64) error
	markOverdueFn func(ctx context.Context, asOf time.Time) (int64, error)
}

func (m *issueRepoMock) ListRecent(ctx context.Context, limit int) ([]issuerepo.IssueRow, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, limit)
}
func (m *issueRepoMock) Approve(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error {
	return m.approveFn(ctx, issueID, staffID, loanDays, maxPerStudent)
}
func (m *issueRepoMock) Return(ctx context.Context, issueID int64) error {
	return m.returnFn(ctx, issueID)
}
func (m *issueRepoMock) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return m.markOverdueFn(ctx, asOf)
}

type bookRepoMock struct {
	listFn func(ctx context.Context, limit int) ([]model.Book, error)
}

func (m *bookRepoMock) List(ctx context.Context, limit int) ([]model.Book, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, limit)
}

type settingsRepoMock struct {
	getFn func(ctx context.Context) (*model.SchoolSettings, error)
}

func (m *settingsRepoMock) Get(ctx context.Context) (*model.SchoolSettings, error) {
	if m.getFn == nil {
		return &model.SchoolSettings{LoanPeriodDays: 14, MaxBooksPerStudent: 3}, nil
	}
	return m.getFn(ctx)
}

func issuesFixture() []issuerepo.IssueRow {
	return []issuerepo.IssueRow{
		{ID: 1, Status: model.IssueIssued},
		{ID: 2, Status: model.IssueIssued},
		{ID: 3, Status: model.IssueIssued},
		{ID: 4, Status: model.IssueRequested},
		{ID: 5, Status: model.IssueOverdue},
	}
}

func TestSnapshot_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")

	// book query fails: nothing is returned
	svc := library.New(
		&issueRepoMock{},
		&bookRepoMock{listFn: func(ctx context.Context, limit int) ([]model.Book, error) { return nil, boom }},
		&settingsRepoMock{},
		50,
	)
	snap, err := svc.Snapshot(ctx)
	require.ErrorIs(t, err, boom)
	require.Nil(t, snap)

	// issue query fails: the already-loaded books must not leak out
	svc = library.New(
		&issueRepoMock{listFn: func(ctx context.Context, limit int) ([]issuerepo.IssueRow, error) { return nil, boom }},
		&bookRepoMock{listFn: func(ctx context.Context, limit int) ([]model.Book, error) {
			return []model.Book{{ID: 1, TotalCopies: 2, AvailableCopies: 2}}, nil
		}},
		&settingsRepoMock{},
		50,
	)
	snap, err = svc.Snapshot(ctx)
	require.ErrorIs(t, err, boom)
	require.Nil(t, snap)
}

func TestComputeStats_OrderInvariant(t *testing.T) {
	books := []model.Book{
		{ID: 1, TotalCopies: 5, AvailableCopies: 2},
		{ID: 2, TotalCopies: 3, AvailableCopies: 3},
	}
	want := library.Stats{
		TotalBooks:      8,
		AvailableBooks:  5,
		IssuedBooks:     3,
		PendingRequests: 1,
		OverdueBooks:    1,
	}

	rng := rand.New(rand.NewSource(1))
	issues := issuesFixture()
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(issues), func(a, b int) { issues[a], issues[b] = issues[b], issues[a] })
		rng.Shuffle(len(books), func(a, b int) { books[a], books[b] = books[b], books[a] })
		got := library.ComputeStats(&library.Snapshot{Books: books, Issues: issues})
		require.Equal(t, want, got, "iteration %d", i)
	}
}

func TestApprove_PassesSettingsAndReloads(t *testing.T) {
	ctx := context.Background()
	var gotLoanDays, gotMax int
	listCalls := 0

	ir := &issueRepoMock{
		approveFn: func(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error {
			require.Equal(t, int64(9), issueID)
			require.Equal(t, int64(77), staffID)
			gotLoanDays, gotMax = loanDays, maxPerStudent
			return nil
		},
		listFn: func(ctx context.Context, limit int) ([]issuerepo.IssueRow, error) {
			listCalls++
			return issuesFixture(), nil
		},
	}
	sr := &settingsRepoMock{getFn: func(ctx context.Context) (*model.SchoolSettings, error) {
		return &model.SchoolSettings{LoanPeriodDays: 21, MaxBooksPerStudent: 5}, nil
	}}
	svc := library.New(ir, &bookRepoMock{}, sr, 50)

	snap, err := svc.Approve(ctx, 9, 77)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, 21, gotLoanDays)
	require.Equal(t, 5, gotMax)
	require.Equal(t, 1, listCalls, "success must reload the snapshot")
}

func TestApprove_OutOfStock(t *testing.T) {
	ctx := context.Background()
	listCalls := 0
	ir := &issueRepoMock{
		approveFn: func(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error {
			return issuerepo.ErrNoCopies
		},
		listFn: func(ctx context.Context, limit int) ([]issuerepo.IssueRow, error) {
			listCalls++
			return nil, nil
		},
	}
	svc := library.New(ir, &bookRepoMock{}, &settingsRepoMock{}, 50)

	snap, err := svc.Approve(ctx, 9, 77)
	require.Error(t, err)
	require.Nil(t, snap)
	require.Equal(t, library.ErrOutOfStock, library.Code(err))
	require.Zero(t, listCalls, "failed approve must not reload")
}

func TestApprove_ErrorMapping(t *testing.T) {
	cases := []struct {
		repoErr error
		want    library.ErrCode
	}{
		{issuerepo.ErrNotFound, library.ErrNotFound},
		{issuerepo.ErrNotRequested, library.ErrNotRequested},
		{issuerepo.ErrNoCopies, library.ErrOutOfStock},
		{issuerepo.ErrQuotaExceeded, library.ErrQuotaExceeded},
	}
	for _, tc := range cases {
		ir := &issueRepoMock{
			approveFn: func(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error {
				return tc.repoErr
			},
		}
		svc := library.New(ir, &bookRepoMock{}, &settingsRepoMock{}, 50)
		_, err := svc.Approve(context.Background(), 1, 1)
		require.Equal(t, tc.want, library.Code(err), "repo error %v", tc.repoErr)
	}
}

func TestApprove_SettingsFailureAborts(t *testing.T) {
	boom := errors.New("settings gone")
	approved := false
	ir := &issueRepoMock{
		approveFn: func(ctx context.Context, issueID, staffID int64, loanDays, maxPerStudent int) error {
			approved = true
			return nil
		},
	}
	sr := &settingsRepoMock{getFn: func(ctx context.Context) (*model.SchoolSettings, error) { return nil, boom }}
	svc := library.New(ir, &bookRepoMock{}, sr, 50)

	_, err := svc.Approve(context.Background(), 1, 1)
	require.ErrorIs(t, err, boom)
	require.False(t, approved, "approve must not run without settings")
}

func TestReturn_ErrorMapping(t *testing.T) {
	ir := &issueRepoMock{
		returnFn: func(ctx context.Context, issueID int64) error { return issuerepo.ErrNotIssued },
	}
	svc := library.New(ir, &bookRepoMock{}, &settingsRepoMock{}, 50)

	_, err := svc.Return(context.Background(), 4)
	require.Equal(t, library.ErrNotIssued, library.Code(err))
}
