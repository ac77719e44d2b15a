package library

import (
	"context"
	"time"
)

// Sweeper flips issued books with an elapsed due date to overdue.
type Sweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

type sweeper struct {
	issues IssueRepo
}

func NewSweeper(issues IssueRepo) Sweeper { return &sweeper{issues: issues} }

func (s *sweeper) SweepOverdue(ctx context.Context) (int64, error) {
	return s.issues.MarkOverdue(ctx, time.Now().UTC())
}
