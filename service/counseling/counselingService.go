package counseling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"schooldesk/model"
	counselrepo "schooldesk/repository/counseling"
	notifyrepo "schooldesk/repository/notify"
)

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrNotOwner    ErrCode = "NOT_OWNER"
	ErrNotPending  ErrCode = "NOT_PENDING"
	ErrNotAccepted ErrCode = "NOT_ACCEPTED"
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

type RequestRow = counselrepo.RequestRow

type Snapshot struct {
	Requests []RequestRow `json:"requests"`
}

type Stats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pendingRequests"`
	Accepted  int64 `json:"acceptedRequests"`
	Completed int64 `json:"completedRequests"`
	Cancelled int64 `json:"cancelledRequests"`
}

type Repo interface {
	ListForCounselor(ctx context.Context, counselorID int64, limit int) ([]counselrepo.RequestRow, error)
	Accept(ctx context.Context, requestID, counselorID int64) error
	Complete(ctx context.Context, requestID, counselorID int64) error
}

type Notifier interface {
	Send(ctx context.Context, ev notifyrepo.Event) error
}

type Service interface {
	Snapshot(ctx context.Context, counselorID int64) (*Snapshot, error)
	Accept(ctx context.Context, requestID, counselorID int64) (*Snapshot, error)
	Complete(ctx context.Context, requestID, counselorID int64) (*Snapshot, error)
}

type service struct {
	r     Repo
	n     Notifier
	log   *slog.Logger
	limit int
}

func New(r Repo, n Notifier, log *slog.Logger, limit int) Service {
	return &service{r: r, n: n, log: log, limit: limit}
}

func (s *service) Snapshot(ctx context.Context, counselorID int64) (*Snapshot, error) {
	rows, err := s.r.ListForCounselor(ctx, counselorID, s.limit)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Requests: rows}, nil
}

func (s *service) Accept(ctx context.Context, requestID, counselorID int64) (*Snapshot, error) {
	if err := s.r.Accept(ctx, requestID, counselorID); err != nil {
		return nil, mapErr(err)
	}
	snap, err := s.Snapshot(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "counseling.accepted", requestID, studentOf(snap, requestID))
	return snap, nil
}

func (s *service) Complete(ctx context.Context, requestID, counselorID int64) (*Snapshot, error) {
	if err := s.r.Complete(ctx, requestID, counselorID); err != nil {
		return nil, mapErr(err)
	}
	snap, err := s.Snapshot(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "counseling.completed", requestID, studentOf(snap, requestID))
	return snap, nil
}

// notify is best-effort: the transition is already committed, so a webhook
// failure is logged and never surfaced to the caller.
func (s *service) notify(ctx context.Context, event string, requestID, studentID int64) {
	ev := notifyrepo.Event{
		Event:      event,
		StudentID:  studentID,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.n.Send(ctx, ev); err != nil {
		s.log.Error("notify webhook", "event", event, "request_id", requestID, "err", err)
	}
}

func studentOf(snap *Snapshot, requestID int64) int64 {
	for _, r := range snap.Requests {
		if r.ID == requestID {
			return r.StudentID
		}
	}
	return 0
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, counselrepo.ErrNotFound):
		return makeErr(ErrNotFound)
	case errors.Is(err, counselrepo.ErrNotOwner):
		return makeErr(ErrNotOwner)
	case errors.Is(err, counselrepo.ErrNotPending):
		return makeErr(ErrNotPending)
	case errors.Is(err, counselrepo.ErrNotAccepted):
		return makeErr(ErrNotAccepted)
	}
	return err
}

// ComputeStats reduces a snapshot to per-status counts; pure and
// order-independent.
func ComputeStats(snap *Snapshot) Stats {
	var st Stats
	st.Total = int64(len(snap.Requests))
	for _, r := range snap.Requests {
		switch r.Status {
		case model.CounselingPending:
			st.Pending++
		case model.CounselingAccepted:
			st.Accepted++
		case model.CounselingCompleted:
			st.Completed++
		case model.CounselingCancelled:
			st.Cancelled++
		}
	}
	return st
}
