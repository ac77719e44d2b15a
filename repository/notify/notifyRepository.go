package notifyrepo

import (
	"context"
	"time"
)

// Event is the payload posted to the school's notification webhook when a
// counseling request changes state.
type Event struct {
	Event      string    `json:"event"`
	StudentID  int64     `json:"student_id"`
	RequestID  int64     `json:"request_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Repo interface {
	Send(ctx context.Context, ev Event) error
}

// NewDisabled is used when no webhook URL is configured.
func NewDisabled() Repo { return disabled{} }

type disabled struct{}

func (disabled) Send(context.Context, Event) error { return nil }
