package model

import (
	"fmt"
	"time"
)

type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int64     `json:"total_copies"`
	AvailableCopies int64     `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

type IssueStatus string

const (
	IssueRequested IssueStatus = "requested"
	IssueIssued    IssueStatus = "issued"
	IssueReturned  IssueStatus = "returned"
	IssueOverdue   IssueStatus = "overdue"
)

// ParseIssueStatus rejects anything outside the enum. Rows carrying an
// unknown status fail the snapshot load instead of rendering as garbage.
func ParseIssueStatus(s string) (IssueStatus, error) {
	switch st := IssueStatus(s); st {
	case IssueRequested, IssueIssued, IssueReturned, IssueOverdue:
		return st, nil
	}
	return "", fmt.Errorf("unknown issue status %q", s)
}
