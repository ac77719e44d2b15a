package model

import "fmt"

// Badge is the presentation mapping for a status value: display label,
// icon identifier and style class. Every enum value must be mapped; an
// unmapped value is a programming error and panics rather than falling
// back to a silent default.
type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

func (s IssueStatus) Badge() Badge {
	switch s {
	case IssueRequested:
		return Badge{Label: "Requested", Icon: "clock", Class: "badge-warning"}
	case IssueIssued:
		return Badge{Label: "Issued", Icon: "book-open", Class: "badge-info"}
	case IssueReturned:
		return Badge{Label: "Returned", Icon: "check-circle", Class: "badge-success"}
	case IssueOverdue:
		return Badge{Label: "Overdue", Icon: "alert-triangle", Class: "badge-danger"}
	}
	panic(fmt.Sprintf("no badge mapping for issue status %q", string(s)))
}

func (s CounselingStatus) Badge() Badge {
	switch s {
	case CounselingPending:
		return Badge{Label: "Pending", Icon: "clock", Class: "badge-warning"}
	case CounselingAccepted:
		return Badge{Label: "Accepted", Icon: "user-check", Class: "badge-info"}
	case CounselingCompleted:
		return Badge{Label: "Completed", Icon: "check-circle", Class: "badge-success"}
	case CounselingCancelled:
		return Badge{Label: "Cancelled", Icon: "x-circle", Class: "badge-muted"}
	}
	panic(fmt.Sprintf("no badge mapping for counseling status %q", string(s)))
}
