package model

import "fmt"

type CounselingStatus string

const (
	CounselingPending   CounselingStatus = "pending"
	CounselingAccepted  CounselingStatus = "accepted"
	CounselingCompleted CounselingStatus = "completed"
	CounselingCancelled CounselingStatus = "cancelled"
)

func ParseCounselingStatus(s string) (CounselingStatus, error) {
	switch st := CounselingStatus(s); st {
	case CounselingPending, CounselingAccepted, CounselingCompleted, CounselingCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown counseling status %q", s)
}
