package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueBadge_CoversEveryStatus(t *testing.T) {
	for _, s := range []IssueStatus{IssueRequested, IssueIssued, IssueReturned, IssueOverdue} {
		b := s.Badge()
		require.NotEmpty(t, b.Label, "label for %s", s)
		require.NotEmpty(t, b.Icon, "icon for %s", s)
		require.NotEmpty(t, b.Class, "class for %s", s)
	}
}

func TestCounselingBadge_CoversEveryStatus(t *testing.T) {
	for _, s := range []CounselingStatus{CounselingPending, CounselingAccepted, CounselingCompleted, CounselingCancelled} {
		b := s.Badge()
		require.NotEmpty(t, b.Label, "label for %s", s)
		require.NotEmpty(t, b.Icon, "icon for %s", s)
		require.NotEmpty(t, b.Class, "class for %s", s)
	}
}

func TestBadge_UnmappedPanics(t *testing.T) {
	require.Panics(t, func() { IssueStatus("archived").Badge() })
	require.Panics(t, func() { CounselingStatus("snoozed").Badge() })
}

func TestParseIssueStatus(t *testing.T) {
	for _, s := range []string{"requested", "issued", "returned", "overdue"} {
		got, err := ParseIssueStatus(s)
		require.NoError(t, err)
		require.Equal(t, IssueStatus(s), got)
	}
	_, err := ParseIssueStatus("ISSUED")
	require.Error(t, err)
	_, err = ParseIssueStatus("")
	require.Error(t, err)
}

func TestParseCounselingStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "completed", "cancelled"} {
		got, err := ParseCounselingStatus(s)
		require.NoError(t, err)
		require.Equal(t, CounselingStatus(s), got)
	}
	_, err := ParseCounselingStatus("canceled")
	require.Error(t, err)
}
