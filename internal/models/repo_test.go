package models

import (
	"testing"
	"time"
)

// TestActivityFromLastCommit checks the day-bucket boundaries
func TestActivityFromLastCommit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo int
		want    ActivityStatus
	}{
		{"today", 0, ActivityHot},
		{"one day", 1, ActivityActive},
		{"week boundary", 7, ActivityActive},
		{"past week", 8, ActivityModerate},
		{"month boundary", 30, ActivityModerate},
		{"past month", 31, ActivityQuiet},
		{"quarter boundary", 90, ActivityQuiet},
		{"past quarter", 91, ActivityStale},
		{"half year boundary", 180, ActivityStale},
		{"past half year", 181, ActivityDormant},
		{"ancient", 400, ActivityDormant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commit := now.AddDate(0, 0, -tt.daysAgo)
			got := ActivityFromLastCommit(&commit, now)
			if got != tt.want {
				t.Errorf("ActivityFromLastCommit(%d days ago) = %v, want %v", tt.daysAgo, got, tt.want)
			}
		})
	}
}

func TestActivityFromLastCommitUnknown(t *testing.T) {
	now := time.Now()
	if got := ActivityFromLastCommit(nil, now); got != ActivityUnknown {
		t.Errorf("nil commit time = %v, want ActivityUnknown", got)
	}

	// A commit timestamp in the future should not panic or misclassify
	future := now.Add(time.Hour)
	if got := ActivityFromLastCommit(&future, now); got != ActivityUnknown {
		t.Errorf("future commit time = %v, want ActivityUnknown", got)
	}
}

// TestHealthFromRuns checks the success-ratio cutoffs
func TestHealthFromRuns(t *testing.T) {
	run := func(status WorkflowStatus) WorkflowRun {
		return WorkflowRun{Status: status}
	}

	tests := []struct {
		name string
		runs []WorkflowRun
		want WorkflowHealth
	}{
		{"no runs", nil, HealthExcellent},
		{"one success", []WorkflowRun{run(WorkflowSuccess)}, HealthExcellent},
		{"one failure", []WorkflowRun{run(WorkflowFailed)}, HealthCritical},
		{"half passing", []WorkflowRun{run(WorkflowSuccess), run(WorkflowFailed)}, HealthFair},
		// 3/4 = 0.75 lands below the 0.8 Good cutoff
		{"three of four", []WorkflowRun{run(WorkflowSuccess), run(WorkflowSuccess), run(WorkflowSuccess), run(WorkflowFailed)}, HealthFair},
		{"four of five", []WorkflowRun{run(WorkflowSuccess), run(WorkflowSuccess), run(WorkflowSuccess), run(WorkflowSuccess), run(WorkflowFailed)}, HealthGood},
		{"one of four", []WorkflowRun{run(WorkflowSuccess), run(WorkflowFailed), run(WorkflowFailed), run(WorkflowFailed)}, HealthPoor},
		{"cancelled runs count against", []WorkflowRun{run(WorkflowCancelled), run(WorkflowCancelled)}, HealthCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthFromRuns(tt.runs); got != tt.want {
				t.Errorf("HealthFromRuns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewModeKey(t *testing.T) {
	if Personal.Key() != "personal" {
		t.Errorf("Personal.Key() = %q", Personal.Key())
	}
	if OrgMode("acme").Key() != "org:acme" {
		t.Errorf("OrgMode(acme).Key() = %q", OrgMode("acme").Key())
	}
	if OrgMode("acme").String() != "acme" {
		t.Errorf("OrgMode(acme).String() = %q", OrgMode("acme").String())
	}
	if Personal.String() != "Personal" {
		t.Errorf("Personal.String() = %q", Personal.String())
	}
}

func TestRepositoryFullName(t *testing.T) {
	repo := Repository{Name: "dashboard", Owner: "acme"}
	if repo.FullName() != "acme/dashboard" {
		t.Errorf("FullName() = %q", repo.FullName())
	}
}

func TestNeedsAttention(t *testing.T) {
	if (Repository{Status: ActivityActive}).NeedsAttention() {
		t.Error("active repo without PRs should not need attention")
	}
	if !(Repository{Status: ActivityDormant}).NeedsAttention() {
		t.Error("dormant repo should need attention")
	}
	withPR := Repository{Status: ActivityHot, OpenPullRequests: []PullRequest{{Number: 1}}}
	if !withPR.NeedsAttention() {
		t.Error("repo with open PRs should need attention")
	}
}
