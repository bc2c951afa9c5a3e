package models

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ActivityStatus classifies a repository by how recently it was committed to.
type ActivityStatus int

const (
	ActivityUnknown ActivityStatus = iota
	ActivityHot                    // committed today
	ActivityActive                 // within the last week
	ActivityModerate               // within the last month
	ActivityQuiet                  // within the last 3 months
	ActivityStale                  // within the last 6 months
	ActivityDormant                // no commits in over 6 months
)

// ActivityFromLastCommit derives the activity status from the latest commit
// timestamp, bucketed by whole days elapsed. A nil timestamp means the
// status is unknown (not yet enriched, or the repository has no commits).
func ActivityFromLastCommit(lastCommit *time.Time, now time.Time) ActivityStatus {
	if lastCommit == nil || now.Before(*lastCommit) {
		return ActivityUnknown
	}
	days := int(now.Sub(*lastCommit).Hours() / 24)
	switch {
	case days == 0:
		return ActivityHot
	case days <= 7:
		return ActivityActive
	case days <= 30:
		return ActivityModerate
	case days <= 90:
		return ActivityQuiet
	case days <= 180:
		return ActivityStale
	default:
		return ActivityDormant
	}
}

// Description returns a human-readable description of the status
func (s ActivityStatus) Description() string {
	switch s {
	case ActivityHot:
		return "Very active (today)"
	case ActivityActive:
		return "Active (this week)"
	case ActivityModerate:
		return "Moderate activity (this month)"
	case ActivityQuiet:
		return "Quiet (last 3 months)"
	case ActivityStale:
		return "Stale (last 6 months)"
	case ActivityDormant:
		return "Dormant (6+ months)"
	default:
		return "Status unknown"
	}
}

// Emoji returns a single-glyph representation for table rendering
func (s ActivityStatus) Emoji() string {
	switch s {
	case ActivityHot:
		return "🔥"
	case ActivityActive:
		return "⚡"
	case ActivityModerate:
		return "✅"
	case ActivityQuiet:
		return "⚠️"
	case ActivityStale:
		return "🟡"
	case ActivityDormant:
		return "💤"
	default:
		return "❓"
	}
}

// Color returns the lipgloss color used when rendering this status
func (s ActivityStatus) Color() lipgloss.Color {
	switch s {
	case ActivityHot:
		return lipgloss.Color("196") // red
	case ActivityActive:
		return lipgloss.Color("46") // green
	case ActivityModerate:
		return lipgloss.Color("86") // cyan
	case ActivityQuiet:
		return lipgloss.Color("226") // yellow
	case ActivityStale:
		return lipgloss.Color("213") // magenta
	case ActivityDormant:
		return lipgloss.Color("241") // dark gray
	default:
		return lipgloss.Color("245")
	}
}

// WorkflowStatus is the outcome of a single CI workflow run
type WorkflowStatus int

const (
	WorkflowUnknown WorkflowStatus = iota
	WorkflowSuccess
	WorkflowFailed
	WorkflowInProgress
	WorkflowCancelled
)

// Description returns a human-readable description
func (s WorkflowStatus) Description() string {
	switch s {
	case WorkflowSuccess:
		return "Passed"
	case WorkflowFailed:
		return "Failed"
	case WorkflowInProgress:
		return "Running"
	case WorkflowCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// WorkflowRun represents one GitHub Actions workflow run
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     WorkflowStatus
	Conclusion string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	HTMLURL    string
}

// WorkflowHealth summarizes the success ratio of a repository's recent runs
type WorkflowHealth int

const (
	HealthExcellent WorkflowHealth = iota
	HealthGood
	HealthFair
	HealthPoor
	HealthCritical
)

// HealthFromRuns computes the overall workflow health from recent runs.
// No runs at all counts as Excellent: absence of CI is not a failure signal.
func HealthFromRuns(runs []WorkflowRun) WorkflowHealth {
	if len(runs) == 0 {
		return HealthExcellent
	}
	successful := 0
	for _, r := range runs {
		if r.Status == WorkflowSuccess {
			successful++
		}
	}
	ratio := float64(successful) / float64(len(runs))
	switch {
	case ratio >= 1.0:
		return HealthExcellent
	case ratio >= 0.8:
		return HealthGood
	case ratio >= 0.5:
		return HealthFair
	case ratio > 0:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// Description returns a human-readable description
func (h WorkflowHealth) Description() string {
	switch h {
	case HealthExcellent:
		return "All workflows passing"
	case HealthGood:
		return "Most workflows passing"
	case HealthFair:
		return "Some workflows failing"
	case HealthPoor:
		return "Many workflows failing"
	default:
		return "All workflows failing"
	}
}

// Emoji returns a single-glyph representation
func (h WorkflowHealth) Emoji() string {
	switch h {
	case HealthExcellent:
		return "✅"
	case HealthGood:
		return "🟢"
	case HealthFair:
		return "🟡"
	case HealthPoor:
		return "🟠"
	default:
		return "🔴"
	}
}

// Color returns the lipgloss color used when rendering this health value
func (h WorkflowHealth) Color() lipgloss.Color {
	switch h {
	case HealthExcellent:
		return lipgloss.Color("46")
	case HealthGood:
		return lipgloss.Color("86")
	case HealthFair:
		return lipgloss.Color("226")
	case HealthPoor:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("196")
	}
}

// PullRequestState is the lifecycle state of a pull request
type PullRequestState int

const (
	PullRequestOpen PullRequestState = iota
	PullRequestClosed
	PullRequestMerged
)

// Emoji returns a single-glyph representation
func (s PullRequestState) Emoji() string {
	switch s {
	case PullRequestOpen:
		return "🟢"
	case PullRequestClosed:
		return "🔴"
	default:
		return "🟣"
	}
}

// PullRequest represents an open review request on a repository.
// Values are immutable once attached to a Repository snapshot; a
// re-enrichment replaces the whole slice.
type PullRequest struct {
	Number           int
	Title            string
	State            PullRequestState
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Author           string
	HTMLURL          string
	Draft            bool
	Approvals        int
	ChangesRequested int
}

// Repository holds everything the dashboard knows about one repository.
// Identified by owner+name; names are unique within one in-memory list.
// Mutated only by whole-value replacement when enrichment data arrives.
type Repository struct {
	Name             string
	Owner            string
	Status           ActivityStatus
	WorkflowHealth   WorkflowHealth
	LatestWorkflow   *WorkflowRun
	RecentWorkflows  []WorkflowRun
	OpenPullRequests []PullRequest
	LastUpdated      time.Time
	HTMLURL          string
	Description      string
	Language         string
	Stars            int
	LatestCommitAt   *time.Time
}

// FullName returns the canonical "owner/name" form
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// NeedsAttention reports whether the repository is stale/dormant or has
// open review requests waiting
func (r Repository) NeedsAttention() bool {
	return r.Status == ActivityStale || r.Status == ActivityDormant || len(r.OpenPullRequests) > 0
}
