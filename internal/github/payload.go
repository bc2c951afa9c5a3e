package github

import (
	"time"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
)

// apiRepository mirrors the fields we read from the repository listing payload
type apiRepository struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
}

func (r apiRepository) toModel() models.Repository {
	return models.Repository{
		Name:        r.Name,
		Owner:       r.Owner.Login,
		HTMLURL:     r.HTMLURL,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.StargazersCount,
		LastUpdated: time.Now(),
	}
}

// apiPullRequest mirrors the fields we read from the pulls listing payload
type apiPullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   *struct {
		Login string `json:"login"`
	} `json:"user"`
	HTMLURL   string     `json:"html_url"`
	Draft     bool       `json:"draft"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at"`
}

func (p apiPullRequest) toModel() models.PullRequest {
	state := models.PullRequestOpen
	if p.State == "closed" {
		if p.MergedAt != nil {
			state = models.PullRequestMerged
		} else {
			state = models.PullRequestClosed
		}
	}

	author := "unknown"
	if p.User != nil {
		author = p.User.Login
	}

	// The list endpoint carries no review detail, so approval counts stay
	// zero; they are kept on the model for rendering.
	return models.PullRequest{
		Number:    p.Number,
		Title:     p.Title,
		State:     state,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    author,
		HTMLURL:   p.HTMLURL,
		Draft:     p.Draft,
	}
}

// apiWorkflowRun mirrors the fields we read from the actions runs payload
type apiWorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	HTMLURL    string    `json:"html_url"`
}

func (r apiWorkflowRun) toModel() models.WorkflowRun {
	return models.WorkflowRun{
		ID:         r.ID,
		Name:       r.Name,
		Status:     runStatus(r.Status, r.Conclusion),
		Conclusion: r.Conclusion,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		HTMLURL:    r.HTMLURL,
	}
}

// runStatus maps the API's status/conclusion pair onto one workflow status
func runStatus(status, conclusion string) models.WorkflowStatus {
	switch status {
	case "queued", "in_progress", "waiting", "pending":
		return models.WorkflowInProgress
	case "completed":
		switch conclusion {
		case "success":
			return models.WorkflowSuccess
		case "failure", "timed_out", "startup_failure":
			return models.WorkflowFailed
		case "cancelled":
			return models.WorkflowCancelled
		default:
			return models.WorkflowUnknown
		}
	default:
		return models.WorkflowUnknown
	}
}
