// Package github implements the repository data provider against the GitHub
// REST API. It exposes exactly the capability the fetch pipeline consumes:
// list repositories for a scope, enrich one repository, list organizations.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/fetch"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
)

const (
	baseURL   = "https://api.github.com"
	userAgent = "gh-repo-healthcheks/1.0"

	repoPerPage = 100 // max allowed by GitHub API
	pullPerPage = 50  // open PRs per repository
	runPerPage  = 10  // recent workflow runs considered for health
)

// Client is a GitHub API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *log.Logger
}

// NewClient creates a GitHub API client with a 30 second timeout
func NewClient(token string, logger *log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
		logger:     logger,
	}
}

// get performs an authenticated GET and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Info("GET", "endpoint", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", "endpoint", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("rate limit",
		"remaining", resp.Header.Get("X-RateLimit-Remaining"),
		"reset", resp.Header.Get("X-RateLimit-Reset"),
		"status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("API error", "endpoint", path, "status", resp.StatusCode, "response", string(body))
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CurrentUser returns the login of the authenticated user. Used as the
// credential check before the dashboard starts.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.get(ctx, "/user", &user); err != nil {
		return "", err
	}
	return user.Login, nil
}

// ListRepositories returns the basic repository listing for a view mode, in
// the server's order (sorted by last updated, newest first). Only
// listing-level fields are populated; review, commit and workflow detail
// comes from Enrich.
func (c *Client) ListRepositories(ctx context.Context, mode models.ViewMode) ([]models.Repository, error) {
	path := fmt.Sprintf("/user/repos?type=owner&sort=updated&direction=desc&per_page=%d", repoPerPage)
	if !mode.IsPersonal() {
		path = fmt.Sprintf("/orgs/%s/repos?sort=updated&direction=desc&per_page=%d", mode.Org, repoPerPage)
	}

	var payload []apiRepository
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	repos := make([]models.Repository, 0, len(payload))
	for _, r := range payload {
		repos = append(repos, r.toModel())
	}
	return repos, nil
}

// Enrich fetches per-repository detail: open pull requests, the latest
// commit timestamp and recent workflow runs. Each sub-fetch failure is
// logged and leaves its field empty; an error is returned only when every
// sub-fetch failed, so a flaky endpoint never takes the whole cycle down.
func (c *Client) Enrich(ctx context.Context, repo models.Repository) (fetch.Enrichment, error) {
	var enrichment fetch.Enrichment
	failures := 0

	pulls, err := c.fetchOpenPullRequests(ctx, repo.Owner, repo.Name)
	if err != nil {
		c.logger.Warn("failed to fetch pull requests", "repo", repo.FullName(), "error", err)
		failures++
	} else {
		enrichment.PullRequests = pulls
	}

	commitAt, err := c.fetchLatestCommit(ctx, repo.Owner, repo.Name)
	if err != nil {
		c.logger.Warn("failed to fetch latest commit", "repo", repo.FullName(), "error", err)
		failures++
	} else {
		enrichment.LatestCommitAt = commitAt
	}

	runs, err := c.fetchWorkflowRuns(ctx, repo.Owner, repo.Name)
	if err != nil {
		c.logger.Warn("failed to fetch workflow runs", "repo", repo.FullName(), "error", err)
		failures++
	} else {
		enrichment.RecentRuns = runs
	}

	if failures == 3 {
		return fetch.Enrichment{}, fmt.Errorf("all detail fetches failed for %s", repo.FullName())
	}
	return enrichment, nil
}

// ListOrganizations returns the organization logins of the authenticated user
func (c *Client) ListOrganizations(ctx context.Context) ([]string, error) {
	var payload []struct {
		Login string `json:"login"`
	}
	if err := c.get(ctx, "/user/orgs?per_page=100", &payload); err != nil {
		return nil, err
	}

	orgs := make([]string, 0, len(payload))
	for _, o := range payload {
		orgs = append(orgs, o.Login)
	}
	return orgs, nil
}

func (c *Client) fetchOpenPullRequests(ctx context.Context, owner, name string) ([]models.PullRequest, error) {
	var payload []apiPullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls?state=open&per_page=%d", owner, name, pullPerPage)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	pulls := make([]models.PullRequest, 0, len(payload))
	for _, p := range payload {
		pulls = append(pulls, p.toModel())
	}
	return pulls, nil
}

// fetchLatestCommit returns the newest commit timestamp, or nil for an
// empty repository
func (c *Client) fetchLatestCommit(ctx context.Context, owner, name string) (*time.Time, error) {
	var payload []struct {
		Commit struct {
			Author struct {
				Date time.Time `json:"date"`
			} `json:"author"`
		} `json:"commit"`
	}
	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=1", owner, name)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 || payload[0].Commit.Author.Date.IsZero() {
		return nil, nil
	}
	date := payload[0].Commit.Author.Date
	return &date, nil
}

func (c *Client) fetchWorkflowRuns(ctx context.Context, owner, name string) ([]models.WorkflowRun, error) {
	var payload struct {
		WorkflowRuns []apiWorkflowRun `json:"workflow_runs"`
	}
	path := fmt.Sprintf("/repos/%s/%s/actions/runs?per_page=%d", owner, name, runPerPage)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	runs := make([]models.WorkflowRun, 0, len(payload.WorkflowRuns))
	for _, r := range payload.WorkflowRuns {
		runs = append(runs, r.toModel())
	}
	return runs, nil
}
