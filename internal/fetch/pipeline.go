package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
)

// Enrichment is the per-repository detail returned by the data provider's
// second-phase fetch
type Enrichment struct {
	PullRequests   []models.PullRequest
	LatestCommitAt *time.Time
	RecentRuns     []models.WorkflowRun
}

// Provider is the repository data capability the pipeline consumes.
// ListRepositories returns listing-level fields only, in the provider's own
// order (server-side sort by last updated, newest first).
type Provider interface {
	ListRepositories(ctx context.Context, mode models.ViewMode) ([]models.Repository, error)
	Enrich(ctx context.Context, repo models.Repository) (Enrichment, error)
	ListOrganizations(ctx context.Context) ([]string, error)
}

// itemDelay spaces out per-item emissions so progress paints smoothly
// instead of arriving as one burst
const itemDelay = 50 * time.Millisecond

// Pipeline runs fetch cycles against a data provider, emitting Events into a
// sink channel. It owns no persistent state: each Run borrows the provider
// and sink for the duration of one cycle and then returns.
type Pipeline struct {
	provider Provider
	logger   *log.Logger
	delay    time.Duration
}

// New creates a pipeline bound to a provider. The logger may not be nil;
// pass log.Default() if no file logger is configured.
func New(provider Provider, logger *log.Logger) *Pipeline {
	return &Pipeline{provider: provider, logger: logger, delay: itemDelay}
}

// Run executes one two-phase fetch cycle for the given mode, tagging every
// emitted event with gen. Phase one is a single cheap listing call streamed
// item by item so the user can see and navigate almost immediately; phase
// two enriches each repository with review, commit and workflow detail.
// Per-repository enrichment failures are soft: logged, basic values kept,
// progress still advances. Only a failed listing call aborts the cycle.
func (p *Pipeline) Run(ctx context.Context, mode models.ViewMode, generation int, sink chan<- Event) {
	repos, err := p.provider.ListRepositories(ctx, mode)
	if err != nil {
		p.logger.Error("repository listing failed", "mode", mode.Key(), "error", err)
		sink <- FetchError{Meta: Meta{Gen: generation}, Message: "Failed to fetch repositories: " + err.Error()}
		return
	}

	total := len(repos)
	p.logger.Info("fetch cycle started", "mode", mode.Key(), "gen", generation, "total", total)
	sink <- FetchStarted{Meta: Meta{Gen: generation}, Total: total}

	for i, repo := range repos {
		sink <- RepositoryFetched{Meta: Meta{Gen: generation}, Repository: repo, Current: i + 1, Total: total}
		p.pause(ctx)
	}
	sink <- FetchCompleted{Meta: Meta{Gen: generation}, Repositories: repos}

	sink <- EnhancementStarted{Meta: Meta{Gen: generation}, Total: total}

	enriched := make([]models.Repository, len(repos))
	copy(enriched, repos)
	for i := range enriched {
		enriched[i] = p.enrichOne(ctx, enriched[i])
		sink <- RepositoryEnhanced{Meta: Meta{Gen: generation}, Repository: enriched[i], Current: i + 1, Total: total}
		p.pause(ctx)
	}

	sink <- EnhancementCompleted{Meta: Meta{Gen: generation}, Repositories: enriched}
	p.logger.Info("fetch cycle completed", "mode", mode.Key(), "gen", generation, "repos", total)
}

// enrichOne asks the provider for detail and folds it into a replacement
// repository value, recomputing the derived statuses. On failure the basic
// value is returned unchanged.
func (p *Pipeline) enrichOne(ctx context.Context, repo models.Repository) models.Repository {
	detail, err := p.provider.Enrich(ctx, repo)
	if err != nil {
		p.logger.Warn("enrichment failed, keeping basic data", "repo", repo.FullName(), "error", err)
		return repo
	}

	repo.OpenPullRequests = detail.PullRequests
	repo.LatestCommitAt = detail.LatestCommitAt
	repo.RecentWorkflows = detail.RecentRuns
	if len(detail.RecentRuns) > 0 {
		latest := detail.RecentRuns[0]
		repo.LatestWorkflow = &latest
	}
	repo.Status = models.ActivityFromLastCommit(repo.LatestCommitAt, time.Now())
	repo.WorkflowHealth = models.HealthFromRuns(repo.RecentWorkflows)
	repo.LastUpdated = time.Now()
	return repo
}

// FetchOrganizations runs the organization side-channel fetch used to
// populate the cyclable mode list
func (p *Pipeline) FetchOrganizations(ctx context.Context, generation int, sink chan<- Event) {
	sink <- OrganizationsFetchStarted{Meta: Meta{Gen: generation}}

	orgs, err := p.provider.ListOrganizations(ctx)
	if err != nil {
		p.logger.Error("organization listing failed", "error", err)
		sink <- OrganizationsFetchError{Meta: Meta{Gen: generation}, Message: "Failed to fetch organizations: " + err.Error()}
		return
	}

	p.logger.Info("organizations fetched", "count", len(orgs))
	sink <- OrganizationsFetched{Meta: Meta{Gen: generation}, Organizations: orgs}
}

func (p *Pipeline) pause(ctx context.Context) {
	if p.delay <= 0 {
		return
	}
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
	}
}
