package app

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/fetch"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/store"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	cache, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return NewState(cache, log.New(io.Discard))
}

func meta(gen int) fetch.Meta {
	return fetch.Meta{Gen: gen}
}

func repo(name string) models.Repository {
	return models.Repository{Name: name, Owner: "acme"}
}

// TestFullCycleScenario walks one complete fetch/enhance cycle and checks
// the final list, phase and cache entry
func TestFullCycleScenario(t *testing.T) {
	s := newTestState(t)
	gen := s.BeginCycle(models.Personal)

	a, b := repo("a"), repo("b")
	aEnhanced := a
	aEnhanced.OpenPullRequests = []models.PullRequest{{Number: 1, Title: "first"}}

	events := []fetch.Event{
		fetch.FetchStarted{Meta: meta(gen), Total: 2},
		fetch.RepositoryFetched{Meta: meta(gen), Repository: a, Current: 1, Total: 2},
		fetch.RepositoryFetched{Meta: meta(gen), Repository: b, Current: 2, Total: 2},
		fetch.FetchCompleted{Meta: meta(gen), Repositories: []models.Repository{a, b}},
		fetch.EnhancementStarted{Meta: meta(gen), Total: 2},
		fetch.RepositoryEnhanced{Meta: meta(gen), Repository: aEnhanced, Current: 1, Total: 2},
		fetch.EnhancementCompleted{Meta: meta(gen), Repositories: []models.Repository{aEnhanced, b}},
	}
	for _, ev := range events {
		s.Apply(ev)
	}

	if s.Phase.Kind != PhaseComplete {
		t.Errorf("phase = %v, want Complete", s.Phase.Kind)
	}
	if len(s.Repositories) != 2 {
		t.Fatalf("list has %d repos, want 2", len(s.Repositories))
	}
	if len(s.Repositories[0].OpenPullRequests) != 1 {
		t.Errorf("repo a was not replaced by its enriched value")
	}
	if s.Repositories[1].Name != "b" {
		t.Errorf("repo order changed: %v", s.Repositories)
	}
	if s.LastRefresh.IsZero() {
		t.Error("LastRefresh not stamped")
	}

	cached, ok, err := s.cache.Get(models.Personal)
	if err != nil || !ok {
		t.Fatalf("cache entry missing after completion: ok=%v err=%v", ok, err)
	}
	if len(cached) != 2 || len(cached[0].OpenPullRequests) != 1 {
		t.Errorf("cache holds %v, want the enriched list", cached)
	}
}

func TestListLengthNeverExceedsTotal(t *testing.T) {
	s := newTestState(t)
	gen := s.BeginCycle(models.Personal)

	s.Apply(fetch.FetchStarted{Meta: meta(gen), Total: 2})
	s.Apply(fetch.RepositoryFetched{Meta: meta(gen), Repository: repo("a"), Current: 1, Total: 2})
	s.Apply(fetch.RepositoryFetched{Meta: meta(gen), Repository: repo("b"), Current: 2, Total: 2})

	if len(s.Repositories) > s.Phase.Total {
		t.Errorf("list length %d exceeds total %d", len(s.Repositories), s.Phase.Total)
	}
}

func TestEnhancedReplacesByName(t *testing.T) {
	s := newTestState(t)
	gen := s.BeginCycle(models.Personal)
	s.Apply(fetch.FetchStarted{Meta: meta(gen), Total: 2})
	s.Apply(fetch.RepositoryFetched{Meta: meta(gen), Repository: repo("a"), Current: 1, Total: 2})
	s.Apply(fetch.RepositoryFetched{Meta: meta(gen), Repository: repo("b"), Current: 2, Total: 2})

	enriched := repo("a")
	enriched.Stars = 99
	s.Apply(fetch.RepositoryEnhanced{Meta: meta(gen), Repository: enriched, Current: 1, Total: 2})

	if len(s.Repositories) != 2 {
		t.Errorf("replace changed list length to %d", len(s.Repositories))
	}
	if s.Repositories[0].Stars != 99 {
		t.Errorf("entry a not replaced: %+v", s.Repositories[0])
	}

	// An absent name leaves the list unchanged
	before := len(s.Repositories)
	s.Apply(fetch.RepositoryEnhanced{Meta: meta(gen), Repository: repo("ghost"), Current: 2, Total: 2})
	if len(s.Repositories) != before {
		t.Errorf("enhancement for absent name changed the list")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	s := newTestState(t)
	old := s.BeginCycle(models.Personal)
	s.Apply(fetch.FetchStarted{Meta: meta(old), Total: 1})
	s.Apply(fetch.RepositoryFetched{Meta: meta(old), Repository: repo("old"), Current: 1, Total: 1})

	// A refresh supersedes the running cycle
	current := s.Refresh()
	if current == old {
		t.Fatal("Refresh did not bump the generation")
	}
	if len(s.Repositories) != 0 {
		t.Fatal("Refresh did not clear the list")
	}

	// Late events from the old cycle must not corrupt the new one
	s.Apply(fetch.RepositoryFetched{Meta: meta(old), Repository: repo("stray"), Current: 1, Total: 1})
	s.Apply(fetch.FetchCompleted{Meta: meta(old), Repositories: []models.Repository{repo("stray")}})

	if len(s.Repositories) != 0 {
		t.Errorf("stale events mutated the list: %v", s.Repositories)
	}
	if s.Phase.Kind != PhaseFetchingBasic {
		t.Errorf("stale completion changed phase to %v", s.Phase.Kind)
	}
	if _, ok, _ := s.cache.Get(models.Personal); ok {
		t.Error("stale completion wrote the cache")
	}
}

func TestFetchErrorFailsPhase(t *testing.T) {
	s := newTestState(t)
	gen := s.BeginCycle(models.Personal)
	s.Apply(fetch.FetchError{Meta: meta(gen), Message: "GitHub API error"})

	if s.Phase.Kind != PhaseFailed {
		t.Errorf("phase = %v, want Failed", s.Phase.Kind)
	}
	if s.ErrorMessage() != "GitHub API error" {
		t.Errorf("ErrorMessage() = %q", s.ErrorMessage())
	}
	if s.Phase.Done != 0 || s.Phase.Total != 0 {
		t.Errorf("progress not cleared on failure: %+v", s.Phase)
	}
}

func TestSwitchModeCacheHit(t *testing.T) {
	s := newTestState(t)
	if err := s.cache.Put(models.OrgMode("acme"), []models.Repository{repo("cached")}); err != nil {
		t.Fatal(err)
	}

	genBefore := s.Generation()
	_, fetchNeeded := s.SwitchMode(models.OrgMode("acme"))

	if fetchNeeded {
		t.Error("cache hit still requested a fetch")
	}
	if s.Phase.Kind != PhaseComplete {
		t.Errorf("phase = %v, want Complete synchronously", s.Phase.Kind)
	}
	if len(s.Repositories) != 1 || s.Repositories[0].Name != "cached" {
		t.Errorf("cached list not installed: %v", s.Repositories)
	}
	if s.Generation() == genBefore {
		t.Error("generation not bumped on cached switch; a stale cycle could still write")
	}
}

func TestSwitchModeCacheMiss(t *testing.T) {
	s := newTestState(t)
	gen, fetchNeeded := s.SwitchMode(models.OrgMode("acme"))

	if !fetchNeeded {
		t.Error("cache miss did not request a fetch")
	}
	if gen != s.Generation() {
		t.Errorf("returned generation %d differs from active %d", gen, s.Generation())
	}
	if s.Phase.Kind != PhaseFetchingBasic {
		t.Errorf("phase = %v, want FetchingBasic", s.Phase.Kind)
	}
	if s.Mode != models.OrgMode("acme") {
		t.Errorf("mode = %v", s.Mode)
	}
}

func TestRefreshEvictsUntilNextCompletion(t *testing.T) {
	s := newTestState(t)
	if err := s.cache.Put(models.Personal, []models.Repository{repo("stale")}); err != nil {
		t.Fatal(err)
	}

	gen := s.Refresh()
	if _, ok, _ := s.cache.Get(models.Personal); ok {
		t.Fatal("cache entry survived Refresh")
	}

	s.Apply(fetch.FetchStarted{Meta: meta(gen), Total: 1})
	s.Apply(fetch.RepositoryFetched{Meta: meta(gen), Repository: repo("fresh"), Current: 1, Total: 1})
	if _, ok, _ := s.cache.Get(models.Personal); ok {
		t.Fatal("cache written before completion")
	}

	s.Apply(fetch.FetchCompleted{Meta: meta(gen), Repositories: []models.Repository{repo("fresh")}})
	cached, ok, _ := s.cache.Get(models.Personal)
	if !ok || cached[0].Name != "fresh" {
		t.Errorf("cache after completion = %v, %v", cached, ok)
	}
}

func TestNextModeCycling(t *testing.T) {
	s := newTestState(t)

	if _, ok := s.NextMode(); ok {
		t.Error("cycling possible with no organizations")
	}

	s.Apply(fetch.OrganizationsFetched{Organizations: []string{"acme", "umbrella"}})

	next, ok := s.NextMode()
	if !ok || next != models.OrgMode("acme") {
		t.Errorf("from personal: %v, %v", next, ok)
	}

	s.Mode = models.OrgMode("acme")
	next, _ = s.NextMode()
	if next != models.OrgMode("umbrella") {
		t.Errorf("from first org: %v", next)
	}

	s.Mode = models.OrgMode("umbrella")
	next, _ = s.NextMode()
	if next != models.Personal {
		t.Errorf("from last org: %v", next)
	}

	// An org no longer in the list falls back to personal
	s.Mode = models.OrgMode("gone")
	next, _ = s.NextMode()
	if next != models.Personal {
		t.Errorf("from vanished org: %v", next)
	}
}

func TestOrganizationEventsIgnoreGeneration(t *testing.T) {
	s := newTestState(t)
	s.BeginCycle(models.Personal)

	// Org events tagged with an older generation still apply
	s.Apply(fetch.OrganizationsFetchStarted{Meta: meta(0)})
	if !s.OrgsFetching {
		t.Error("OrganizationsFetchStarted not applied")
	}
	s.Apply(fetch.OrganizationsFetched{Meta: meta(0), Organizations: []string{"acme"}})
	if s.OrgsFetching || len(s.Organizations) != 1 {
		t.Errorf("OrganizationsFetched not applied: fetching=%v orgs=%v", s.OrgsFetching, s.Organizations)
	}
}
