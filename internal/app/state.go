// Package app owns the dashboard's view state: the current repository list,
// load phase, selection cursor, view mode and the per-mode cache. State is
// mutated only from the render/input loop, which drains pipeline events once
// per tick and applies them here.
package app

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/fetch"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/store"
)

// PhaseKind names the stages of one fetch cycle
type PhaseKind int

const (
	PhaseIdle PhaseKind = iota
	PhaseFetchingBasic
	PhaseBasicLoaded
	PhaseEnhancing
	PhaseComplete
	PhaseFailed
)

// LoadPhase is the single load-state value for the current view mode. Done
// and Total are meaningful while fetching or enhancing; Err only when
// failed.
type LoadPhase struct {
	Kind  PhaseKind
	Done  int
	Total int
	Err   string
}

// Loading reports whether a cycle is in its first (blocking-paint) phase
func (p LoadPhase) Loading() bool {
	return p.Kind == PhaseFetchingBasic
}

// Enhancing reports whether the per-repository detail phase is running
func (p LoadPhase) Enhancing() bool {
	return p.Kind == PhaseEnhancing
}

// State is the single owner of all dashboard view state. The cache and
// logger are injected at construction and never nil.
type State struct {
	Mode          models.ViewMode
	Repositories  []models.Repository
	Phase         LoadPhase
	Organizations []string
	OrgsFetching  bool
	Notice        string
	LastRefresh   time.Time
	Cursor        Cursor

	generation int
	cache      *store.Cache
	logger     *log.Logger
}

// NewState creates the application state in personal mode, idle
func NewState(cache *store.Cache, logger *log.Logger) *State {
	return &State{
		Mode:   models.Personal,
		Phase:  LoadPhase{Kind: PhaseIdle},
		cache:  cache,
		logger: logger,
	}
}

// Generation returns the currently active fetch-cycle generation
func (s *State) Generation() int {
	return s.generation
}

// BeginCycle starts a new fetch cycle for the given mode: the generation is
// bumped so events from any superseded cycle are discarded, and the visible
// state resets immediately so the user sees a freshly cleared list. Returns
// the generation the pipeline must tag its events with.
func (s *State) BeginCycle(mode models.ViewMode) int {
	s.generation++
	s.Mode = mode
	s.Repositories = nil
	s.Phase = LoadPhase{Kind: PhaseFetchingBasic}
	s.Cursor = Cursor{}
	s.Notice = ""
	return s.generation
}

// SwitchMode makes the given mode current. A cached mode is installed
// synchronously with no pipeline run; otherwise a new cycle is begun and
// fetchNeeded is true (gen is the generation for the pipeline).
func (s *State) SwitchMode(mode models.ViewMode) (gen int, fetchNeeded bool) {
	repos, ok, err := s.cache.Get(mode)
	if err != nil {
		s.logger.Warn("cache read failed, refetching", "mode", mode.Key(), "error", err)
	}
	if ok {
		// Bump the generation anyway so a still-running cycle for the
		// previous mode cannot write into the cached list.
		s.generation++
		s.Mode = mode
		s.Repositories = repos
		s.Phase = LoadPhase{Kind: PhaseComplete, Done: len(repos), Total: len(repos)}
		s.Cursor = Cursor{}
		s.Notice = ""
		return s.generation, false
	}
	return s.BeginCycle(mode), true
}

// Refresh unconditionally evicts the cache entry for the current mode and
// begins a new cycle. This is the only way to force a re-fetch of a cached
// mode.
func (s *State) Refresh() int {
	if err := s.cache.Evict(s.Mode); err != nil {
		s.logger.Warn("cache evict failed", "mode", s.Mode.Key(), "error", err)
	}
	return s.BeginCycle(s.Mode)
}

// NextMode returns the mode after the current one in the cycling order
// Personal, Org1, Org2, ..., Personal. ok is false when the organization
// list is empty and cycling is not possible yet.
func (s *State) NextMode() (models.ViewMode, bool) {
	if len(s.Organizations) == 0 {
		return s.Mode, false
	}
	if s.Mode.IsPersonal() {
		return models.OrgMode(s.Organizations[0]), true
	}
	for i, org := range s.Organizations {
		if org == s.Mode.Org {
			if i+1 < len(s.Organizations) {
				return models.OrgMode(s.Organizations[i+1]), true
			}
			return models.Personal, true
		}
	}
	// Current org vanished from the list; restart from personal
	return models.Personal, true
}

// Apply folds one pipeline event into the state. Events from a superseded
// generation are dropped; organization side-channel events are generation
// independent because the org list stays valid across refreshes.
func (s *State) Apply(ev fetch.Event) {
	switch ev := ev.(type) {
	case fetch.OrganizationsFetchStarted:
		s.OrgsFetching = true
		return
	case fetch.OrganizationsFetched:
		s.Organizations = ev.Organizations
		s.OrgsFetching = false
		s.Notice = ""
		return
	case fetch.OrganizationsFetchError:
		s.OrgsFetching = false
		s.Notice = ev.Message
		return
	}

	if ev.Generation() != s.generation {
		s.logger.Debug("dropping stale event", "gen", ev.Generation(), "active", s.generation)
		return
	}

	switch ev := ev.(type) {
	case fetch.FetchStarted:
		s.Repositories = nil
		s.Phase = LoadPhase{Kind: PhaseFetchingBasic, Total: ev.Total}
		s.Cursor = Cursor{}

	case fetch.RepositoryFetched:
		s.Repositories = append(s.Repositories, ev.Repository)
		s.Phase.Done = ev.Current
		s.Phase.Total = ev.Total

	case fetch.FetchCompleted:
		s.Phase = LoadPhase{Kind: PhaseBasicLoaded, Done: len(ev.Repositories), Total: len(ev.Repositories)}
		s.LastRefresh = time.Now()
		if err := s.cache.Put(s.Mode, ev.Repositories); err != nil {
			s.logger.Warn("cache write failed", "mode", s.Mode.Key(), "error", err)
		}

	case fetch.FetchError:
		s.Phase = LoadPhase{Kind: PhaseFailed, Err: ev.Message}

	case fetch.EnhancementStarted:
		s.Phase = LoadPhase{Kind: PhaseEnhancing, Total: ev.Total}

	case fetch.RepositoryEnhanced:
		s.replaceByName(ev.Repository)
		s.Phase.Done = ev.Current
		s.Phase.Total = ev.Total

	case fetch.EnhancementCompleted:
		s.Phase = LoadPhase{Kind: PhaseComplete, Done: len(ev.Repositories), Total: len(ev.Repositories)}
		s.LastRefresh = time.Now()
		if err := s.cache.Put(s.Mode, ev.Repositories); err != nil {
			s.logger.Warn("cache write failed", "mode", s.Mode.Key(), "error", err)
		}
	}
}

// replaceByName swaps in an enriched repository value for the list entry
// with the same name. An absent name is ignored: the event belongs to a list
// state that no longer exists, which is harmless.
func (s *State) replaceByName(repo models.Repository) {
	for i := range s.Repositories {
		if s.Repositories[i].Name == repo.Name {
			s.Repositories[i] = repo
			return
		}
	}
	s.logger.Debug("enhancement for unknown repository ignored", "repo", repo.FullName())
}

// ErrorMessage returns the standing error to display, if any
func (s *State) ErrorMessage() string {
	if s.Phase.Kind == PhaseFailed {
		return s.Phase.Err
	}
	return ""
}
