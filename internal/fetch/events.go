package fetch

import "github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"

// Event is the closed set of messages a fetch cycle emits toward the
// application state. Every event carries the generation of the cycle that
// produced it so that stale events from a superseded cycle can be discarded.
//
// Delivery contract for one cycle: Started, then N item events in order,
// then Completed — or Started then Error at any point. No item event follows
// Completed/Error for the same cycle.
type Event interface {
	Generation() int
}

// Meta is embedded in every event kind and carries the cycle generation
type Meta struct {
	Gen int
}

// Generation returns the generation of the cycle that produced the event
func (m Meta) Generation() int { return m.Gen }

// FetchStarted signals that the basic listing phase has begun and the total
// repository count is known
type FetchStarted struct {
	Meta
	Total int
}

// RepositoryFetched carries one basic-info repository; append semantics
type RepositoryFetched struct {
	Meta
	Repository models.Repository
	Current    int
	Total      int
}

// FetchCompleted carries the full basic list; triggers the cache write and
// the phase transition to BasicLoaded
type FetchCompleted struct {
	Meta
	Repositories []models.Repository
}

// FetchError signals that the cycle failed fatally
type FetchError struct {
	Meta
	Message string
}

// EnhancementStarted signals that the per-repository detail phase has begun
type EnhancementStarted struct {
	Meta
	Total int
}

// RepositoryEnhanced carries one enriched repository; replace-by-name
// semantics. Emitted even when enrichment soft-failed, so that progress
// always reaches Total.
type RepositoryEnhanced struct {
	Meta
	Repository models.Repository
	Current    int
	Total      int
}

// EnhancementCompleted carries the final enriched list; overwrites the cache
// entry for the mode that started the cycle
type EnhancementCompleted struct {
	Meta
	Repositories []models.Repository
}

// OrganizationsFetchStarted signals the org side-channel fetch has begun
type OrganizationsFetchStarted struct {
	Meta
}

// OrganizationsFetched carries the organization names available for cycling
type OrganizationsFetched struct {
	Meta
	Organizations []string
}

// OrganizationsFetchError signals the org side-channel fetch failed
type OrganizationsFetchError struct {
	Meta
	Message string
}
