package expanse

import "sync"

// CachePolicy controls whether a [Store] retains resolved remote contexts.
type CachePolicy uint8

const (
	// CacheNone resolves every remote reference anew. The default.
	CacheNone CachePolicy = iota
	// CacheAll retains resolved contexts for the lifetime of the store.
	// There is no eviction and no TTL: contexts are assumed stable for the
	// life of the application.
	CacheAll
)

// Store resolves remote context URLs through a fetch capability and,
// depending on its policy, caches the results.
//
// Create one with [NewStore] and share it across expansion calls that should
// reuse resolved contexts. A store is safe for concurrent use.
type Store struct {
	fetcher Fetcher
	policy  CachePolicy

	mu       sync.Mutex
	contexts map[string]*Context
}

// StoreOption can be used to customise the behaviour of a [Store].
type StoreOption func(*Store)

// NewStore creates a context store.
//
// By default it fetches with [NewHTTPFetcher] over http.DefaultClient and
// does not cache. Change either with [WithFetcher] and [WithCachePolicy].
func NewStore(options ...StoreOption) *Store {
	s := &Store{
		fetcher:  NewHTTPFetcher(nil),
		policy:   CacheNone,
		contexts: make(map[string]*Context, 4),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithFetcher sets the fetch capability used for remote contexts.
func WithFetcher(f Fetcher) StoreOption {
	return func(s *Store) {
		s.fetcher = f
	}
}

// WithCachePolicy sets whether resolved remote contexts are retained.
func WithCachePolicy(p CachePolicy) StoreOption {
	return func(s *Store) {
		s.policy = p
	}
}

// Preload seeds the cache with an already-resolved context for iri.
//
// This amortises the cost of processing a well-known remote context across
// documents, regardless of the store's cache policy.
func (s *Store) Preload(iri string, c *Context) {
	if iri == "" || c == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[iri] = c
}

// cached returns the resolved context stored for iri.
func (s *Store) cached(iri string) (*Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contexts[iri]
	return c, ok
}

// add records a resolved context under iri. It is a no-op for anonymous
// contexts, under [CacheNone], or for keys already present.
func (s *Store) add(iri string, c *Context) {
	if iri == "" || c == nil || s.policy != CacheAll {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[iri]; !ok {
		s.contexts[iri] = c
	}
}
