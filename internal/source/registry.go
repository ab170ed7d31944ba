package source

import (
	"fmt"

	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

// Registry keeps a mapping from source kinds to their fetchers.
type Registry struct {
	fetchers map[domain.SourceKind]ports.SourceFetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[domain.SourceKind]ports.SourceFetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(fetcher ports.SourceFetcher) {
	if r.fetchers == nil {
		r.fetchers = map[domain.SourceKind]ports.SourceFetcher{}
	}
	r.fetchers[fetcher.Kind()] = fetcher
}

// Resolve returns a fetcher by kind or an error if it is absent.
func (r *Registry) Resolve(kind domain.SourceKind) (ports.SourceFetcher, error) {
	if r != nil {
		if fetcher, ok := r.fetchers[kind]; ok {
			return fetcher, nil
		}
	}
	return nil, fmt.Errorf("fetcher %s is not registered", kind)
}

// Registered lists the kinds that have a fetcher, in SourceKinds order.
func (r *Registry) Registered() []domain.SourceKind {
	var kinds []domain.SourceKind
	for _, kind := range domain.SourceKinds() {
		if _, ok := r.fetchers[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
