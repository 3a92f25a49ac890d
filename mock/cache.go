package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of munidocs.CacheStore.
type CacheStore struct {
	LookupFn      func(ctx context.Context, entity string) (*munidocs.CacheRecord, error)
	MergeFn       func(ctx context.Context, entity string, slots map[string]string, originLink, method string) (*munidocs.CacheRecord, error)
	EntityNamesFn func(ctx context.Context) ([]string, error)
	StatsFn       func(ctx context.Context) (*munidocs.CacheStats, error)
}

func (s *CacheStore) Lookup(ctx context.Context, entity string) (*munidocs.CacheRecord, error) {
	return s.LookupFn(ctx, entity)
}

func (s *CacheStore) Merge(ctx context.Context, entity string, slots map[string]string, originLink, method string) (*munidocs.CacheRecord, error) {
	return s.MergeFn(ctx, entity, slots, originLink, method)
}

func (s *CacheStore) EntityNames(ctx context.Context) ([]string, error) {
	return s.EntityNamesFn(ctx)
}

func (s *CacheStore) Stats(ctx context.Context) (*munidocs.CacheStats, error) {
	return s.StatsFn(ctx)
}
