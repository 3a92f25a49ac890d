package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/openfiscal/munidocs"
)

// Ensure LoggingCacheStore implements munidocs.CacheStore.
var _ munidocs.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with logging on lookups and merges.
type LoggingCacheStore struct {
	next   munidocs.CacheStore
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next munidocs.CacheStore, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, logger: logger}
}

// Lookup delegates to the wrapped store and logs hit or miss.
func (s *LoggingCacheStore) Lookup(ctx context.Context, entity string) (*munidocs.CacheRecord, error) {
	rec, err := s.next.Lookup(ctx, entity)
	switch {
	case munidocs.ErrorCode(err) == munidocs.ENOTFOUND:
		s.logger.Debug("cache miss", "entity", entity)
	case err != nil:
		s.logger.Error("cache lookup failed", "entity", entity, "err", err)
	default:
		s.logger.Debug("cache hit", "entity", entity, "documents", len(rec.Documents))
	}
	return rec, err
}

// Merge delegates to the wrapped store and logs the merge outcome.
func (s *LoggingCacheStore) Merge(ctx context.Context, entity string, slots map[string]string, originLink, method string) (rec *munidocs.CacheRecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"entity", entity,
			"slots", len(slots),
			"method", method,
			"duration", time.Since(begin),
			"err", err,
		}
		if rec != nil {
			attrs = append(attrs, "total", len(rec.Documents))
		}
		s.logger.Info("cache merge", attrs...)
	}(time.Now())
	return s.next.Merge(ctx, entity, slots, originLink, method)
}

// EntityNames delegates to the wrapped store.
func (s *LoggingCacheStore) EntityNames(ctx context.Context) ([]string, error) {
	return s.next.EntityNames(ctx)
}

// Stats delegates to the wrapped store.
func (s *LoggingCacheStore) Stats(ctx context.Context) (*munidocs.CacheStats, error) {
	return s.next.Stats(ctx)
}
