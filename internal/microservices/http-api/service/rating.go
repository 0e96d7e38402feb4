package service

import (
	"context"
	"log/slog"

	"reviewhub/internal/metrics"
	"reviewhub/internal/microservices/http-api/repository"
)

// RatingCache stores computed title ratings. *cache.RatingCache implements
// it, a nil one included. Set must skip the write when Invalidate ran after
// the given version was read.
type RatingCache interface {
	Get(ctx context.Context, titleID int64) (*int, bool, error)
	Version(ctx context.Context, titleID int64) (int64, error)
	Set(ctx context.Context, titleID int64, rating *int, version int64) error
	Invalidate(ctx context.Context, titleIDs ...int64) error
}

// noopCache is used when no cache is configured.
type noopCache struct{}

func (noopCache) Get(context.Context, int64) (*int, bool, error) { return nil, false, nil }
func (noopCache) Version(context.Context, int64) (int64, error)  { return 0, nil }
func (noopCache) Set(context.Context, int64, *int, int64) error  { return nil }
func (noopCache) Invalidate(context.Context, ...int64) error     { return nil }

// ratings computes title ratings, reading through the cache for single
// titles. Cache failures are logged and never fail the request.
type ratings struct {
	titles  repository.TitleRepository
	cache   RatingCache
	enabled bool
	logger  *slog.Logger
}

func newRatings(titles repository.TitleRepository, cache RatingCache, logger *slog.Logger) *ratings {
	enabled := cache != nil
	if !enabled {
		cache = noopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ratings{titles: titles, cache: cache, enabled: enabled, logger: logger}
}

func (r *ratings) one(ctx context.Context, titleID int64) (*int, error) {
	cached, ok, err := r.cache.Get(ctx, titleID)
	if err != nil {
		r.logger.WarnContext(ctx, "rating cache read failed", "title_id", titleID, "error", err)
	}
	if r.enabled {
		metrics.RecordRatingLookup(ok)
	}
	if ok {
		return cached, nil
	}

	// the version must be read before the store so a concurrent
	// invalidation is seen by Set
	version, verErr := r.cache.Version(ctx, titleID)
	if verErr != nil {
		r.logger.WarnContext(ctx, "rating cache version read failed", "title_id", titleID, "error", verErr)
	}

	computed, err := r.many(ctx, []int64{titleID})
	if err != nil {
		return nil, err
	}
	rating := computed[titleID]
	if verErr != nil {
		return rating, nil
	}
	if err := r.cache.Set(ctx, titleID, rating, version); err != nil {
		r.logger.WarnContext(ctx, "rating cache write failed", "title_id", titleID, "error", err)
	}
	return rating, nil
}

// many returns a rating per requested id; titles without reviews map to nil.
func (r *ratings) many(ctx context.Context, ids []int64) (map[int64]*int, error) {
	raw, err := r.titles.Ratings(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]*int, len(ids))
	for _, id := range ids {
		if v, ok := raw[id]; ok {
			out[id] = &v
		} else {
			out[id] = nil
		}
	}
	return out, nil
}

func (r *ratings) invalidate(ctx context.Context, titleIDs ...int64) {
	if err := r.cache.Invalidate(ctx, titleIDs...); err != nil {
		r.logger.WarnContext(ctx, "rating cache invalidation failed", "title_ids", titleIDs, "error", err)
	}
}
