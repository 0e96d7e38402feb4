package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// noRating is stored for titles without reviews so that a cached null
// can be told apart from a miss.
const noRating = "null"

var errStaleRating = errors.New("rating invalidated while computing")

// RatingCache keeps the computed title rating in redis.
// A nil *RatingCache is valid and behaves as an always-empty cache.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache connects to redis and verifies the connection.
// An empty url disables the cache and returns (nil, nil).
func NewRatingCache(url, password string, ttl time.Duration) (*RatingCache, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		// plain host:port is accepted as well
		opts = &redis.Options{Addr: url}
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

// RatingKey is the redis key holding a title's rating.
func RatingKey(titleID int64) string {
	return fmt.Sprintf("title:%d:rating", titleID)
}

// VersionKey counts invalidations of a title's rating. A computed rating is
// only stored if this counter has not moved since the computation started.
func VersionKey(titleID int64) string {
	return RatingKey(titleID) + ":v"
}

// Get returns the cached rating. ok is false on a miss.
func (c *RatingCache) Get(ctx context.Context, titleID int64) (rating *int, ok bool, err error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, RatingKey(titleID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rating, err = decodeRating(raw)
	if err != nil {
		return nil, false, err
	}
	return rating, true, nil
}

// Version returns the invalidation counter of a title, 0 if never bumped.
// Read it before computing a rating and hand it to Set.
func (c *RatingCache) Version(ctx context.Context, titleID int64) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, VersionKey(titleID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set stores the rating, nil included, unless the title was invalidated
// after version was read. A skipped write is not an error.
func (c *RatingCache) Set(ctx context.Context, titleID int64, rating *int, version int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	vkey := VersionKey(titleID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleRating
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, RatingKey(titleID), encodeRating(rating), c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, errStaleRating) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the cached ratings of the given titles and bumps their
// versions so that in-flight computations do not write the old value back.
func (c *RatingCache) Invalidate(ctx context.Context, titleIDs ...int64) error {
	if c == nil || c.client == nil || len(titleIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range titleIDs {
			pipe.Incr(ctx, VersionKey(id))
			pipe.Del(ctx, RatingKey(id))
		}
		return nil
	})
	return err
}

func (c *RatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func encodeRating(rating *int) string {
	if rating == nil {
		return noRating
	}
	return strconv.Itoa(*rating)
}

func decodeRating(raw string) (*int, error) {
	if raw == noRating {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid cached rating %q: %w", raw, err)
	}
	return &v, nil
}
