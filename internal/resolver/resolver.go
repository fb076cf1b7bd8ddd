package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Tarrgon/autocompleted/internal/cache"
	"github.com/Tarrgon/autocompleted/internal/query"
	"github.com/Tarrgon/autocompleted/internal/storage"
)

// ErrServer masks internal failures. The underlying cause is logged for
// operators and never crosses the process boundary.
var ErrServer = errors.New("internal error")

// emptyBody is the serialized form of zero matches, also the degraded
// response when serialization itself fails.
var emptyBody = []byte("[]")

// Resolver answers autocomplete queries through the cache-aside protocol.
type Resolver struct {
	store  storage.TagStore
	cache  *cache.ResultCache
	logger *slog.Logger
	group  singleflight.Group
}

// New creates a Resolver. A nil logger falls back to slog.Default.
func New(store storage.TagStore, resultCache *cache.ResultCache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:  store,
		cache:  resultCache,
		logger: logger,
	}
}

// Resolve returns the serialized JSON body for one raw autocomplete input.
// Input that fails validation returns an error wrapping query.ErrBadInput
// without touching the cache or the store. Backend failures return
// ErrServer.
func (r *Resolver) Resolve(ctx context.Context, raw string) ([]byte, error) {
	key, err := query.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if body, ok := r.cache.Get(key); ok {
		return body, nil
	}

	// Collapse concurrent misses for the same key into one store lookup.
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.populate(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// populate runs the store lookup for key, serializes the result, and
// writes it back to the cache. Empty results are cached like any other.
func (r *Resolver) populate(ctx context.Context, key string) ([]byte, error) {
	tags, err := r.store.Lookup(ctx, key)
	if err != nil {
		r.logger.Error("tag lookup failed", "key", key, "error", err)
		return nil, ErrServer
	}

	body := r.serialize(tags)
	r.cache.Put(key, body)
	return body, nil
}

// serialize renders tags as a JSON array, degrading to an empty array on
// failure rather than failing the request.
func (r *Resolver) serialize(tags []storage.Tag) []byte {
	if len(tags) == 0 {
		return emptyBody
	}
	body, err := json.Marshal(tags)
	if err != nil {
		r.logger.Error("failed to serialize tags", "error", err)
		return emptyBody
	}
	return body
}
