// Package query is the fetch/cache layer between the editing engine and the
// remote data service. Collections are cached by key; successful mutations
// invalidate keys and every subscribed session refetches them.
package query

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"terrimap/internal/domain/service"
	"terrimap/internal/errors"
	"terrimap/internal/infra/metrics"

	"github.com/paulmach/orb/geojson"
)

// Fetcher loads one collection from the remote service.
type Fetcher func(ctx context.Context) (*geojson.FeatureCollection, error)

// Hub is the process-wide cache plus the invalidation fan-out. It is shared
// by every session.
type Hub struct {
	logger *slog.Logger
	cache  Cache
	ttl    time.Duration

	broadcaster Broadcaster

	mu        sync.RWMutex
	listeners map[int]func(keys []string)
	nextID    int
}

// NewHub creates a hub over cache. A zero ttl keeps entries until invalidated.
func NewHub(logger *slog.Logger, cache Cache, ttl time.Duration) *Hub {
	return &Hub{
		logger:    logger.With(slog.String("component", "query")),
		cache:     cache,
		ttl:       ttl,
		listeners: make(map[int]func(keys []string)),
	}
}

// UseBroadcaster relays this hub's invalidations to other instances.
func (h *Hub) UseBroadcaster(broadcaster Broadcaster) {
	h.broadcaster = broadcaster
}

// ListenRemote notifies local listeners of invalidations made by other
// instances until ctx ends. It returns immediately without a broadcaster.
func (h *Hub) ListenRemote(ctx context.Context) error {
	if h.broadcaster == nil {
		return nil
	}

	return h.broadcaster.Listen(ctx, func(keys []string) {
		h.logger.Debug("Remote invalidation", slog.Any("keys", keys))
		h.notify(keys)
	})
}

// Invalidate drops keys from the cache and notifies every listener, here
// and on the other instances.
func (h *Hub) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := h.cache.Delete(ctx, keys...); err != nil {
		h.logger.Warn("Failed to drop cached queries", slog.Any("keys", keys), slog.Any("error", err))
	}
	if h.broadcaster != nil {
		if err := h.broadcaster.Publish(ctx, keys); err != nil {
			h.logger.Warn("Failed to broadcast invalidation", slog.Any("keys", keys), slog.Any("error", err))
		}
	}

	h.notify(keys)
}

func (h *Hub) notify(keys []string) {
	h.mu.RLock()
	listeners := make([]func([]string), 0, len(h.listeners))
	for _, listener := range h.listeners {
		listeners = append(listeners, listener)
	}
	h.mu.RUnlock()

	for _, listener := range listeners {
		listener(slices.Clone(keys))
	}
}

// Subscribe registers an invalidation listener. Listeners run on the
// invalidating goroutine and must hand work to their own loop.
func (h *Hub) Subscribe(listener func(keys []string)) service.Subscription {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = listener
	h.mu.Unlock()

	return service.NewSubscription(func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	})
}

// Client is one session's view of the hub. It counts the fetches and
// mutations it has in flight so the session can show activity.
type Client struct {
	hub *Hub

	mu       sync.Mutex
	inFlight int
	activity map[int]func(busy bool)
	nextID   int
}

// NewClient creates a client on hub.
func NewClient(hub *Hub) *Client {
	return &Client{
		hub:      hub,
		activity: make(map[int]func(busy bool)),
	}
}

// Fetch returns the cached collection for key or loads it with fetcher.
func (c *Client) Fetch(ctx context.Context, key string, fetcher Fetcher) (*geojson.FeatureCollection, error) {
	fc, ok, err := c.hub.cache.Get(ctx, key)
	if err != nil {
		c.hub.logger.Warn("Query cache read failed, fetching", slog.String("key", key), slog.Any("error", err))
	}
	if ok {
		metrics.QueryFetchesTotal.WithLabelValues(key, "hit").Inc()
		return fc, nil
	}
	metrics.QueryFetchesTotal.WithLabelValues(key, "miss").Inc()

	c.begin()
	defer c.end()

	fc, err = fetcher(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", key)
	}
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}

	if err := c.hub.cache.Set(ctx, key, fc, c.hub.ttl); err != nil {
		c.hub.logger.Warn("Query cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return fc, nil
}

// Mutate runs fn and, when it succeeds, invalidates the given keys.
func (c *Client) Mutate(ctx context.Context, fn func(ctx context.Context) error, invalidates ...string) error {
	c.begin()
	defer c.end()

	if err := fn(ctx); err != nil {
		metrics.MutationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.MutationsTotal.WithLabelValues("ok").Inc()

	c.hub.Invalidate(ctx, invalidates...)

	return nil
}

// Invalidate drops keys for every session.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	c.hub.Invalidate(ctx, keys...)
}

// OnInvalidate registers an invalidation listener on the hub.
func (c *Client) OnInvalidate(listener func(keys []string)) service.Subscription {
	return c.hub.Subscribe(listener)
}

// OnActivity registers a listener for busy/idle transitions of this client.
// It runs on the goroutine that caused the transition.
func (c *Client) OnActivity(listener func(busy bool)) service.Subscription {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.activity[id] = listener
	c.mu.Unlock()

	return service.NewSubscription(func() {
		c.mu.Lock()
		delete(c.activity, id)
		c.mu.Unlock()
	})
}

// InFlight returns the number of running fetches and mutations.
func (c *Client) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inFlight
}

func (c *Client) begin() {
	c.mu.Lock()
	c.inFlight++
	var listeners []func(bool)
	if c.inFlight == 1 {
		listeners = c.activityListeners()
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(true)
	}
}

func (c *Client) end() {
	c.mu.Lock()
	c.inFlight--
	var listeners []func(bool)
	if c.inFlight == 0 {
		listeners = c.activityListeners()
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(false)
	}
}

func (c *Client) activityListeners() []func(bool) {
	listeners := make([]func(bool), 0, len(c.activity))
	for _, listener := range c.activity {
		listeners = append(listeners, listener)
	}

	return listeners
}
