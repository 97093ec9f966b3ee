package offline

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/metrics"
	"github.com/gemma3n-site/backend/pkg/logger"
)

// Control channel message types, sent by the page context.
const (
	MsgSkipWaiting = "SKIP_WAITING"
	MsgCacheURLs   = "CACHE_URLS"
	MsgClearCache  = "CLEAR_CACHE"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type cacheURLsPayload struct {
	URLs []string `json:"urls"`
}

// HandleMessage processes a control message. Unrecognized types are logged
// and ignored, never fatal.
func (c *Controller) HandleMessage(ctx context.Context, msg Message) error {
	switch msg.Type {
	case MsgSkipWaiting:
		return c.handleSkipWaiting(ctx)

	case MsgCacheURLs:
		var payload cacheURLsPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.Warn("Invalid CACHE_URLS payload", zap.Error(err))
			return nil
		}
		return c.CacheURLs(ctx, payload.URLs)

	case MsgClearCache:
		return c.ClearAll(ctx)

	default:
		logger.Info("Unknown control message type", zap.String("type", msg.Type))
		return nil
	}
}

func (c *Controller) handleSkipWaiting(ctx context.Context) error {
	c.mu.Lock()
	c.skipWaiting = true
	installed := c.phase == PhaseInstalled
	c.mu.Unlock()

	if installed {
		return c.Activate(ctx)
	}
	return nil
}

// CacheURLs bulk-precaches urls into the dynamic namespace. Each fetch is
// best-effort; failures are logged and the rest of the list proceeds.
func (c *Controller) CacheURLs(ctx context.Context, urls []string) error {
	ns, err := c.store.Open(ctx, c.cfg.DynamicNamespace)
	if err != nil {
		logger.Error("Failed to open dynamic namespace for precache", zap.Error(err))
		return nil
	}

	cached := 0
	for _, u := range urls {
		if err := c.fetchInto(ctx, ns, u); err != nil {
			logger.Warn("Failed to precache URL", zap.String("url", u), zap.Error(err))
			continue
		}
		cached++
	}

	metrics.PrecachedURLs.Add(float64(cached))
	logger.Info("Precached URLs", zap.Int("requested", len(urls)), zap.Int("cached", cached))
	return nil
}

// ClearAll deletes every cache namespace unconditionally.
func (c *Controller) ClearAll(ctx context.Context) error {
	names, err := c.store.Names(ctx)
	if err != nil {
		logger.Error("Failed to enumerate namespaces for clear", zap.Error(err))
		return nil
	}

	for _, name := range names {
		if err := c.store.Delete(ctx, name); err != nil {
			logger.Warn("Failed to delete namespace", zap.String("namespace", name), zap.Error(err))
		}
	}

	logger.Info("All cache namespaces cleared", zap.Int("count", len(names)))
	return nil
}
