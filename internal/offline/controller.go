package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/cache"
	"github.com/gemma3n-site/backend/internal/metrics"
	"github.com/gemma3n-site/backend/pkg/logger"
)

// Fetcher is the network boundary. Implementations must surface transport
// failures as errors; a completed HTTP exchange with a non-2xx status is a
// response, not an error.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) (*cache.Response, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, req *Request) (*cache.Response, error)

func (f FetchFunc) Fetch(ctx context.Context, req *Request) (*cache.Response, error) {
	return f(ctx, req)
}

// Config names the versioned cache namespaces and the fixed resources the
// controller depends on. Tests pass their own namespace names.
type Config struct {
	StaticNamespace  string
	DynamicNamespace string
	GeneralNamespace string
	CoreAssets       []string
	OfflinePath      string
	APIPrefix        string
}

func (c Config) currentNames() map[string]struct{} {
	return map[string]struct{}{
		c.StaticNamespace:  {},
		c.DynamicNamespace: {},
		c.GeneralNamespace: {},
	}
}

type Phase int

const (
	PhaseNew Phase = iota
	PhaseInstalled
	PhaseActive
)

// Controller decides, per request class, whether to serve from cache,
// network, or a blend of both, and owns the namespace lifecycle.
type Controller struct {
	cfg     Config
	store   cache.Store
	fetcher Fetcher

	mu          sync.Mutex
	phase       Phase
	skipWaiting bool

	// spawn runs background revalidation tasks. Failures inside a spawned
	// task never reach the request path that triggered it.
	spawn func(func())
}

func New(cfg Config, store cache.Store, fetcher Fetcher) *Controller {
	return &Controller{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		spawn:   func(fn func()) { go fn() },
	}
}

// Install precaches the core assets into the static namespace. Individual
// asset failures are logged but do not fail installation. All sub-tasks are
// joined before the phase advances.
func (c *Controller) Install(ctx context.Context) error {
	logger.Info("Offline controller installing")

	ns, err := c.store.Open(ctx, c.cfg.StaticNamespace)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, asset := range c.cfg.CoreAssets {
		wg.Add(1)
		go func(asset string) {
			defer wg.Done()
			if err := c.fetchInto(ctx, ns, asset); err != nil {
				logger.Warn("Failed to precache core asset",
					zap.String("asset", asset),
					zap.Error(err),
				)
			}
		}(asset)
	}
	wg.Wait()

	c.mu.Lock()
	c.phase = PhaseInstalled
	skip := c.skipWaiting
	c.mu.Unlock()

	if skip {
		return c.Activate(ctx)
	}
	return nil
}

// Activate deletes every namespace whose name is not one of the current
// static/dynamic/general identifiers, then begins serving requests.
func (c *Controller) Activate(ctx context.Context) error {
	logger.Info("Offline controller activating")

	names, err := c.store.Names(ctx)
	if err != nil {
		return err
	}

	current := c.cfg.currentNames()
	for _, name := range names {
		if _, ok := current[name]; ok {
			continue
		}
		logger.Info("Deleting stale cache namespace", zap.String("namespace", name))
		if err := c.store.Delete(ctx, name); err != nil {
			logger.Warn("Failed to delete stale namespace",
				zap.String("namespace", name),
				zap.Error(err),
			)
		}
	}

	c.mu.Lock()
	c.phase = PhaseActive
	c.mu.Unlock()

	return nil
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// HandleRequest dispatches by classification. It never returns an error:
// every failure path degrades to a synthetic response so nothing upstream
// ever sees an unhandled failure.
func (c *Controller) HandleRequest(ctx context.Context, req *Request) *cache.Response {
	class := Classify(req, c.cfg.APIPrefix)
	metrics.GatewayRequests.WithLabelValues(class.String()).Inc()

	switch class {
	case ClassStatic:
		return c.handleStatic(ctx, req)
	case ClassNavigation:
		return c.handleNavigation(ctx, req)
	case ClassAPI:
		return c.handleAPI(ctx, req)
	default:
		return c.handleDefault(ctx, req)
	}
}

// handleStatic is cache-first with stale-while-revalidate: a hit is returned
// immediately and refreshed in the background for future requests.
func (c *Controller) handleStatic(ctx context.Context, req *Request) *cache.Response {
	ns, err := c.store.Open(ctx, c.cfg.StaticNamespace)
	if err != nil {
		logger.Warn("Static cache unavailable", zap.Error(err))
		ns = nil
	}

	if ns != nil {
		cached, found, err := ns.Match(ctx, req.key())
		if err != nil {
			logger.Warn("Static cache match failed", zap.Error(err))
		}
		if found {
			metrics.CacheHits.WithLabelValues(c.cfg.StaticNamespace).Inc()
			c.spawn(func() { c.revalidate(ns, req) })
			return cached
		}
		metrics.CacheMisses.WithLabelValues(c.cfg.StaticNamespace).Inc()
	}

	resp, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		logger.Debug("Static asset fetch failed", zap.String("url", req.URL.String()), zap.Error(err))
		return syntheticOffline()
	}

	if ns != nil && isSuccess(resp) {
		if err := ns.Put(ctx, req.key(), resp); err != nil {
			logger.Warn("Failed to cache static asset", zap.Error(err))
		}
	}
	return resp
}

// revalidate refreshes a cached entry after a stale-while-revalidate hit.
// It runs detached from any request; errors are swallowed because the caller
// already has a response.
func (c *Controller) revalidate(ns cache.Namespace, req *Request) {
	ctx := context.Background()
	resp, err := c.fetcher.Fetch(ctx, req)
	if err != nil || !isSuccess(resp) {
		return
	}
	if err := ns.Put(ctx, req.key(), resp); err != nil {
		logger.Debug("Background revalidation put failed", zap.Error(err))
	}
}

// handleNavigation is network-first: cache successful pages, fall back to the
// last cached copy, then to the offline page, then to a synthetic 503.
func (c *Controller) handleNavigation(ctx context.Context, req *Request) *cache.Response {
	resp, err := c.fetcher.Fetch(ctx, req)
	if err == nil && isSuccess(resp) {
		c.storeDynamic(ctx, req, resp)
		return resp
	}

	logger.Debug("Page fetch failed, trying cache", zap.String("url", req.URL.String()))

	if cached, found := c.matchDynamic(ctx, req); found {
		metrics.CacheHits.WithLabelValues(c.cfg.DynamicNamespace).Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues(c.cfg.DynamicNamespace).Inc()

	if fallback, found := c.matchOfflinePage(ctx); found {
		return fallback
	}
	return syntheticOffline()
}

// handleAPI is network-first. A completed exchange is always returned as-is,
// even with an error status; only a transport failure falls back to cache or
// the structured offline body.
func (c *Controller) handleAPI(ctx context.Context, req *Request) *cache.Response {
	resp, err := c.fetcher.Fetch(ctx, req)
	if err == nil {
		if isSuccess(resp) {
			c.storeDynamic(ctx, req, resp)
		}
		return resp
	}

	logger.Debug("API fetch failed", zap.String("url", req.URL.String()), zap.Error(err))

	if cached, found := c.matchDynamic(ctx, req); found {
		metrics.CacheHits.WithLabelValues(c.cfg.DynamicNamespace).Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues(c.cfg.DynamicNamespace).Inc()

	return syntheticAPIOffline()
}

func (c *Controller) handleDefault(ctx context.Context, req *Request) *cache.Response {
	resp, err := c.fetcher.Fetch(ctx, req)
	if err == nil {
		return resp
	}

	if cached, found := c.matchDynamic(ctx, req); found {
		return cached
	}
	return syntheticOffline()
}

func (c *Controller) storeDynamic(ctx context.Context, req *Request, resp *cache.Response) {
	ns, err := c.store.Open(ctx, c.cfg.DynamicNamespace)
	if err != nil {
		logger.Warn("Dynamic cache unavailable", zap.Error(err))
		return
	}
	if err := ns.Put(ctx, req.key(), resp); err != nil {
		logger.Warn("Failed to cache response", zap.Error(err))
	}
}

func (c *Controller) matchDynamic(ctx context.Context, req *Request) (*cache.Response, bool) {
	ns, err := c.store.Open(ctx, c.cfg.DynamicNamespace)
	if err != nil {
		return nil, false
	}
	cached, found, err := ns.Match(ctx, req.key())
	if err != nil || !found {
		return nil, false
	}
	return cached, true
}

func (c *Controller) matchOfflinePage(ctx context.Context) (*cache.Response, bool) {
	key := http.MethodGet + ":" + c.cfg.OfflinePath
	for _, name := range []string{c.cfg.StaticNamespace, c.cfg.DynamicNamespace} {
		ns, err := c.store.Open(ctx, name)
		if err != nil {
			continue
		}
		cached, found, err := ns.Match(ctx, key)
		if err == nil && found {
			return cached, true
		}
	}
	return nil, false
}

func (c *Controller) fetchInto(ctx context.Context, ns cache.Namespace, urlPath string) error {
	req, err := newGetRequest(urlPath)
	if err != nil {
		return err
	}
	resp, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		return err
	}
	if !isSuccess(resp) {
		return &statusError{status: resp.StatusCode, url: urlPath}
	}
	return ns.Put(ctx, req.key(), resp)
}

func isSuccess(resp *cache.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func syntheticOffline() *cache.Response {
	return &cache.Response{
		StatusCode: http.StatusServiceUnavailable,
		Header:     http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:       []byte("Offline"),
	}
}

func syntheticAPIOffline() *cache.Response {
	body, _ := json.Marshal(map[string]interface{}{
		"error":  "Offline",
		"cached": false,
	})
	return &cache.Response{
		StatusCode: http.StatusServiceUnavailable,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       body,
	}
}

type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.status, e.url)
}
