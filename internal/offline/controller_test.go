package offline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gemma3n-site/backend/internal/cache"
	"github.com/gemma3n-site/backend/internal/cache/memory"
)

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]*cache.Response
	offline   bool
	calls     int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: make(map[string]*cache.Response)}
}

func (f *fakeFetcher) serve(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = &cache.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html"}},
		Body:       []byte(body),
	}
}

func (f *fakeFetcher) setOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) Fetch(ctx context.Context, req *Request) (*cache.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.offline {
		return nil, errors.New("connection refused")
	}
	if resp, ok := f.responses[req.URL.RequestURI()]; ok {
		return resp.Clone(), nil
	}
	return &cache.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       []byte("not found"),
	}, nil
}

func testConfig() Config {
	return Config{
		StaticNamespace:  "static-v1",
		DynamicNamespace: "dynamic-v1",
		GeneralNamespace: "general-v1",
		CoreAssets:       []string{"/", "/offline.html"},
		OfflinePath:      "/offline.html",
		APIPrefix:        "/api/",
	}
}

func newTestController(t *testing.T) (*Controller, *fakeFetcher, *memory.Store) {
	t.Helper()
	fetcher := newFakeFetcher()
	fetcher.serve("/", "<html>home</html>")
	fetcher.serve("/offline.html", "<html>offline</html>")
	store := memory.NewStore()
	ctrl := New(testConfig(), store, fetcher)
	// Run revalidation inline unless a test overrides it.
	ctrl.spawn = func(fn func()) { fn() }
	return ctrl, fetcher, store
}

func TestInstallPrecachesCoreAssets(t *testing.T) {
	ctrl, _, store := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Install(ctx); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if ctrl.Phase() != PhaseInstalled {
		t.Errorf("phase = %v, want PhaseInstalled", ctrl.Phase())
	}

	ns, err := store.Open(ctx, "static-v1")
	if err != nil {
		t.Fatal(err)
	}
	for _, asset := range []string{"/", "/offline.html"} {
		if _, found, _ := ns.Match(ctx, "GET:"+asset); !found {
			t.Errorf("core asset %s not precached", asset)
		}
	}
}

func TestInstallToleratesAssetFailures(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve("/", "<html>home</html>")
	// /offline.html will 404 but installation must still succeed.
	store := memory.NewStore()
	ctrl := New(testConfig(), store, fetcher)

	if err := ctrl.Install(context.Background()); err != nil {
		t.Fatalf("Install should tolerate asset failures: %v", err)
	}
	if ctrl.Phase() != PhaseInstalled {
		t.Errorf("phase = %v, want PhaseInstalled", ctrl.Phase())
	}
}

func TestActivateDeletesStaleNamespaces(t *testing.T) {
	ctrl, _, store := newTestController(t)
	ctx := context.Background()

	for _, name := range []string{"static-v0", "dynamic-v0", "static-v1"} {
		if _, err := store.Open(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	if err := ctrl.Activate(ctx); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	names, err := store.Names(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if strings.HasSuffix(name, "-v0") {
			t.Errorf("stale namespace %s survived activation", name)
		}
	}
	found := false
	for _, name := range names {
		if name == "static-v1" {
			found = true
		}
	}
	if !found {
		t.Error("current namespace static-v1 was deleted")
	}
	if ctrl.Phase() != PhaseActive {
		t.Errorf("phase = %v, want PhaseActive", ctrl.Phase())
	}
}

func TestStaticCacheFirst(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	ctx := context.Background()
	fetcher.serve("/app.css", "body{}")

	req := makeRequest("GET", "/app.css", "", "")

	// First request misses and goes to the network.
	resp := ctrl.HandleRequest(ctx, req)
	if resp.StatusCode != http.StatusOK || string(resp.Body) != "body{}" {
		t.Fatalf("first request: %d %q", resp.StatusCode, resp.Body)
	}
	calls := fetcher.callCount()

	// Second request is served from cache; the inline spawn triggers one
	// background revalidation fetch.
	fetcher.serve("/app.css", "body{color:red}")
	resp = ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "body{}" {
		t.Errorf("cached hit returned %q, want the stale copy", resp.Body)
	}
	if fetcher.callCount() != calls+1 {
		t.Errorf("revalidation fetches = %d, want 1", fetcher.callCount()-calls)
	}

	// The revalidated copy is served next time.
	resp = ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "body{color:red}" {
		t.Errorf("after revalidation got %q", resp.Body)
	}
}

func TestStaticHitServedBeforeRevalidation(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	ctx := context.Background()
	fetcher.serve("/app.js", "v1")

	var pending []func()
	ctrl.spawn = func(fn func()) { pending = append(pending, fn) }

	req := makeRequest("GET", "/app.js", "", "")
	ctrl.HandleRequest(ctx, req)

	calls := fetcher.callCount()
	resp := ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "v1" {
		t.Fatalf("hit returned %q", resp.Body)
	}
	if fetcher.callCount() != calls {
		t.Error("cache hit fetched from network before returning")
	}
	if len(pending) != 1 {
		t.Fatalf("pending revalidations = %d, want 1", len(pending))
	}

	fetcher.serve("/app.js", "v2")
	pending[0]()
	resp = ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "v2" {
		t.Errorf("after deferred revalidation got %q", resp.Body)
	}
}

func TestStaticOfflineMiss(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	fetcher.setOffline(true)

	resp := ctrl.HandleRequest(context.Background(), makeRequest("GET", "/missing.css", "", ""))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	if string(resp.Body) != "Offline" {
		t.Errorf("body = %q, want Offline", resp.Body)
	}
}

func TestNavigationNetworkFirst(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	ctx := context.Background()
	fetcher.serve("/about", "<html>about v1</html>")

	req := makeRequest("GET", "/about", "text/html", "navigate")

	resp := ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "<html>about v1</html>" {
		t.Fatalf("online navigation returned %q", resp.Body)
	}

	// Fresh content always wins while online.
	fetcher.serve("/about", "<html>about v2</html>")
	resp = ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "<html>about v2</html>" {
		t.Errorf("online navigation served stale %q", resp.Body)
	}

	// Offline falls back to the cached copy.
	fetcher.setOffline(true)
	resp = ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != "<html>about v2</html>" {
		t.Errorf("offline navigation returned %q, want cached page", resp.Body)
	}
}

func TestNavigationOfflinePageFallback(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Install(ctx); err != nil {
		t.Fatal(err)
	}
	fetcher.setOffline(true)

	// Never-visited page: no cached copy, offline page steps in.
	resp := ctrl.HandleRequest(ctx, makeRequest("GET", "/never-visited", "text/html", "navigate"))
	if string(resp.Body) != "<html>offline</html>" {
		t.Errorf("fallback returned %q, want the offline page", resp.Body)
	}
}

func TestNavigationTotalMiss(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	fetcher.setOffline(true)

	resp := ctrl.HandleRequest(context.Background(), makeRequest("GET", "/nowhere", "text/html", "navigate"))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestAPIPassthroughErrorStatus(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctx := context.Background()

	// A completed exchange with a 404 is returned as-is, never replaced
	// by a synthetic response.
	resp := ctrl.HandleRequest(ctx, makeRequest("GET", "/api/v2/unknown", "application/json", ""))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 passthrough", resp.StatusCode)
	}
}

func TestAPIOfflineFallback(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	ctx := context.Background()
	fetcher.serve("/api/models", `{"models":[]}`)

	req := makeRequest("GET", "/api/models", "application/json", "")

	if resp := ctrl.HandleRequest(ctx, req); resp.StatusCode != http.StatusOK {
		t.Fatalf("online API returned %d", resp.StatusCode)
	}

	fetcher.setOffline(true)
	resp := ctrl.HandleRequest(ctx, req)
	if string(resp.Body) != `{"models":[]}` {
		t.Errorf("offline API returned %q, want cached body", resp.Body)
	}
}

func TestAPIOfflineStructuredError(t *testing.T) {
	ctrl, fetcher, _ := newTestController(t)
	fetcher.setOffline(true)

	resp := ctrl.HandleRequest(context.Background(), makeRequest("POST", "/api/recommend", "application/json", ""))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}

	var body struct {
		Error  string `json:"error"`
		Cached bool   `json:"cached"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		t.Fatalf("offline API body is not JSON: %v", err)
	}
	if body.Error != "Offline" || body.Cached {
		t.Errorf("body = %+v", body)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
}

func TestSkipWaitingMessage(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctx := context.Background()

	// SKIP_WAITING before install: activation happens as soon as install
	// completes.
	if err := ctrl.HandleMessage(ctx, Message{Type: MsgSkipWaiting}); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Install(ctx); err != nil {
		t.Fatal(err)
	}
	if ctrl.Phase() != PhaseActive {
		t.Errorf("phase = %v, want PhaseActive after skip-waiting install", ctrl.Phase())
	}
}

func TestSkipWaitingAfterInstall(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Install(ctx); err != nil {
		t.Fatal(err)
	}
	if ctrl.Phase() != PhaseInstalled {
		t.Fatalf("phase = %v", ctrl.Phase())
	}

	if err := ctrl.HandleMessage(ctx, Message{Type: MsgSkipWaiting}); err != nil {
		t.Fatal(err)
	}
	if ctrl.Phase() != PhaseActive {
		t.Errorf("phase = %v, want PhaseActive", ctrl.Phase())
	}
}

func TestCacheURLsMessage(t *testing.T) {
	ctrl, fetcher, store := newTestController(t)
	ctx := context.Background()
	fetcher.serve("/blog", "<html>blog</html>")

	payload, _ := json.Marshal(map[string][]string{"urls": {"/blog", "/broken"}})
	fetcher.mu.Lock()
	fetcher.responses["/broken"] = &cache.Response{StatusCode: http.StatusInternalServerError, Header: http.Header{}}
	fetcher.mu.Unlock()

	if err := ctrl.HandleMessage(ctx, Message{Type: MsgCacheURLs, Payload: payload}); err != nil {
		t.Fatal(err)
	}

	ns, _ := store.Open(ctx, "dynamic-v1")
	if _, found, _ := ns.Match(ctx, "GET:/blog"); !found {
		t.Error("/blog was not precached")
	}
	if _, found, _ := ns.Match(ctx, "GET:/broken"); found {
		t.Error("failed fetch was cached anyway")
	}
}

func TestClearCacheMessage(t *testing.T) {
	ctrl, _, store := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Install(ctx); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.HandleMessage(ctx, Message{Type: MsgClearCache}); err != nil {
		t.Fatal(err)
	}

	names, _ := store.Names(ctx)
	if len(names) != 0 {
		t.Errorf("namespaces after clear: %v", names)
	}
}

func TestUnknownMessageIgnored(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	if err := ctrl.HandleMessage(context.Background(), Message{Type: "REFRESH_EVERYTHING"}); err != nil {
		t.Errorf("unknown message type should be ignored, got %v", err)
	}
}
