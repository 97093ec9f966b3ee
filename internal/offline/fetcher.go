package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gemma3n-site/backend/internal/cache"
)

// UpstreamFetcher fetches from the static site origin. No retry and no
// per-request timeout beyond the client's: the controller's fallback chain is
// the only recovery mechanism.
type UpstreamFetcher struct {
	origin     *url.URL
	httpClient *http.Client
}

func NewUpstreamFetcher(origin string, timeout time.Duration) (*UpstreamFetcher, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported upstream scheme: %s", u.Scheme)
	}

	return &UpstreamFetcher{
		origin: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (f *UpstreamFetcher) Fetch(ctx context.Context, req *Request) (*cache.Response, error) {
	target := *f.origin
	target.Path = req.URL.Path
	target.RawQuery = req.URL.RawQuery

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}

	httpResp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream fetch failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream body: %w", err)
	}

	return &cache.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
	}, nil
}

func newGetRequest(rawPath string) (*Request, error) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawPath, err)
	}
	return &Request{
		Method: http.MethodGet,
		URL:    u,
		Header: http.Header{},
	}, nil
}
