package offline

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/pkg/logger"
)

// Warmup fetches the given pages, caches each page, and bulk-precaches every
// same-origin static asset referenced by its markup. Intended to run once in
// the background after activation.
func (c *Controller) Warmup(ctx context.Context, pages []string) {
	if err := c.CacheURLs(ctx, pages); err != nil {
		logger.Warn("Warmup page precache failed", zap.Error(err))
	}

	seen := make(map[string]struct{})
	var assets []string

	for _, page := range pages {
		req, err := newGetRequest(page)
		if err != nil {
			continue
		}
		resp, err := c.fetcher.Fetch(ctx, req)
		if err != nil || !isSuccess(resp) {
			continue
		}
		for _, asset := range DiscoverAssets(resp.Body) {
			if _, ok := seen[asset]; ok {
				continue
			}
			seen[asset] = struct{}{}
			assets = append(assets, asset)
		}
	}

	if len(assets) == 0 {
		return
	}

	logger.Info("Warmup discovered assets", zap.Int("count", len(assets)))
	if err := c.CacheURLs(ctx, assets); err != nil {
		logger.Warn("Warmup asset precache failed", zap.Error(err))
	}
}

// DiscoverAssets extracts root-relative static asset URLs from an HTML
// document: stylesheets, scripts, images and icons.
func DiscoverAssets(html []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var assets []string
	appendAsset := func(raw string, ok bool) {
		if !ok {
			return
		}
		raw = strings.TrimSpace(raw)
		if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
			return
		}
		assets = append(assets, raw)
	}

	doc.Find("link[rel='stylesheet'], link[rel='icon'], link[rel='manifest']").Each(func(i int, s *goquery.Selection) {
		appendAsset(s.Attr("href"))
	})
	doc.Find("script[src]").Each(func(i int, s *goquery.Selection) {
		appendAsset(s.Attr("src"))
	})
	doc.Find("img[src], source[src]").Each(func(i int, s *goquery.Selection) {
		appendAsset(s.Attr("src"))
	})

	return assets
}
