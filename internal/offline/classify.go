package offline

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Request is the controller's view of an intercepted request.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	// Mode mirrors the browser navigation mode ("navigate" for page loads),
	// carried on Sec-Fetch-Mode by modern clients.
	Mode string
}

func (r *Request) key() string {
	return r.Method + ":" + r.URL.RequestURI()
}

func (r *Request) accept() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Accept")
}

// RequestClass is the handling strategy a request resolves to. Classification
// is a pure function of the request; it is computed once and switched on.
type RequestClass int

const (
	ClassStatic RequestClass = iota
	ClassNavigation
	ClassAPI
	ClassOther
)

func (c RequestClass) String() string {
	switch c {
	case ClassStatic:
		return "static"
	case ClassNavigation:
		return "navigation"
	case ClassAPI:
		return "api"
	default:
		return "other"
	}
}

var staticExtensions = map[string]struct{}{
	".css":   {},
	".js":    {},
	".png":   {},
	".jpg":   {},
	".jpeg":  {},
	".gif":   {},
	".svg":   {},
	".woff":  {},
	".woff2": {},
	".ttf":   {},
	".ico":   {},
}

// Classify resolves a request to exactly one class. Order matters: a static
// extension wins over everything, a navigation wins over an API match.
func Classify(req *Request, apiPrefix string) RequestClass {
	if _, ok := staticExtensions[strings.ToLower(path.Ext(req.URL.Path))]; ok {
		return ClassStatic
	}

	if req.Mode == "navigate" ||
		(req.Method == http.MethodGet && strings.Contains(req.accept(), "text/html")) {
		return ClassNavigation
	}

	if strings.HasPrefix(req.URL.Path, apiPrefix) ||
		strings.Contains(req.accept(), "application/json") {
		return ClassAPI
	}

	return ClassOther
}
