package i18n

import "regexp"

// RouteMapping resolves a path in one language to its counterpart in
// another. Blog posts keep the same slug across languages today, but the
// table allows per-language slugs.
type RouteMapping struct {
	Pages map[string]map[Language]string
	Blog  map[string]map[Language]string
}

func DefaultRouteMapping() *RouteMapping {
	pages := []string{
		"/",
		"/about",
		"/demo",
		"/toolkit",
		"/compare/gemma-vs-llama3",
		"/leaderboard",
		"/blog",
		"/privacy",
		"/terms",
	}

	blogSlugs := []string{
		"how-to-run-gemma-3n-locally",
		"fine-tuning-gemma-3n-with-lora",
		"fine-tuning-gemma-3n-with-unsloth",
		"gemma-3n-vs-llama-3-in-depth-comparison",
		"gemma-3n-ios-complete-deployment-guide",
		"getting-started-with-gemma-3n-and-lm-studio",
		"how-to-run-gemma-3n-with-ollama",
		"image-analysis-with-gemma-3n",
		"transcribing-speech-with-gemma-3n",
		"generating-svgs-with-gemma-3n",
		"gemma-3n-e2b-vs-e4b-which-one-should-you-choose",
	}

	m := &RouteMapping{
		Pages: make(map[string]map[Language]string, len(pages)),
		Blog:  make(map[string]map[Language]string, len(blogSlugs)),
	}

	for _, p := range pages {
		m.Pages[p] = map[Language]string{
			LangEN: p,
			LangZH: LocalizedPath(p, LangZH),
		}
	}
	for _, slug := range blogSlugs {
		p := "/blog/" + slug
		m.Blog[slug] = map[Language]string{
			LangEN: p,
			LangZH: LocalizedPath(p, LangZH),
		}
	}

	return m
}

var blogPathPattern = regexp.MustCompile(`^/(?:zh/)?blog/([^/]+)/?$`)

// LanguageRoute returns the target-language path for currentPath: exact page
// mapping first, then blog mapping, then the target language's home page.
func (m *RouteMapping) LanguageRoute(currentPath string, target Language) string {
	base := basePath(currentPath)

	if mapping, ok := m.Pages[base]; ok {
		if p, ok := mapping[target]; ok {
			return p
		}
	}

	if match := blogPathPattern.FindStringSubmatch(currentPath); match != nil {
		if mapping, ok := m.Blog[match[1]]; ok {
			if p, ok := mapping[target]; ok {
				return p
			}
		}
	}

	if target == DefaultLang {
		return "/"
	}
	return "/" + string(target)
}

// AlternateRoutes returns every language's path for currentPath.
func (m *RouteMapping) AlternateRoutes(currentPath string) map[Language]string {
	routes := make(map[Language]string, len(Languages))
	for lang := range Languages {
		routes[lang] = m.LanguageRoute(currentPath, lang)
	}
	return routes
}

var zhPrefixPattern = regexp.MustCompile(`^/zh(/|$)`)

func basePath(path string) string {
	if zhPrefixPattern.MatchString(path) {
		stripped := path[len("/zh"):]
		if stripped == "" {
			return "/"
		}
		return stripped
	}
	return path
}
