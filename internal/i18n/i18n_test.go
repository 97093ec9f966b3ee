package i18n

import "testing"

func TestTranslatorFallbackChain(t *testing.T) {
	tr, err := NewTranslator()
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}

	if got := tr.T(LangEN, "nav.home"); got == "" || got == "nav.home" {
		t.Errorf("T(en, nav.home) = %q", got)
	}

	en := tr.T(LangEN, "nav.home")
	zh := tr.T(LangZH, "nav.home")
	if zh == "" || zh == en {
		t.Errorf("zh translation missing or identical to en: %q", zh)
	}

	// Unknown key falls back to the key itself.
	if got := tr.T(LangZH, "nav.does-not-exist"); got != "nav.does-not-exist" {
		t.Errorf("missing key = %q, want the key itself", got)
	}

	// Unknown language falls back to the default table.
	if got := tr.T(Language("fr"), "nav.home"); got != en {
		t.Errorf("unknown language = %q, want %q", got, en)
	}
}

func TestTableMergesOverDefault(t *testing.T) {
	tr, err := NewTranslator()
	if err != nil {
		t.Fatal(err)
	}

	enTable := tr.Table(LangEN)
	zhTable := tr.Table(LangZH)

	if len(zhTable) < len(enTable) {
		t.Errorf("zh table has %d keys, en has %d; merge should cover every default key", len(zhTable), len(enTable))
	}
	for key := range enTable {
		if _, ok := zhTable[key]; !ok {
			t.Errorf("zh table missing key %s", key)
		}
	}
}

func TestLangFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"/", LangEN},
		{"/about", LangEN},
		{"/zh", LangZH},
		{"/zh/", LangZH},
		{"/zh/about", LangZH},
		{"/zhx/about", LangEN},
		{"/fr/about", LangEN},
	}

	for _, tt := range tests {
		if got := LangFromPath(tt.path); got != tt.want {
			t.Errorf("LangFromPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestLocalizedPath(t *testing.T) {
	if got := LocalizedPath("/about", LangEN); got != "/about" {
		t.Errorf("en path = %q", got)
	}
	if got := LocalizedPath("/about", LangZH); got != "/zh/about" {
		t.Errorf("zh path = %q", got)
	}
}

func TestLanguageRoute(t *testing.T) {
	m := DefaultRouteMapping()

	tests := []struct {
		name    string
		current string
		target  Language
		want    string
	}{
		{"en page to zh", "/about", LangZH, "/zh/about"},
		{"zh page to en", "/zh/about", LangEN, "/about"},
		{"home to zh", "/", LangZH, "/zh/"},
		{"blog post to zh", "/blog/how-to-run-gemma-3n-locally", LangZH, "/zh/blog/how-to-run-gemma-3n-locally"},
		{"zh blog post to en", "/zh/blog/how-to-run-gemma-3n-locally", LangEN, "/blog/how-to-run-gemma-3n-locally"},
		{"unknown page to zh", "/no-such-page", LangZH, "/zh"},
		{"unknown page to en", "/zh/no-such-page", LangEN, "/"},
		{"unknown blog slug", "/blog/not-a-real-post", LangZH, "/zh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.LanguageRoute(tt.current, tt.target); got != tt.want {
				t.Errorf("LanguageRoute(%q, %s) = %q, want %q", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestAlternateRoutes(t *testing.T) {
	m := DefaultRouteMapping()

	routes := m.AlternateRoutes("/toolkit")
	if routes[LangEN] != "/toolkit" {
		t.Errorf("en alternate = %q", routes[LangEN])
	}
	if routes[LangZH] != "/zh/toolkit" {
		t.Errorf("zh alternate = %q", routes[LangZH])
	}
}
