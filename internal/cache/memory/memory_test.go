package memory

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/gemma3n-site/backend/internal/cache"
)

func sample(body string) *cache.Response {
	return &cache.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html"}},
		Body:       []byte(body),
	}
}

func TestPutAndMatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	ns, err := store.Open(ctx, "static-v1")
	if err != nil {
		t.Fatal(err)
	}

	if _, found, _ := ns.Match(ctx, "GET:/page"); found {
		t.Fatal("match before put")
	}

	if err := ns.Put(ctx, "GET:/page", sample("hello")); err != nil {
		t.Fatal(err)
	}

	got, found, err := ns.Match(ctx, "GET:/page")
	if err != nil || !found {
		t.Fatalf("match after put: found=%v err=%v", found, err)
	}
	if string(got.Body) != "hello" {
		t.Errorf("body = %q", got.Body)
	}

	stats := store.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestMatchReturnsIsolatedCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	ns, _ := store.Open(ctx, "static-v1")

	original := sample("immutable")
	if err := ns.Put(ctx, "GET:/a", original); err != nil {
		t.Fatal(err)
	}

	// Mutating what the caller handed in or got back must not leak into
	// the stored entry.
	original.Body[0] = 'X'

	got, _, _ := ns.Match(ctx, "GET:/a")
	if string(got.Body) != "immutable" {
		t.Errorf("stored entry was mutated: %q", got.Body)
	}

	got.Body[0] = 'Y'
	got.Header.Set("Content-Type", "application/json")

	again, _, _ := ns.Match(ctx, "GET:/a")
	if string(again.Body) != "immutable" {
		t.Errorf("returned copy aliased the stored entry: %q", again.Body)
	}
	if again.Header.Get("Content-Type") != "text/html" {
		t.Errorf("header aliased the stored entry: %v", again.Header)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	ns1, _ := store.Open(ctx, "dynamic-v1")
	if err := ns1.Put(ctx, "GET:/x", sample("x")); err != nil {
		t.Fatal(err)
	}

	ns2, _ := store.Open(ctx, "dynamic-v1")
	if _, found, _ := ns2.Match(ctx, "GET:/x"); !found {
		t.Error("reopened namespace lost its entries")
	}
}

func TestNamesSorted(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := store.Open(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	names, err := store.Names(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	store.Open(ctx, "static-v0")
	store.Open(ctx, "static-v1")

	if err := store.Delete(ctx, "static-v0"); err != nil {
		t.Fatal(err)
	}
	// Deleting a missing namespace is not an error.
	if err := store.Delete(ctx, "static-v0"); err != nil {
		t.Fatal(err)
	}

	names, _ := store.Names(ctx)
	if len(names) != 1 || names[0] != "static-v1" {
		t.Errorf("names after delete: %v", names)
	}
}
