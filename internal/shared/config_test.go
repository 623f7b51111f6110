package shared_test

import (
	"testing"
	"time"

	"hotel_site/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	c, err := shared.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":8080" || c.CacheTTL != 15*time.Minute || !c.CookieSecure {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("SEED_SLUGS", "goa-beach,pune-airport")
	t.Setenv("SEED_WORKERS", "0")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.IsDev() || c.CacheTTL != 30*time.Second || c.CookieSecure {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if len(c.SeedSlugs) != 2 || c.SeedSlugs[1] != "pune-airport" {
		t.Fatalf("slugs: %v", c.SeedSlugs)
	}
	if c.SeedWorkers != 1 {
		t.Fatalf("workers should clamp to 1, got %d", c.SeedWorkers)
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
