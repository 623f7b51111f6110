package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_site/internal/domain"
)

type SeedService struct {
	catalog domain.CatalogClient
	repo    domain.HotelRepository
	cache   domain.Cache
}

// NewSeedService wires the seeder. catalog may be nil when only built-in
// bundles are written.
func NewSeedService(c domain.CatalogClient, r domain.HotelRepository, cache domain.Cache) *SeedService {
	return &SeedService{catalog: c, repo: r, cache: cache}
}

// SeedBundle upserts the hotel (keyed by slug), replaces its child content
// and evicts the cached pages it affects.
func (s *SeedService) SeedBundle(ctx context.Context, b domain.HotelBundle) error {
	b.Hotel.Slug = strings.TrimSpace(b.Hotel.Slug)
	if b.Hotel.Slug == "" {
		b.Hotel.Slug = Slugify(b.Hotel.Name)
	}
	if b.Hotel.Slug == "" {
		return fmt.Errorf("hotel %q has no usable slug", b.Hotel.Name)
	}

	// Parent first so child rows have a key to point at.
	id, err := s.repo.UpsertHotel(ctx, b.Hotel)
	if err != nil {
		return fmt.Errorf("upsert hotel %s: %w", b.Hotel.Slug, err)
	}
	if err := s.repo.ReplaceContent(ctx, id, b); err != nil {
		return fmt.Errorf("replace content for %s: %w", b.Hotel.Slug, err)
	}

	if s.cache != nil {
		s.invalidate(ctx, b.Hotel.Slug)
	}
	return nil
}

// ImportHotel pulls one bundle from the catalog feed and seeds it. A slug the
// feed does not know is logged and skipped.
func (s *SeedService) ImportHotel(ctx context.Context, slug string) error {
	if s.catalog == nil {
		return errors.New("no catalog feed configured")
	}
	p, err := s.catalog.GetHotel(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		log.Warn().Str("slug", slug).Msg("catalog: hotel not found")
		// Drop any stale page so a removed hotel stops rendering old content.
		if s.cache != nil {
			s.invalidate(ctx, slug)
		}
		return nil
	case errors.Is(err, domain.ErrAccessDenied):
		log.Warn().Str("slug", slug).Err(err).Msg("catalog: access denied")
		return nil
	case err != nil:
		return err
	}

	b := mapBundle(p)
	if b.Hotel.Slug == "" {
		b.Hotel.Slug = slug
	}
	return s.SeedBundle(ctx, b)
}

func (s *SeedService) invalidate(ctx context.Context, slug string) {
	_ = s.cache.Del(ctx, homeKey(slug))
	_ = s.cache.Del(ctx, activeHotelsKey)
}
