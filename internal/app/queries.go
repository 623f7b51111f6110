package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_site/internal/domain"
)

const (
	blogPostLimit   = 3
	activeHotelsKey = "hotels:active"
)

func homeKey(slug string) string { return "home:" + slug }

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// Resolve picks the hotel to render and gathers its content.
//
// An explicit slug must name an active hotel (ErrNotFound otherwise). A
// preferred slug that no longer resolves falls through to the first active
// hotel; with no active hotel at all it returns ErrEmptyCatalog.
func (s *QueryService) Resolve(ctx context.Context, hotelSlug, preferredSlug string) (domain.HomePage, error) {
	h, explicit, err := s.pickHotel(ctx, hotelSlug, preferredSlug)
	if err != nil {
		return domain.HomePage{}, err
	}
	page, err := s.HomePage(ctx, h)
	if err != nil {
		return domain.HomePage{}, err
	}
	page.Explicit = explicit
	return page, nil
}

func (s *QueryService) pickHotel(ctx context.Context, hotelSlug, preferredSlug string) (domain.Hotel, bool, error) {
	if hotelSlug != "" {
		h, err := s.repo.GetActiveHotelBySlug(ctx, hotelSlug)
		if err != nil {
			return domain.Hotel{}, false, err
		}
		return h, true, nil
	}
	if preferredSlug != "" {
		h, err := s.repo.GetActiveHotelBySlug(ctx, preferredSlug)
		if err == nil {
			return h, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Hotel{}, false, err
		}
		log.Debug().Str("slug", preferredSlug).Msg("preferred hotel gone; falling back")
	}
	h, err := s.repo.FirstActiveHotel(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Hotel{}, false, domain.ErrEmptyCatalog
	}
	if err != nil {
		return domain.Hotel{}, false, err
	}
	return h, false, nil
}

// HomePage gathers every content block of h. Results are cached per slug.
func (s *QueryService) HomePage(ctx context.Context, h domain.Hotel) (domain.HomePage, error) {
	key := homeKey(h.Slug)
	var page domain.HomePage
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &page); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			page.Hotel = h
			all, err := s.ActiveHotels(ctx)
			if err != nil {
				return domain.HomePage{}, err
			}
			page.AllHotels = all
			return page, nil
		}
	}

	page = domain.HomePage{Hotel: h, Sections: make(map[domain.SectionType]*domain.SectionContent)}
	sections := make([]*domain.SectionContent, len(domain.SectionTypes))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { page.MainInfo, err = s.repo.GetMainInfo(gctx, h.ID); return })
	g.Go(func() (err error) { page.Slides, err = s.repo.ListSlides(gctx, h.ID); return })
	g.Go(func() (err error) {
		page.GalleryCards, err = s.repo.ListCards(gctx, h.ID, domain.CardGallery)
		return
	})
	g.Go(func() (err error) {
		page.GeneralCards, err = s.repo.ListCards(gctx, h.ID, domain.CardGeneral)
		return
	})
	g.Go(func() (err error) {
		page.SpecialOffers, err = s.repo.ListCards(gctx, h.ID, domain.CardSpecialOffers)
		return
	})
	g.Go(func() (err error) { page.RoomTypes, err = s.repo.ListRoomTypes(gctx, h.ID); return })
	g.Go(func() (err error) { page.FAQs, err = s.repo.ListFAQs(gctx, h.ID); return })
	g.Go(func() (err error) {
		page.BlogPosts, err = s.repo.ListBlogPosts(gctx, h.ID, blogPostLimit)
		return
	})
	for i, t := range domain.SectionTypes {
		i, t := i, t
		g.Go(func() (err error) {
			sections[i], err = s.repo.GetSection(gctx, h.ID, t)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return domain.HomePage{}, fmt.Errorf("gather content for %s: %w", h.Slug, err)
	}
	for i, t := range domain.SectionTypes {
		if sections[i] != nil {
			page.Sections[t] = sections[i]
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, page, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	all, err := s.ActiveHotels(ctx)
	if err != nil {
		return domain.HomePage{}, err
	}
	page.AllHotels = all
	return page, nil
}

// ActiveHotels lists every active hotel, lowest id first.
func (s *QueryService) ActiveHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, activeHotelsKey, &out); err != nil {
			log.Warn().Err(err).Str("key", activeHotelsKey).Msg("cache get failed")
		} else if ok {
			return out, nil
		}
	}
	out, err := s.repo.ListActiveHotels(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, activeHotelsKey, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", activeHotelsKey).Msg("cache set failed")
		}
	}
	return out, nil
}
