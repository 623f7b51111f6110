package domain

import "context"

type HotelRepository interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) (int64, error)
	ReplaceContent(ctx context.Context, hotelID int64, b HotelBundle) error

	// Read paths; every lookup honours the record's visibility flag.
	GetActiveHotelBySlug(ctx context.Context, slug string) (Hotel, error)
	FirstActiveHotel(ctx context.Context) (Hotel, error)
	ListActiveHotels(ctx context.Context) ([]Hotel, error)
	GetMainInfo(ctx context.Context, hotelID int64) (*MainInfo, error)
	ListSlides(ctx context.Context, hotelID int64) ([]CarouselSlide, error)
	ListCards(ctx context.Context, hotelID int64, category CardCategory) ([]Card, error)
	ListRoomTypes(ctx context.Context, hotelID int64) ([]RoomType, error)
	GetSection(ctx context.Context, hotelID int64, t SectionType) (*SectionContent, error)
	ListFAQs(ctx context.Context, hotelID int64) ([]FAQ, error)
	ListBlogPosts(ctx context.Context, hotelID int64, limit int) ([]BlogPost, error)
}

// CatalogClient fetches raw hotel content bundles from the remote catalog feed.
type CatalogClient interface {
	GetHotel(ctx context.Context, slug string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

// HomePage is everything the single-page template renders for one hotel.
type HomePage struct {
	Hotel         Hotel
	MainInfo      *MainInfo
	Slides        []CarouselSlide
	GalleryCards  []Card
	GeneralCards  []Card
	SpecialOffers []Card
	RoomTypes     []RoomType
	Sections      map[SectionType]*SectionContent
	FAQs          []FAQ
	BlogPosts     []BlogPost
	AllHotels     []Hotel

	// Explicit is true when the hotel was chosen by URL slug rather than by
	// preference or fallback.
	Explicit bool `json:"-"`
}

// Section returns the active section of the given type, or nil.
func (p HomePage) Section(t SectionType) *SectionContent {
	if p.Sections == nil {
		return nil
	}
	return p.Sections[t]
}

// PreviewImage is the hotel thumbnail, else the first active carousel image.
func (p HomePage) PreviewImage() string {
	if p.Hotel.Thumbnail != nil && *p.Hotel.Thumbnail != "" {
		return *p.Hotel.Thumbnail
	}
	if len(p.Slides) > 0 {
		return p.Slides[0].Image
	}
	return ""
}
