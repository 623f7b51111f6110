package domain

import "time"

type Hotel struct {
	ID        int64
	Name      string
	Slug      string // globally unique, URL-safe
	Tagline   string
	Address   string
	Phone     string
	Email     string
	Thumbnail *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MainInfo struct {
	HotelID         int64
	Title           string
	HighlightedText string
	Description     string
	UpdatedAt       time.Time
}

type CarouselSlide struct {
	ID       int64
	HotelID  int64
	Title    string
	Image    string
	Order    int // unique per hotel
	IsActive bool
}

type CardCategory string

const (
	CardGallery       CardCategory = "gallery"
	CardRooms         CardCategory = "rooms"
	CardGeneral       CardCategory = "general"
	CardSpecialOffers CardCategory = "special_offers"
	CardBlog          CardCategory = "blog"
)

type Card struct {
	ID          int64
	HotelID     int64
	Title       string
	Category    CardCategory
	Image       string
	Description string
	Order       int
	IsActive    bool
	ButtonText  string
	ButtonLink  string
}

type RoomType struct {
	ID            int64
	HotelID       int64
	Name          string
	Image         string
	Description   string
	PricePerNight *float64
	IsAvailable   bool
	Order         int
}

type SectionType string

const (
	SectionWedding    SectionType = "wedding"
	SectionBanquet    SectionType = "banquet"
	SectionRestaurant SectionType = "restaurant"
	SectionFAQ        SectionType = "faq"
)

// SectionTypes lists every section a home page can carry, in display order.
var SectionTypes = []SectionType{SectionWedding, SectionBanquet, SectionRestaurant, SectionFAQ}

type SectionContent struct {
	ID                int64
	HotelID           int64
	Type              SectionType // unique per hotel
	Title             string
	Description       string
	Images            []string // up to three
	Button1Text       string
	Button1Link       string
	Button2Text       string
	Button2Link       string
	OverlayTitle      string
	OverlayText       string
	OverlayButtonText string
	OverlayButtonLink string
	IsActive          bool
}

type FAQ struct {
	ID       int64
	HotelID  int64
	Question string
	Answer   string
	Order    int
	IsActive bool
}

type BlogPost struct {
	ID            int64
	HotelID       int64
	Title         string
	Excerpt       string
	Content       string // rich HTML, sanitized at render time
	Image         string
	Category      string
	PublishedDate time.Time
	IsPublished   bool
	Author        *string
}

// HotelBundle is a hotel together with every child record it owns.
// The seeder writes bundles; child IDs and HotelIDs are ignored on write.
type HotelBundle struct {
	Hotel     Hotel
	MainInfo  *MainInfo
	Slides    []CarouselSlide
	Cards     []Card
	RoomTypes []RoomType
	Sections  []SectionContent
	FAQs      []FAQ
	BlogPosts []BlogPost
}
