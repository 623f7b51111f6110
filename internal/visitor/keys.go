package visitor

import "time"

// Client-state entry names.
const (
	PreferredHotelSlug     = "preferred_hotel_slug"
	CurrentHotelSlug       = "current_hotel_slug"
	RecentHotels           = "recent_hotels"
	FirstVisit             = "first_visit"
	LastVisit              = "last_visit"
	VisitCount             = "visit_count"
	ThemePreference        = "theme_preference"
	LanguagePreference     = "language_preference"
	NewsletterSubscribed   = "newsletter_subscribed"
	ComparisonList         = "comparison_list"
	BookingFormData        = "booking_form_data"
	CookieConsentEssential = "cookie_consent_essential"
	CookieConsentAnalytics = "cookie_consent_analytics"
	CookieConsentMarketing = "cookie_consent_marketing"
	CookieConsentGiven     = "cookie_consent_given"
	LastActivity           = "last_activity"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day

	// BookingTTL is how long a saved booking draft stays valid.
	BookingTTL = day

	maxRecentHotels   = 5
	maxComparisonList = 3
)

// Entry describes how one client-state value is re-emitted.
type Entry struct {
	MaxAge         time.Duration
	ClientReadable bool // false means HttpOnly
}

var entries = map[string]Entry{
	PreferredHotelSlug:     {MaxAge: month},
	CurrentHotelSlug:       {MaxAge: day, ClientReadable: true},
	RecentHotels:           {MaxAge: month},
	FirstVisit:             {MaxAge: year},
	LastVisit:              {MaxAge: month},
	VisitCount:             {MaxAge: year},
	ThemePreference:        {MaxAge: year, ClientReadable: true},
	LanguagePreference:     {MaxAge: year, ClientReadable: true},
	NewsletterSubscribed:   {MaxAge: year},
	ComparisonList:         {MaxAge: month, ClientReadable: true},
	BookingFormData:        {MaxAge: BookingTTL, ClientReadable: true},
	CookieConsentEssential: {MaxAge: year},
	CookieConsentAnalytics: {MaxAge: year},
	CookieConsentMarketing: {MaxAge: year},
	CookieConsentGiven:     {MaxAge: year},
	LastActivity:           {MaxAge: month},
}

// EntryFor reports the lifetime and readability of a known entry.
func EntryFor(key string) (Entry, bool) {
	e, ok := entries[key]
	return e, ok
}

// preferenceKeys are the entries removed by ClearPreferences.
var preferenceKeys = []string{
	ThemePreference,
	LanguagePreference,
	RecentHotels,
	PreferredHotelSlug,
	NewsletterSubscribed,
}
