// Package visitor computes per-request updates to the cookie-backed visitor
// state: preferred and recent hotels, visit counters, preferences, the
// comparison list, booking drafts and cookie consent.
//
// Every rule takes the request's Snapshot and returns a Diff; nothing here
// touches HTTP or shared process state.
package visitor

import (
	"strconv"
	"time"
)

const (
	StatusSuccess = "success"
	StatusExpired = "expired"
)

type Manager struct {
	now func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

/********** render & list **********/

type RenderInput struct {
	Slug     string // resolved hotel
	Explicit bool   // chosen by URL slug
	Theme    *string
	Language *string
}

type RenderResult struct {
	Diff         Diff
	RecentHotels []string
	IsFirstVisit bool
	VisitCount   int
}

func (m *Manager) Render(s Snapshot, in RenderInput) RenderResult {
	now := formatTime(m.now())

	recent := []string{}
	if raw, ok := s.Get(RecentHotels); ok {
		recent = decodeRecent(raw)
	}
	if in.Explicit && in.Slug != "" {
		recent = pushRecent(recent, in.Slug)
	}

	var d Diff
	d.set(PreferredHotelSlug, in.Slug)
	d.set(CurrentHotelSlug, in.Slug)
	d.set(RecentHotels, encodeJSON(recent))

	first, seen := s.Get(FirstVisit)
	isFirst := !seen || first == ""
	if isFirst {
		d.set(FirstVisit, now)
	}
	d.set(LastVisit, now)

	count := decodeCount(s[VisitCount]) + 1
	d.set(VisitCount, strconv.Itoa(count))

	if in.Theme != nil {
		d.set(ThemePreference, *in.Theme)
	}
	if in.Language != nil {
		d.set(LanguagePreference, *in.Language)
	}

	return RenderResult{Diff: d, RecentHotels: recent, IsFirstVisit: isFirst, VisitCount: count}
}

type ListResult struct {
	Diff        Diff
	RecentSlugs map[string]bool
	VisitCount  int
	FirstVisit  *string
	LastVisit   *string
}

func (m *Manager) ListHotels(s Snapshot) ListResult {
	recent := decodeRecent(s[RecentHotels])
	set := make(map[string]bool, len(recent))
	for _, slug := range recent {
		set[slug] = true
	}
	var d Diff
	d.set(LastActivity, formatTime(m.now()))
	return ListResult{
		Diff:        d,
		RecentSlugs: set,
		VisitCount:  decodeCount(s[VisitCount]),
		FirstVisit:  optional(s, FirstVisit),
		LastVisit:   optional(s, LastVisit),
	}
}

/********** preferences **********/

type PreferenceResult struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SetPreference writes the entry named by typ. Unknown types are accepted and
// write nothing.
func (m *Manager) SetPreference(typ, value string) (PreferenceResult, Diff) {
	var d Diff
	switch typ {
	case "theme":
		d.set(ThemePreference, value)
	case "language":
		d.set(LanguagePreference, value)
	case "newsletter":
		d.set(NewsletterSubscribed, boolString(value == "true"))
	}
	return PreferenceResult{Type: typ, Value: value}, d
}

func (m *Manager) ClearPreferences() Diff {
	var d Diff
	for _, k := range preferenceKeys {
		d.del(k)
	}
	return d
}

type UserData struct {
	PreferredHotel       *string  `json:"preferred_hotel"`
	CurrentHotel         *string  `json:"current_hotel"`
	Theme                string   `json:"theme"`
	Language             string   `json:"language"`
	FirstVisit           *string  `json:"first_visit"`
	LastVisit            *string  `json:"last_visit"`
	VisitCount           int      `json:"visit_count"`
	NewsletterSubscribed bool     `json:"newsletter_subscribed"`
	LastActivity         *string  `json:"last_activity"`
	RecentHotels         []string `json:"recent_hotels"`
}

func (m *Manager) UserData(s Snapshot) UserData {
	u := UserData{
		PreferredHotel:       optional(s, PreferredHotelSlug),
		CurrentHotel:         optional(s, CurrentHotelSlug),
		Theme:                "light",
		Language:             "en",
		FirstVisit:           optional(s, FirstVisit),
		LastVisit:            optional(s, LastVisit),
		VisitCount:           decodeCount(s[VisitCount]),
		NewsletterSubscribed: s[NewsletterSubscribed] == "true",
		LastActivity:         optional(s, LastActivity),
		RecentHotels:         decodeRecent(s[RecentHotels]),
	}
	if v, ok := s.Get(ThemePreference); ok {
		u.Theme = v
	}
	if v, ok := s.Get(LanguagePreference); ok {
		u.Language = v
	}
	return u
}

/********** comparison **********/

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionClear  = "clear"
)

type ComparisonResult struct {
	Action  string           `json:"action"`
	List    []ComparisonItem `json:"comparison_list"`
	Message string           `json:"message"`
}

func (m *Manager) Comparison(s Snapshot, action, slug, name string) (ComparisonResult, Diff, error) {
	list := decodeComparison(s[ComparisonList])
	var msg string

	switch action {
	case ActionAdd:
		if slug == "" {
			return ComparisonResult{}, nil, reject(ErrInvalidPayload, "Missing hotel_slug")
		}
		if indexOfSlug(list, slug) >= 0 {
			msg = name + " is already in comparison list"
			break
		}
		list = append(list, ComparisonItem{Slug: slug, Name: name, AddedAt: formatTime(m.now())})
		if len(list) > maxComparisonList {
			list = list[len(list)-maxComparisonList:]
		}
		msg = "Added " + name + " to comparison list"
	case ActionRemove:
		if slug == "" {
			return ComparisonResult{}, nil, reject(ErrInvalidPayload, "Missing hotel_slug")
		}
		kept := list[:0:0]
		for _, it := range list {
			if it.Slug != slug {
				kept = append(kept, it)
			}
		}
		list = kept
		msg = "Removed " + name + " from comparison list"
	case ActionClear:
		list = []ComparisonItem{}
		msg = "Cleared comparison list"
	default:
		return ComparisonResult{}, nil, reject(ErrInvalidAction, "Invalid action")
	}

	var d Diff
	d.set(ComparisonList, encodeJSON(list))
	return ComparisonResult{Action: action, List: list, Message: msg}, d, nil
}

func indexOfSlug(list []ComparisonItem, slug string) int {
	for i, it := range list {
		if it.Slug == slug {
			return i
		}
	}
	return -1
}

/********** booking drafts **********/

var bookingRequired = []string{"check_in", "check_out", "guests"}

// SaveBooking validates and stamps a draft; the object is stored as given
// plus saved_at and expires_at.
func (m *Manager) SaveBooking(body []byte) (Diff, error) {
	payload, ok := decodeObject(body)
	if !ok {
		return nil, reject(ErrInvalidPayload, "Invalid JSON data")
	}
	for _, k := range bookingRequired {
		if _, ok := payload[k]; !ok {
			return nil, reject(ErrInvalidPayload, "Missing required fields")
		}
	}
	now := m.now()
	payload["saved_at"] = formatTime(now)
	payload["expires_at"] = formatTime(now.Add(BookingTTL))

	var d Diff
	d.set(BookingFormData, encodeJSON(payload))
	return d, nil
}

type BookingResult struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// GetBooking returns the stored draft. A draft past expires_at is reported
// as expired and removed; absent or unreadable drafts yield a nil payload.
func (m *Manager) GetBooking(s Snapshot) (BookingResult, Diff) {
	raw, ok := s.Get(BookingFormData)
	if !ok || raw == "" {
		return BookingResult{Status: StatusSuccess}, nil
	}
	payload, ok := decodeObject([]byte(raw))
	if !ok {
		return BookingResult{Status: StatusSuccess}, nil
	}
	// A missing, null or empty expires_at means the draft never expires.
	if v, has := payload["expires_at"]; has && v != nil && v != "" {
		str, isStr := v.(string)
		if !isStr {
			return BookingResult{Status: StatusSuccess}, nil
		}
		exp, ok := parseTime(str)
		if !ok {
			return BookingResult{Status: StatusSuccess}, nil
		}
		if m.now().After(exp) {
			var d Diff
			d.del(BookingFormData)
			return BookingResult{Status: StatusExpired}, d
		}
	}
	return BookingResult{Status: StatusSuccess, Data: payload}, nil
}

/********** cookie consent **********/

const ConsentAll = "all"

var consentKeys = map[string]string{
	"essential": CookieConsentEssential,
	"analytics": CookieConsentAnalytics,
	"marketing": CookieConsentMarketing,
}

type ConsentResult struct {
	Type    string `json:"consent_type"`
	Granted bool   `json:"granted"`
}

func (m *Manager) CookieConsent(typ string, granted bool) (ConsentResult, Diff) {
	if typ == "" {
		typ = ConsentAll
	}
	v := boolString(granted)
	var d Diff
	if typ == ConsentAll {
		d.set(CookieConsentEssential, v)
		d.set(CookieConsentAnalytics, v)
		d.set(CookieConsentMarketing, v)
		d.set(CookieConsentGiven, formatTime(m.now()))
	} else if key, ok := consentKeys[typ]; ok {
		d.set(key, v)
	}
	return ConsentResult{Type: typ, Granted: granted}, d
}

type Consent struct {
	Essential bool    `json:"essential"`
	Analytics bool    `json:"analytics"`
	Marketing bool    `json:"marketing"`
	GivenAt   *string `json:"given_at"`
}

func (m *Manager) CheckConsent(s Snapshot) Consent {
	return Consent{
		Essential: s[CookieConsentEssential] == "true",
		Analytics: s[CookieConsentAnalytics] == "true",
		Marketing: s[CookieConsentMarketing] == "true",
		GivenAt:   optional(s, CookieConsentGiven),
	}
}
