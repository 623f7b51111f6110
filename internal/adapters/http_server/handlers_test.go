package httpserver_test

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpserver "hotel_site/internal/adapters/http_server"
	"hotel_site/internal/domain"
	"hotel_site/internal/visitor"
)

// ---- fakes ----

type fakeResolver struct {
	hotels []domain.Hotel
	err    error
}

func (f *fakeResolver) find(slug string) (domain.Hotel, bool) {
	for _, h := range f.hotels {
		if h.Slug == slug {
			return h, true
		}
	}
	return domain.Hotel{}, false
}

func (f *fakeResolver) Resolve(ctx context.Context, slug, preferred string) (domain.HomePage, error) {
	if f.err != nil {
		return domain.HomePage{}, f.err
	}
	if slug != "" {
		h, ok := f.find(slug)
		if !ok {
			return domain.HomePage{}, domain.ErrNotFound
		}
		return domain.HomePage{Hotel: h, AllHotels: f.hotels, Explicit: true}, nil
	}
	if h, ok := f.find(preferred); ok {
		return domain.HomePage{Hotel: h, AllHotels: f.hotels}, nil
	}
	if len(f.hotels) == 0 {
		return domain.HomePage{}, domain.ErrEmptyCatalog
	}
	return domain.HomePage{Hotel: f.hotels[0], AllHotels: f.hotels}, nil
}

func (f *fakeResolver) ActiveHotels(ctx context.Context) ([]domain.Hotel, error) {
	return f.hotels, f.err
}

// ---- harness ----

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type client struct {
	t   *testing.T
	h   http.Handler
	jar map[string]string
}

func newClient(t *testing.T, r httpserver.Resolver) *client {
	t.Helper()
	return newClientWith(t, r, httpserver.CookieOptions{})
}

func newClientWith(t *testing.T, r httpserver.Resolver, opts httpserver.CookieOptions) *client {
	t.Helper()
	if r == nil {
		r = &fakeResolver{hotels: []domain.Hotel{
			{ID: 1, Slug: "mumbai-vile-parle", Name: "Orchid Mumbai", IsActive: true},
			{ID: 2, Slug: "delhi-connaught-place", Name: "Orchid Delhi", IsActive: true},
		}}
	}
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Q:       r,
		V:       visitor.NewManager(visitor.WithClock(func() time.Time { return now })),
		Cookies: opts,
	})
	return &client{t: t, h: srv.Mux(), jar: map[string]string{}}
}

// do sends one request carrying the jar and folds the response cookies back in.
func (c *client) do(method, target string, async bool, body string, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if async {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for k, v := range c.jar {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	rr := httptest.NewRecorder()
	c.h.ServeHTTP(rr, req)
	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.jar, ck.Name)
			continue
		}
		c.jar[ck.Name] = ck.Value
	}
	return rr
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, false, "", "")
}

func (c *client) api(method, target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		return c.do(method, target, true, "", "")
	}
	return c.do(method, target, true, form.Encode(), "application/x-www-form-urlencoded")
}

func (c *client) value(name string) string {
	v, err := url.PathUnescape(c.jar[name])
	if err != nil {
		c.t.Fatalf("cookie %s not decodable: %v", name, err)
	}
	return v
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("body is not JSON: %v (%s)", err, rr.Body.String())
	}
	return out
}

// ---- pages ----

func TestHome_BySlugTracksRecentAndVisits(t *testing.T) {
	c := newClient(t, nil)

	rr := c.get("/mumbai-vile-parle/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Orchid Mumbai") {
		t.Fatalf("page does not show the hotel")
	}
	if c.value(visitor.CurrentHotelSlug) != "mumbai-vile-parle" {
		t.Fatalf("current_hotel_slug = %q", c.value(visitor.CurrentHotelSlug))
	}
	first := c.value(visitor.FirstVisit)

	c.get("/delhi-connaught-place/")
	c.get("/")

	if got := c.value(visitor.RecentHotels); got != `["delhi-connaught-place","mumbai-vile-parle"]` {
		t.Fatalf("recent_hotels = %s", got)
	}
	if c.value(visitor.VisitCount) != "3" {
		t.Fatalf("visit_count = %s", c.value(visitor.VisitCount))
	}
	if c.value(visitor.FirstVisit) != first {
		t.Fatalf("first_visit changed")
	}
	// The bare root resolves through the stored preference.
	if c.value(visitor.PreferredHotelSlug) != "delhi-connaught-place" {
		t.Fatalf("preferred = %s", c.value(visitor.PreferredHotelSlug))
	}
}

func TestHome_CookieAttributes(t *testing.T) {
	c := newClient(t, nil)
	rr := c.get("/mumbai-vile-parle/?theme_preference=dark")

	byName := map[string]*http.Cookie{}
	for _, ck := range rr.Result().Cookies() {
		byName[ck.Name] = ck
	}
	if ck := byName[visitor.CurrentHotelSlug]; ck == nil || ck.HttpOnly || ck.MaxAge != 24*60*60 {
		t.Fatalf("current_hotel_slug should be script-readable for a day: %+v", ck)
	}
	if ck := byName[visitor.PreferredHotelSlug]; ck == nil || !ck.HttpOnly || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("preferred_hotel_slug attributes: %+v", ck)
	}
	if ck := byName[visitor.ThemePreference]; ck == nil || ck.Value != "dark" {
		t.Fatalf("theme override not written: %+v", ck)
	}
	if _, ok := byName[visitor.LanguagePreference]; ok {
		t.Fatalf("absent override must not be written")
	}
}

func TestHome_SecureCookiesFollowOptions(t *testing.T) {
	for _, secure := range []bool{true, false} {
		c := newClientWith(t, nil, httpserver.CookieOptions{Secure: secure})
		cookies := c.get("/mumbai-vile-parle/").Result().Cookies()
		if len(cookies) == 0 {
			t.Fatalf("secure=%v: no cookies written", secure)
		}
		for _, ck := range cookies {
			if ck.Secure != secure {
				t.Fatalf("secure=%v: cookie %s has Secure=%v", secure, ck.Name, ck.Secure)
			}
		}

		// Deletions carry the same attribute so browsers accept them.
		rr := c.api(http.MethodPost, "/api/clear-preferences/", url.Values{})
		for _, ck := range rr.Result().Cookies() {
			if ck.Secure != secure {
				t.Fatalf("secure=%v: deletion of %s has Secure=%v", secure, ck.Name, ck.Secure)
			}
		}
	}
}

func TestHome_MalformedRecentIsReset(t *testing.T) {
	c := newClient(t, nil)
	c.jar[visitor.RecentHotels] = "not-json"
	c.jar[visitor.VisitCount] = "lots"

	if rr := c.get("/delhi-connaught-place/"); rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if got := c.value(visitor.RecentHotels); got != `["delhi-connaught-place"]` {
		t.Fatalf("recent_hotels = %s", got)
	}
	if c.value(visitor.VisitCount) != "1" {
		t.Fatalf("visit_count = %s", c.value(visitor.VisitCount))
	}
}

func TestHome_UnknownSlugIs404(t *testing.T) {
	c := newClient(t, nil)
	rr := c.get("/nowhere/")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
	if len(c.jar) != 0 {
		t.Fatalf("a 404 must not write state, got %v", c.jar)
	}
}

func TestHome_EmptyCatalogPlaceholder(t *testing.T) {
	c := newClient(t, &fakeResolver{})
	rr := c.get("/")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "No hotels available") {
		t.Fatalf("expected placeholder, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestHome_AppendsSlash(t *testing.T) {
	c := newClient(t, nil)
	rr := c.get("/mumbai-vile-parle")
	if rr.Code != http.StatusMovedPermanently || rr.Header().Get("Location") != "/mumbai-vile-parle/" {
		t.Fatalf("expected redirect, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestHotelList_BadgesAndActivity(t *testing.T) {
	c := newClient(t, nil)
	c.get("/delhi-connaught-place/")

	rr := c.get("/hotels/list/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if strings.Count(rr.Body.String(), "Recently viewed") != 1 {
		t.Fatalf("expected one recent badge:\n%s", rr.Body.String())
	}
	if c.value(visitor.LastActivity) == "" {
		t.Fatalf("last_activity not written")
	}
}

// ---- visitor API ----

func TestAPI_RequiresAsyncMarkerAndVerb(t *testing.T) {
	c := newClient(t, nil)

	rr := c.do(http.MethodPost, "/api/set-preference/", false, "type=theme&value=dark", "application/x-www-form-urlencoded")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	body := decode(t, rr)
	if body["status"] != "error" || body["message"] != "Invalid request" {
		t.Fatalf("body %v", body)
	}
	if len(c.jar) != 0 {
		t.Fatalf("rejected call wrote state: %v", c.jar)
	}

	rr = c.api(http.MethodGet, "/api/save-booking/", nil)
	if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Invalid request method" {
		t.Fatalf("wrong verb: %d %s", rr.Code, rr.Body.String())
	}
}

func TestAPI_ClearPreferencesRedirectsPlainCalls(t *testing.T) {
	c := newClient(t, nil)
	rr := c.do(http.MethodPost, "/api/clear-preferences/", false, "", "")
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestAPI_SetPreferenceAndUserData(t *testing.T) {
	c := newClient(t, nil)

	rr := c.api(http.MethodPost, "/api/set-preference/", url.Values{"type": {"newsletter"}, "value": {"yes"}})
	body := decode(t, rr)
	if body["status"] != "success" || body["type"] != "newsletter" || body["value"] != "yes" {
		t.Fatalf("body %v", body)
	}
	if c.value(visitor.NewsletterSubscribed) != "false" {
		t.Fatalf("newsletter should coerce to false, got %s", c.value(visitor.NewsletterSubscribed))
	}
	c.api(http.MethodPost, "/api/set-preference/", url.Values{"type": {"theme"}, "value": {"dark"}})

	data := decode(t, c.api(http.MethodGet, "/api/get-user-data/", nil))["data"].(map[string]any)
	if data["theme"] != "dark" || data["language"] != "en" || data["visit_count"] != float64(0) {
		t.Fatalf("user data %v", data)
	}
	if recent, ok := data["recent_hotels"].([]any); !ok || len(recent) != 0 {
		t.Fatalf("recent_hotels default %v", data["recent_hotels"])
	}
}

func TestAPI_ClearPreferencesRemovesExactlyFive(t *testing.T) {
	c := newClient(t, nil)
	c.get("/mumbai-vile-parle/?theme_preference=dark&language_preference=hi")
	c.api(http.MethodPost, "/api/set-preference/", url.Values{"type": {"newsletter"}, "value": {"true"}})
	c.do(http.MethodPost, "/api/save-booking/", true, `{"check_in":"a","check_out":"b","guests":1}`, "application/json")

	rr := c.api(http.MethodPost, "/api/clear-preferences/", nil)
	if decode(t, rr)["status"] != "success" {
		t.Fatalf("body %s", rr.Body.String())
	}
	var deleted []string
	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge < 0 {
			deleted = append(deleted, ck.Name)
		}
	}
	if len(deleted) != 5 {
		t.Fatalf("expected 5 deletions, got %v", deleted)
	}
	for _, keep := range []string{visitor.VisitCount, visitor.CurrentHotelSlug, visitor.FirstVisit, visitor.BookingFormData} {
		if _, ok := c.jar[keep]; !ok {
			t.Fatalf("%s should survive", keep)
		}
	}
}

func TestAPI_ComparisonFlow(t *testing.T) {
	c := newClient(t, nil)
	for _, s := range []string{"a", "b", "c", "d"} {
		c.api(http.MethodPost, "/api/set-comparison/", url.Values{"action": {"add"}, "hotel_slug": {s}, "hotel_name": {"Hotel " + s}})
	}
	var list []visitor.ComparisonItem
	if err := json.Unmarshal([]byte(c.value(visitor.ComparisonList)), &list); err != nil {
		t.Fatalf("stored list: %v", err)
	}
	if len(list) != 3 || list[0].Slug != "b" || list[2].Slug != "d" {
		t.Fatalf("list %+v", list)
	}

	before := c.jar[visitor.ComparisonList]
	rr := c.api(http.MethodPost, "/api/set-comparison/", url.Values{"action": {"sort"}})
	if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Invalid action" {
		t.Fatalf("invalid action: %d %s", rr.Code, rr.Body.String())
	}
	if len(rr.Result().Cookies()) != 0 || c.jar[visitor.ComparisonList] != before {
		t.Fatalf("invalid action must not write")
	}

	rr = c.api(http.MethodPost, "/api/set-comparison/", url.Values{"action": {"clear"}})
	body := decode(t, rr)
	if body["action"] != "clear" || len(body["comparison_list"].([]any)) != 0 {
		t.Fatalf("clear: %v", body)
	}
}

func TestAPI_BookingRoundTrip(t *testing.T) {
	c := newClient(t, nil)

	rr := c.do(http.MethodPost, "/api/save-booking/", true,
		`{"check_in":"2025-01-01","check_out":"2025-01-03","guests":2,"room":"deluxe"}`, "application/json")
	body := decode(t, rr)
	if body["status"] != "success" || body["expires_in"] != "24 hours" {
		t.Fatalf("save: %v", body)
	}

	got := decode(t, c.api(http.MethodGet, "/api/get-booking/", nil))
	data, ok := got["data"].(map[string]any)
	if got["status"] != "success" || !ok {
		t.Fatalf("get: %v", got)
	}
	if data["check_in"] != "2025-01-01" || data["guests"] != float64(2) || data["room"] != "deluxe" {
		t.Fatalf("payload %v", data)
	}
	if data["saved_at"] == nil || data["expires_at"] == nil {
		t.Fatalf("timestamps missing: %v", data)
	}

	rr = c.do(http.MethodPost, "/api/save-booking/", true, `{"check_in":"2025-01-01"}`, "application/json")
	if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Missing required fields" {
		t.Fatalf("missing fields: %d %s", rr.Code, rr.Body.String())
	}
	rr = c.do(http.MethodPost, "/api/save-booking/", true, `[1,2]`, "application/json")
	if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Invalid JSON data" {
		t.Fatalf("bad json: %d %s", rr.Code, rr.Body.String())
	}
}

func TestAPI_SaveBookingRejectsBadBodies(t *testing.T) {
	valid := `{"check_in":"2025-01-01","check_out":"2025-01-03","guests":2}`
	for name, body := range map[string]string{
		"oversized":     `{"check_in":"2025-01-01","check_out":"2025-01-03","guests":2,"notes":"` + strings.Repeat("x", visitor.MaxBodyBytes) + `"}`,
		"trailing data": valid + ` trailing-junk`,
		"two objects":   valid + valid,
	} {
		t.Run(name, func(t *testing.T) {
			c := newClient(t, nil)
			rr := c.do(http.MethodPost, "/api/save-booking/", true, body, "application/json")
			if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Invalid JSON data" {
				t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
			}
			if _, ok := c.jar[visitor.BookingFormData]; ok {
				t.Fatalf("rejected booking was stored")
			}
		})
	}
}

func TestAPI_FormBodiesParsedDuringAdmission(t *testing.T) {
	c := newClient(t, nil)

	rr := c.do(http.MethodPost, "/api/set-preference/", true, "type=theme&value=%zz", "application/x-www-form-urlencoded")
	if rr.Code != http.StatusBadRequest || decode(t, rr)["message"] != "Invalid request" {
		t.Fatalf("malformed form: %d %s", rr.Code, rr.Body.String())
	}
	if len(c.jar) != 0 {
		t.Fatalf("malformed form wrote state: %v", c.jar)
	}

	big := url.Values{"type": {"theme"}, "value": {strings.Repeat("d", visitor.MaxBodyBytes)}}
	rr = c.api(http.MethodPost, "/api/set-preference/", big)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("oversized form: %d", rr.Code)
	}

	// Multipart posts are read like urlencoded ones.
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("type", "language")
	_ = mw.WriteField("value", "hi")
	_ = mw.Close()
	rr = c.do(http.MethodPost, "/api/set-preference/", true, buf.String(), mw.FormDataContentType())
	if body := decode(t, rr); body["status"] != "success" || body["value"] != "hi" {
		t.Fatalf("multipart: %v", body)
	}
	if c.value(visitor.LanguagePreference) != "hi" {
		t.Fatalf("language not stored: %v", c.jar)
	}
}

func TestAPI_ConsentUnknownTypeWritesNothing(t *testing.T) {
	c := newClient(t, nil)
	rr := c.api(http.MethodPost, "/api/cookie-consent/", url.Values{"type": {"telemetry"}, "granted": {"true"}})
	body := decode(t, rr)
	if body["status"] != "success" || body["consent_type"] != "telemetry" || body["granted"] != true {
		t.Fatalf("body %v", body)
	}
	if len(c.jar) != 0 {
		t.Fatalf("unknown consent type wrote state: %v", c.jar)
	}
}

func TestAPI_ExpiredBookingIsRemoved(t *testing.T) {
	c := newClient(t, nil)
	c.jar[visitor.BookingFormData] = url.PathEscape(`{"check_in":"x","check_out":"y","guests":1,"expires_at":"2020-01-01T00:00:00Z"}`)

	got := decode(t, c.api(http.MethodGet, "/api/get-booking/", nil))
	if got["status"] != "expired" || got["data"] != nil {
		t.Fatalf("expected expired, got %v", got)
	}
	if _, ok := c.jar[visitor.BookingFormData]; ok {
		t.Fatalf("expired draft still stored")
	}
	got = decode(t, c.api(http.MethodGet, "/api/get-booking/", nil))
	if got["status"] != "success" || got["data"] != nil {
		t.Fatalf("second read: %v", got)
	}
}

func TestAPI_ConsentFlow(t *testing.T) {
	c := newClient(t, nil)

	body := decode(t, c.api(http.MethodPost, "/api/cookie-consent/", url.Values{}))
	if body["consent_type"] != "all" || body["granted"] != true {
		t.Fatalf("defaults: %v", body)
	}
	consent := decode(t, c.api(http.MethodGet, "/api/check-consent/", nil))["consent"].(map[string]any)
	if consent["essential"] != true || consent["analytics"] != true || consent["marketing"] != true || consent["given_at"] == nil {
		t.Fatalf("consent %v", consent)
	}

	rr := c.api(http.MethodPost, "/api/cookie-consent/", url.Values{"type": {"marketing"}, "granted": {"no"}})
	if n := len(rr.Result().Cookies()); n != 1 {
		t.Fatalf("single type should write one entry, wrote %d", n)
	}
	consent = decode(t, c.api(http.MethodGet, "/api/check-consent/", nil))["consent"].(map[string]any)
	if consent["marketing"] != false || consent["analytics"] != true {
		t.Fatalf("consent %v", consent)
	}
}

func TestHealthz(t *testing.T) {
	c := newClient(t, nil)
	if rr := c.get("/healthz"); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz %d %q", rr.Code, rr.Body.String())
	}
}
