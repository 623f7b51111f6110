package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_site/internal/domain"
	"hotel_site/internal/visitor"
)

// Resolver is the content read side the page handlers depend on.
type Resolver interface {
	Resolve(ctx context.Context, hotelSlug, preferredSlug string) (domain.HomePage, error)
	ActiveHotels(ctx context.Context) ([]domain.Hotel, error)
}

type Handlers struct {
	Q       Resolver
	V       *visitor.Manager
	Cookies CookieOptions

	// Ready, when set, is probed by /healthz.
	Ready func(ctx context.Context) error
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// apiError is the body every rejected visitor call answers with.
type apiError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	s.mux.Get("/", h.home)
	s.mux.Get("/hotels/list/", h.hotelList)
	s.mux.Get("/{slug}/", h.home)
	s.mux.Get("/{slug}", appendSlash)

	// Any verb reaches the handler so the admission policy decides the answer.
	s.mux.Route("/api", func(r chi.Router) {
		r.With(Admit(visitor.EndpointSetPreference)).HandleFunc("/set-preference/", h.setPreference)
		r.With(Admit(visitor.EndpointClearPreferences)).HandleFunc("/clear-preferences/", h.clearPreferences)
		r.With(Admit(visitor.EndpointUserData)).HandleFunc("/get-user-data/", h.userData)
		r.With(Admit(visitor.EndpointComparison)).HandleFunc("/set-comparison/", h.comparison)
		r.With(Admit(visitor.EndpointSaveBooking)).HandleFunc("/save-booking/", h.saveBooking)
		r.With(Admit(visitor.EndpointGetBooking)).HandleFunc("/get-booking/", h.getBooking)
		r.With(Admit(visitor.EndpointCookieConsent)).HandleFunc("/cookie-consent/", h.cookieConsent)
		r.With(Admit(visitor.EndpointCheckConsent)).HandleFunc("/check-consent/", h.checkConsent)
	})
}

func appendSlash(w http.ResponseWriter, r *http.Request) {
	u := *r.URL
	u.Path += "/"
	http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready(r.Context()); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			writeProblem(w, http.StatusServiceUnavailable, "Unavailable", err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeAPIError maps a visitor rejection to 400; anything else is a 500.
func writeAPIError(w http.ResponseWriter, err error) {
	var rj *visitor.Rejection
	if errors.As(err, &rj) {
		writeJSON(w, http.StatusBadRequest, apiError{Status: "error", Message: rj.Message})
		return
	}
	log.Error().Err(err).Msg("visitor call failed")
	writeJSON(w, http.StatusInternalServerError, apiError{Status: "error", Message: "Internal error"})
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write page failed")
	}
}

// queryOpt returns the query value for key, or nil when the key is absent.
func queryOpt(r *http.Request, key string) *string {
	vals, ok := r.URL.Query()[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

/********** pages **********/

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	snap := snapshotFromRequest(r)
	preferred, _ := snap.Get(visitor.PreferredHotelSlug)

	page, err := h.Q.Resolve(r.Context(), slug, preferred)
	switch {
	case errors.Is(err, domain.ErrEmptyCatalog):
		body, rerr := render("no_hotels.html", nil)
		if rerr != nil {
			log.Error().Err(rerr).Msg("render placeholder failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not render page")
			return
		}
		writeHTML(w, http.StatusOK, body)
		return
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("resolve hotel failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load hotel")
		return
	}

	res := h.V.Render(snap, visitor.RenderInput{
		Slug:     page.Hotel.Slug,
		Explicit: page.Explicit,
		Theme:    queryOpt(r, visitor.ThemePreference),
		Language: queryOpt(r, visitor.LanguagePreference),
	})
	body, err := render("index.html", homeView{
		Page:         page,
		RecentHotels: res.RecentHotels,
		IsFirstVisit: res.IsFirstVisit,
		VisitCount:   res.VisitCount,
	})
	if err != nil {
		log.Error().Err(err).Str("slug", page.Hotel.Slug).Msg("render home failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not render page")
		return
	}
	applyDiff(w, visitor.EndpointRender, res.Diff, h.Cookies, time.Now())
	writeHTML(w, http.StatusOK, body)
}

func (h *Handlers) hotelList(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ActiveHotels(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list hotels failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not list hotels")
		return
	}
	res := h.V.ListHotels(snapshotFromRequest(r))
	body, err := render("hotel_list.html", listView{
		Hotels:      hotels,
		RecentSlugs: res.RecentSlugs,
		VisitCount:  res.VisitCount,
		FirstVisit:  res.FirstVisit,
		LastVisit:   res.LastVisit,
	})
	if err != nil {
		log.Error().Err(err).Msg("render hotel list failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not render page")
		return
	}
	applyDiff(w, visitor.EndpointHotelList, res.Diff, h.Cookies, time.Now())
	writeHTML(w, http.StatusOK, body)
}

/********** visitor API **********/

// reply re-emits d and writes a 200 JSON body.
func (h *Handlers) reply(w http.ResponseWriter, e visitor.Endpoint, d visitor.Diff, body any) {
	applyDiff(w, e, d, h.Cookies, time.Now())
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) setPreference(w http.ResponseWriter, r *http.Request) {
	res, d := h.V.SetPreference(r.PostForm.Get("type"), r.PostForm.Get("value"))
	h.reply(w, visitor.EndpointSetPreference, d, struct {
		Status string `json:"status"`
		visitor.PreferenceResult
	}{visitor.StatusSuccess, res})
}

func (h *Handlers) clearPreferences(w http.ResponseWriter, r *http.Request) {
	h.reply(w, visitor.EndpointClearPreferences, h.V.ClearPreferences(), struct {
		Status string `json:"status"`
	}{visitor.StatusSuccess})
}

func (h *Handlers) userData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string           `json:"status"`
		Data   visitor.UserData `json:"data"`
	}{visitor.StatusSuccess, h.V.UserData(snapshotFromRequest(r))})
}

func (h *Handlers) comparison(w http.ResponseWriter, r *http.Request) {
	res, d, err := h.V.Comparison(snapshotFromRequest(r),
		r.PostForm.Get("action"), r.PostForm.Get("hotel_slug"), r.PostForm.Get("hotel_name"))
	if err != nil {
		noteRejection(visitor.EndpointComparison, err)
		writeAPIError(w, err)
		return
	}
	h.reply(w, visitor.EndpointComparison, d, struct {
		Status string `json:"status"`
		visitor.ComparisonResult
	}{visitor.StatusSuccess, res})
}

func (h *Handlers) saveBooking(w http.ResponseWriter, r *http.Request) {
	d, err := h.V.SaveBooking(rawBody(r))
	if err != nil {
		noteRejection(visitor.EndpointSaveBooking, err)
		writeAPIError(w, err)
		return
	}
	h.reply(w, visitor.EndpointSaveBooking, d, struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		ExpiresIn string `json:"expires_in"`
	}{visitor.StatusSuccess, "Booking data saved", "24 hours"})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	res, d := h.V.GetBooking(snapshotFromRequest(r))
	h.reply(w, visitor.EndpointGetBooking, d, res)
}

func (h *Handlers) cookieConsent(w http.ResponseWriter, r *http.Request) {
	typ := visitor.ConsentAll
	if v, ok := r.PostForm["type"]; ok && len(v) > 0 {
		typ = v[0]
	}
	granted := true
	if v, ok := r.PostForm["granted"]; ok && len(v) > 0 {
		granted = v[0] == "true"
	}
	res, d := h.V.CookieConsent(typ, granted)
	h.reply(w, visitor.EndpointCookieConsent, d, struct {
		Status string `json:"status"`
		visitor.ConsentResult
	}{visitor.StatusSuccess, res})
}

func (h *Handlers) checkConsent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status  string          `json:"status"`
		Consent visitor.Consent `json:"consent"`
	}{visitor.StatusSuccess, h.V.CheckConsent(snapshotFromRequest(r))})
}
