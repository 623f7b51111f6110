package httpserver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_site/internal/adapters/observability"
	"hotel_site/internal/visitor"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routeOf(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			l.Info().
				Str("route", routeOf(r)).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Visitor endpoint admission ----

const (
	asyncHeader = "X-Requested-With"
	asyncValue  = "XMLHttpRequest"
)

func isAsync(r *http.Request) bool { return r.Header.Get(asyncHeader) == asyncValue }

// Admit applies the endpoint's admission policy before the handler runs:
// verb and async marker first, then the body in its declared shape.
// Rejected calls get the policy's redirect, or a JSON error body with 400.
func Admit(e visitor.Endpoint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := visitor.Admit(e, r.Method, isAsync(r))
			if err == nil {
				r, err = admitBody(w, r, p)
			}
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}
			noteRejection(e, err)
			if p.RedirectTo != "" {
				http.Redirect(w, r, p.RedirectTo, http.StatusFound)
				return
			}
			writeAPIError(w, err)
		})
	}
}

type rawBodyKey struct{}

// admitBody reads the request body the way p declares it. Forms land in
// r.PostForm; JSON bodies are kept verbatim for rawBody.
func admitBody(w http.ResponseWriter, r *http.Request, p visitor.Policy) (*http.Request, error) {
	switch p.Body {
	case visitor.BodyForm:
		r.Body = http.MaxBytesReader(w, r.Body, visitor.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return r, p.RejectBody()
		}
		if err := r.ParseMultipartForm(visitor.MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return r, p.RejectBody()
		}
	case visitor.BodyJSON:
		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, visitor.MaxBodyBytes))
		if err != nil {
			return r, p.RejectBody()
		}
		r = r.WithContext(context.WithValue(r.Context(), rawBodyKey{}, b))
	}
	return r, nil
}

// rawBody returns the JSON body captured during admission.
func rawBody(r *http.Request) []byte {
	b, _ := r.Context().Value(rawBodyKey{}).([]byte)
	return b
}

func noteRejection(e visitor.Endpoint, err error) {
	observability.ObserveRejection(e.String(), rejectionReason(err))
	log.Debug().Str("endpoint", e.String()).Err(err).Msg("visitor call rejected")
}

func rejectionReason(err error) string {
	var rj *visitor.Rejection
	if errors.As(err, &rj) {
		return strings.ReplaceAll(rj.Kind.Error(), " ", "_")
	}
	return "internal"
}
