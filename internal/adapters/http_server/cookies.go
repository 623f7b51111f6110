package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotel_site/internal/adapters/observability"
	"hotel_site/internal/visitor"
)

// CookieOptions are the attributes shared by every visitor cookie.
type CookieOptions struct {
	Secure bool
}

// encodeCookieValue percent-encodes v so JSON values survive the cookie
// grammar. The result decodes with JavaScript's decodeURIComponent.
func encodeCookieValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func decodeCookieValue(v string) string {
	if out, err := url.PathUnescape(v); err == nil {
		return out
	}
	return v
}

// snapshotFromRequest collects the visitor entries the request carries.
func snapshotFromRequest(r *http.Request) visitor.Snapshot {
	s := visitor.Snapshot{}
	for _, c := range r.Cookies() {
		if _, known := visitor.EntryFor(c.Name); !known {
			continue
		}
		s[c.Name] = decodeCookieValue(c.Value)
	}
	return s
}

// applyDiff emits d as Set-Cookie headers. It must run before the body is
// written.
func applyDiff(w http.ResponseWriter, e visitor.Endpoint, d visitor.Diff, opts CookieOptions, now time.Time) {
	for _, ch := range d {
		c := &http.Cookie{
			Name:     ch.Key,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
			Secure:   opts.Secure,
		}
		switch ch.Op {
		case visitor.OpDelete:
			c.MaxAge = -1
			c.Expires = time.Unix(0, 0)
		default:
			c.Value = encodeCookieValue(ch.Value)
			c.MaxAge = int(ch.MaxAge / time.Second)
			c.Expires = now.Add(ch.MaxAge).UTC()
			c.HttpOnly = ch.HTTPOnly
		}
		http.SetCookie(w, c)
		observability.ObserveVisitor(e.String(), ch.Op.String())
	}
}
