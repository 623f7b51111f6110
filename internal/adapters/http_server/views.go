package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"hotel_site/internal/adapters/htmlsanitize"
	"hotel_site/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"rich":  htmlsanitize.SanitizeToHTML,
	"deref": deref,
	"price": price,
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"lines": func(s string) []string { return strings.Split(s, "\n") },
	"stamp": stamp,
}).ParseFS(templatesFS, "templates/*.html"))

type homeView struct {
	Page         domain.HomePage
	RecentHotels []string
	IsFirstVisit bool
	VisitCount   int
}

type listView struct {
	Hotels      []domain.Hotel
	RecentSlugs map[string]bool
	VisitCount  int
	FirstVisit  *string
	LastVisit   *string
}

// render executes the named template into a buffer so a failure never
// leaves a half-written page.
func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func price(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("₹%.2f", *p)
}

// stamp shows a stored visit timestamp as a date, or the raw value when it
// does not parse.
func stamp(p *string) string {
	if p == nil {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, *p); err == nil {
		return t.Format("Jan 2, 2006 15:04")
	}
	return *p
}
