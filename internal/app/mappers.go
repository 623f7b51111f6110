package app

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"hotel_site/internal/domain"
)

/********** alias registries (single source of truth) **********/

var hotelAliases = map[string][]string{
	"name":      {"name", "hotel_name", "title"},
	"slug":      {"slug", "hotel_slug", "code"},
	"tagline":   {"tagline", "subtitle", "headline"},
	"address":   {"address", "address.line", "full_address", "location.address"},
	"phone":     {"phone", "contact.phone", "telephone"},
	"email":     {"email", "contact.email", "reservations_email"},
	"thumbnail": {"thumbnail", "thumbnail_url", "preview_image", "main_image"},
}

var mainInfoAliases = map[string][]string{
	"title":       {"main_info.title", "intro.title"},
	"highlighted": {"main_info.highlighted_text", "main_info.highlight", "intro.highlight"},
	"description": {"main_info.description", "intro.description", "description"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// intFlexible: int from several paths (float64/int/string), else def.
func intFlexible(m map[string]any, def int, paths ...string) int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return def
}

// boolFlexible: bool from several paths (bool/"true"/"1"), else def.
func boolFlexible(m map[string]any, def bool, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return def
}

// objects returns the first []any of maps found under paths.
func objects(m map[string]any, paths ...string) []map[string]any {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, it := range raw {
			if obj, ok := it.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/src}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					if u, ok := t["url"].(string); ok && u != "" {
						out = append(out, u)
						continue
					}
					if u, ok := t["src"].(string); ok && u != "" {
						out = append(out, u)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '_' || r == '-' || unicode.IsSpace(r) || unicode.IsPunct(r):
			pendingDash = true
		}
	}
	return b.String()
}

/********** bundle mapper **********/

func mapBundle(p map[string]any) domain.HotelBundle {
	name := firstNonEmptyAlias(p, hotelAliases, "name")
	slug := firstNonEmptyAlias(p, hotelAliases, "slug")
	if slug == "" {
		slug = Slugify(name)
	}

	b := domain.HotelBundle{
		Hotel: domain.Hotel{
			Name:      name,
			Slug:      slug,
			Tagline:   firstNonEmptyAlias(p, hotelAliases, "tagline"),
			Address:   firstNonEmptyAlias(p, hotelAliases, "address"),
			Phone:     firstNonEmptyAlias(p, hotelAliases, "phone"),
			Email:     firstNonEmptyAlias(p, hotelAliases, "email"),
			Thumbnail: ptrStr(firstNonEmptyAlias(p, hotelAliases, "thumbnail")),
			IsActive:  boolFlexible(p, true, "is_active", "active"),
		},
	}

	if t := firstNonEmptyAlias(p, mainInfoAliases, "title"); t != "" {
		b.MainInfo = &domain.MainInfo{
			Title:           t,
			HighlightedText: firstNonEmptyAlias(p, mainInfoAliases, "highlighted"),
			Description:     firstNonEmptyAlias(p, mainInfoAliases, "description"),
		}
	}

	// Slide order must be unique per hotel; fall back to position.
	seenOrder := map[int]bool{}
	for i, o := range objects(p, "carousel", "carousel_slides", "slides") {
		order := intFlexible(o, i, "order", "position")
		for seenOrder[order] {
			order++
		}
		seenOrder[order] = true
		b.Slides = append(b.Slides, domain.CarouselSlide{
			Title:    lookupStr(o, "title"),
			Image:    firstNonEmptyAlias(o, map[string][]string{"img": {"image", "url", "src"}}, "img"),
			Order:    order,
			IsActive: boolFlexible(o, true, "is_active", "active"),
		})
	}

	for i, o := range objects(p, "cards") {
		b.Cards = append(b.Cards, domain.Card{
			Title:       lookupStr(o, "title"),
			Category:    domain.CardCategory(strings.ToLower(lookupStr(o, "category"))),
			Image:       lookupStr(o, "image"),
			Description: lookupStr(o, "description"),
			Order:       intFlexible(o, i, "order"),
			IsActive:    boolFlexible(o, true, "is_active"),
			ButtonText:  lookupStr(o, "button_text"),
			ButtonLink:  lookupStr(o, "button_link"),
		})
	}

	for i, o := range objects(p, "room_types", "rooms") {
		b.RoomTypes = append(b.RoomTypes, domain.RoomType{
			Name:          lookupStr(o, "name"),
			Image:         lookupStr(o, "image"),
			Description:   lookupStr(o, "description"),
			PricePerNight: getFloatFlexible(o, "price_per_night", "price", "rate"),
			IsAvailable:   boolFlexible(o, true, "is_available", "available"),
			Order:         intFlexible(o, i, "order"),
		})
	}

	// At most one section per type; the first one wins.
	seenSection := map[domain.SectionType]bool{}
	for _, o := range objects(p, "sections") {
		t := domain.SectionType(strings.ToLower(lookupStr(o, "section_type")))
		if t == "" || seenSection[t] {
			continue
		}
		seenSection[t] = true
		b.Sections = append(b.Sections, domain.SectionContent{
			Type:              t,
			Title:             lookupStr(o, "title"),
			Description:       lookupStr(o, "description"),
			Images:            firstSliceStrings(o, "images"),
			Button1Text:       orDefault(lookupStr(o, "button1_text"), "Know More"),
			Button1Link:       lookupStr(o, "button1_link"),
			Button2Text:       orDefault(lookupStr(o, "button2_text"), "Enquire Now"),
			Button2Link:       lookupStr(o, "button2_link"),
			OverlayTitle:      orDefault(lookupStr(o, "overlay_title"), "Need More Help?"),
			OverlayText:       orDefault(lookupStr(o, "overlay_text"), "Our team is available 24/7 to assist you with any queries."),
			OverlayButtonText: orDefault(lookupStr(o, "overlay_button_text"), "Contact Support"),
			OverlayButtonLink: lookupStr(o, "overlay_button_link"),
			IsActive:          boolFlexible(o, true, "is_active"),
		})
	}

	for i, o := range objects(p, "faqs") {
		b.FAQs = append(b.FAQs, domain.FAQ{
			Question: lookupStr(o, "question"),
			Answer:   lookupStr(o, "answer"),
			Order:    intFlexible(o, i, "order"),
			IsActive: boolFlexible(o, true, "is_active"),
		})
	}

	for _, o := range objects(p, "blog_posts", "posts") {
		post := domain.BlogPost{
			Title:       lookupStr(o, "title"),
			Excerpt:     lookupStr(o, "excerpt"),
			Content:     lookupStr(o, "content"),
			Image:       lookupStr(o, "image"),
			Category:    orDefault(lookupStr(o, "category"), "General"),
			IsPublished: boolFlexible(o, true, "is_published", "published"),
			Author:      ptrStr(lookupStr(o, "author")),
		}
		if d := lookupStr(o, "published_date"); d != "" {
			t, err := time.Parse("2006-01-02", d)
			if err != nil {
				log.Warn().Err(err).Str("context", "mapBundle").Str("date", d).Msg("bad published_date")
			}
			post.PublishedDate = t
		}
		if post.PublishedDate.IsZero() {
			post.PublishedDate = time.Now().UTC().Truncate(24 * time.Hour)
		}
		b.BlogPosts = append(b.BlogPosts, post)
	}

	return b
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
