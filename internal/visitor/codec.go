package visitor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Structured entries travel as JSON text. Every decoder here substitutes the
// documented default on malformed input instead of failing.

func decodeRecent(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, slug := range list {
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

// pushRecent moves slug to the front and caps the list.
func pushRecent(list []string, slug string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, slug)
	for _, s := range list {
		if s != slug {
			out = append(out, s)
		}
	}
	if len(out) > maxRecentHotels {
		out = out[:maxRecentHotels]
	}
	return out
}

type ComparisonItem struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	AddedAt string `json:"added_at"`
}

func decodeComparison(raw string) []ComparisonItem {
	var list []ComparisonItem
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []ComparisonItem{}
	}
	return list
}

// decodeObject parses exactly one JSON object, keeping numbers in their
// original form. Anything after the object makes the input malformed.
func decodeObject(raw []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return obj, true
}

// decodeCount reads a visit counter. Values the next increment would
// overflow count as unreadable.
func decodeCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n >= math.MaxInt {
		return 0
	}
	return n
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC 3339 with or without fractional seconds, and naive
// timestamps which are read as UTC.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func optional(s Snapshot, key string) *string {
	if v, ok := s.Get(key); ok {
		return &v
	}
	return nil
}
