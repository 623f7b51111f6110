package visitor_test

import (
	"errors"
	"net/http"
	"testing"

	"hotel_site/internal/visitor"
)

func TestAdmit(t *testing.T) {
	cases := []struct {
		name     string
		endpoint visitor.Endpoint
		method   string
		async    bool
		wantErr  bool
	}{
		{"render needs no marker", visitor.EndpointRender, http.MethodGet, false, false},
		{"preference ok", visitor.EndpointSetPreference, http.MethodPost, true, false},
		{"preference without marker", visitor.EndpointSetPreference, http.MethodPost, false, true},
		{"preference wrong verb", visitor.EndpointSetPreference, http.MethodGet, true, true},
		{"booking read via POST", visitor.EndpointGetBooking, http.MethodPost, true, true},
		{"consent check ok", visitor.EndpointCheckConsent, http.MethodGet, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := visitor.Admit(tc.endpoint, tc.method, tc.async)
			if tc.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
			if err != nil && !errors.Is(err, visitor.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestAdmit_ClearPreferencesRedirects(t *testing.T) {
	p, err := visitor.Admit(visitor.EndpointClearPreferences, http.MethodPost, false)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if p.RedirectTo != "/" {
		t.Fatalf("expected redirect to /, got %q", p.RedirectTo)
	}
}

func TestAdmit_SaveBookingMessage(t *testing.T) {
	_, err := visitor.Admit(visitor.EndpointSaveBooking, http.MethodGet, true)
	var rej *visitor.Rejection
	if !errors.As(err, &rej) || rej.Message != "Invalid request method" {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestAdmit_UnknownEndpoint(t *testing.T) {
	if _, err := visitor.Admit("nope", http.MethodGet, true); err == nil {
		t.Fatalf("expected error for unknown endpoint")
	}
}

func TestAdmit_DeclaredBodies(t *testing.T) {
	cases := []struct {
		endpoint visitor.Endpoint
		method   string
		want     visitor.Body
		message  string
	}{
		{visitor.EndpointSetPreference, http.MethodPost, visitor.BodyForm, "Invalid request"},
		{visitor.EndpointComparison, http.MethodPost, visitor.BodyForm, "Invalid request"},
		{visitor.EndpointCookieConsent, http.MethodPost, visitor.BodyForm, "Invalid request"},
		{visitor.EndpointSaveBooking, http.MethodPost, visitor.BodyJSON, "Invalid JSON data"},
		{visitor.EndpointCheckConsent, http.MethodGet, visitor.BodyNone, "Invalid request"},
	}
	for _, tc := range cases {
		p, err := visitor.Admit(tc.endpoint, tc.method, true)
		if err != nil {
			t.Fatalf("%s: %v", tc.endpoint, err)
		}
		if p.Body != tc.want {
			t.Fatalf("%s: body %v, want %v", tc.endpoint, p.Body, tc.want)
		}
		var rej *visitor.Rejection
		if err := p.RejectBody(); !errors.As(err, &rej) || !errors.Is(err, visitor.ErrInvalidPayload) || rej.Message != tc.message {
			t.Fatalf("%s: unexpected body rejection %v", tc.endpoint, err)
		}
	}
}
