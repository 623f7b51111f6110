package visitor

import (
	"fmt"
	"net/http"
)

type Endpoint string

const (
	EndpointRender           Endpoint = "render"
	EndpointHotelList        Endpoint = "hotel_list"
	EndpointSetPreference    Endpoint = "set_preference"
	EndpointClearPreferences Endpoint = "clear_preferences"
	EndpointUserData         Endpoint = "get_user_data"
	EndpointComparison       Endpoint = "set_comparison"
	EndpointSaveBooking      Endpoint = "save_booking"
	EndpointGetBooking       Endpoint = "get_booking"
	EndpointCookieConsent    Endpoint = "cookie_consent"
	EndpointCheckConsent     Endpoint = "check_consent"
)

// Body names the payload shape an endpoint reads. The body is read and
// bounded during admission; handlers never touch the raw request body.
type Body int

const (
	BodyNone Body = iota
	BodyForm
	BodyJSON
)

// MaxBodyBytes caps every admitted request body.
const MaxBodyBytes = 16 << 10

// Policy is the admission rule applied before an endpoint runs.
type Policy struct {
	Method string
	Async  bool // requires the async-call marker
	Body   Body

	// RedirectTo, when set, answers a rejected call with a redirect instead
	// of an error body.
	RedirectTo string
	Message    string
}

var policies = map[Endpoint]Policy{
	EndpointRender:    {Method: http.MethodGet},
	EndpointHotelList: {Method: http.MethodGet},

	EndpointSetPreference: {Method: http.MethodPost, Async: true, Body: BodyForm, Message: "Invalid request"},
	// A plain form post clears nothing and bounces back to the home page.
	EndpointClearPreferences: {Method: http.MethodPost, Async: true, RedirectTo: "/"},
	EndpointUserData:         {Method: http.MethodGet, Async: true, Message: "Invalid request"},
	EndpointComparison:       {Method: http.MethodPost, Async: true, Body: BodyForm, Message: "Invalid request"},
	EndpointSaveBooking:      {Method: http.MethodPost, Async: true, Body: BodyJSON, Message: "Invalid request method"},
	EndpointGetBooking:       {Method: http.MethodGet, Async: true, Message: "Invalid request"},
	EndpointCookieConsent:    {Method: http.MethodPost, Async: true, Body: BodyForm, Message: "Invalid request"},
	EndpointCheckConsent:     {Method: http.MethodGet, Async: true, Message: "Invalid request"},
}

// Check admits a call with the given verb and marker presence.
func (p Policy) Check(method string, async bool) error {
	if method != p.Method {
		return reject(ErrInvalidRequest, p.message())
	}
	if p.Async && !async {
		return reject(ErrInvalidRequest, p.message())
	}
	return nil
}

// RejectBody is the rejection for a body that cannot be read in the
// endpoint's declared shape.
func (p Policy) RejectBody() error {
	if p.Body == BodyJSON {
		return reject(ErrInvalidPayload, "Invalid JSON data")
	}
	return reject(ErrInvalidPayload, "Invalid request")
}

func (p Policy) message() string {
	if p.Message == "" {
		return "Invalid request"
	}
	return p.Message
}

func (e Endpoint) String() string { return string(e) }

// Admit looks up and checks the policy for e in one step.
func Admit(e Endpoint, method string, async bool) (Policy, error) {
	p, ok := policies[e]
	if !ok {
		return Policy{}, fmt.Errorf("visitor: no policy for endpoint %q", e)
	}
	return p, p.Check(method, async)
}
