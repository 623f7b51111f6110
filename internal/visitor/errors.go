package visitor

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidAction  = errors.New("invalid action")
)

// Rejection carries the caller-facing message for a refused call.
type Rejection struct {
	Kind    error
	Message string
}

func (r *Rejection) Error() string { return r.Kind.Error() + ": " + r.Message }
func (r *Rejection) Unwrap() error { return r.Kind }

func reject(kind error, msg string) error {
	return &Rejection{Kind: kind, Message: msg}
}
