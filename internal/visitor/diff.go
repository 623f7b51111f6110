package visitor

import "time"

type Op int

const (
	OpSet Op = iota
	OpDelete
)

func (o Op) String() string {
	if o == OpDelete {
		return "delete"
	}
	return "set"
}

// Change is one entry write or removal to be re-emitted with the response.
type Change struct {
	Op       Op
	Key      string
	Value    string
	MaxAge   time.Duration
	HTTPOnly bool
}

// Diff is the ordered list of changes one request produces.
type Diff []Change

func (d *Diff) set(key, value string) {
	e, ok := entries[key]
	if !ok {
		e = Entry{MaxAge: month}
	}
	*d = append(*d, Change{
		Op:       OpSet,
		Key:      key,
		Value:    value,
		MaxAge:   e.MaxAge,
		HTTPOnly: !e.ClientReadable,
	})
}

func (d *Diff) del(key string) {
	*d = append(*d, Change{Op: OpDelete, Key: key})
}

// Snapshot is the client state as received with one request. It is never
// mutated; changes travel back as a Diff.
type Snapshot map[string]string

func (s Snapshot) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}
