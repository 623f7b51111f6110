package visitor

// Lookup returns the last change recorded for key.
func (d Diff) Lookup(key string) (Change, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Key == key {
			return d[i], true
		}
	}
	return Change{}, false
}

// Apply returns the snapshot the client holds once d is applied to s.
func (s Snapshot) Apply(d Diff) Snapshot {
	out := make(Snapshot, len(s)+len(d))
	for k, v := range s {
		out[k] = v
	}
	for _, c := range d {
		switch c.Op {
		case OpSet:
			out[c.Key] = c.Value
		case OpDelete:
			delete(out, c.Key)
		}
	}
	return out
}
