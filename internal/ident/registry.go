package ident

import "fmt"

// CollisionError reports two different sources folding to one identifier.
type CollisionError struct {
	Ident  string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier %s derived from both %s and %s", e.Ident, e.First, e.Second)
}

// Registry remembers which source each emitted identifier came from.
// The zero value is ready to use.
type Registry struct {
	seen map[string]string
}

// Claim records that id is emitted for source. Claiming the same id for the
// same source again is allowed; a different source yields a *CollisionError
// and leaves the original claim in place.
func (r *Registry) Claim(id, source string) error {
	if r.seen == nil {
		r.seen = make(map[string]string)
	}
	if prev, ok := r.seen[id]; ok && prev != source {
		return &CollisionError{Ident: id, First: prev, Second: source}
	}
	r.seen[id] = source
	return nil
}

// Len returns the number of distinct identifiers claimed.
func (r *Registry) Len() int {
	return len(r.seen)
}
