package pathbus

import "github.com/segmentio/ksuid"

// Handle identifies one subscription. Handles are backed by a KSUID rather
// than a bare pointer, which keeps them comparable, loggable, and naturally
// ordered by creation time, following the same identity scheme this
// codebase's ancestry uses for node and message identity.
type Handle struct {
	id ksuid.KSUID
}

func newHandle() Handle {
	return Handle{id: ksuid.New()}
}

// String renders the handle as its KSUID text form.
func (h Handle) String() string {
	return h.id.String()
}

// IsZero reports whether h is the zero Handle (never returned by a
// successful Subscribe; Subscribe returns it only alongside an error).
func (h Handle) IsZero() bool {
	return h.id.IsNil()
}
