package pathbus

import "context"

// OnceToken represents a pending one-shot subscription created by Bus.Once.
// It resolves with the Args of whichever Publish call first matches the
// topic, then unsubscribes itself.
type OnceToken struct {
	handle Handle
	ch     chan Args
}

func newOnceToken(handle Handle) *OnceToken {
	return &OnceToken{handle: handle, ch: make(chan Args, 1)}
}

// Handle returns the identity of the underlying subscription, so a caller
// can Unsubscribe before it ever fires.
func (t *OnceToken) Handle() Handle {
	return t.handle
}

// Wait blocks until the subscription fires or ctx is done, whichever comes
// first. A context cancellation leaves the underlying subscription in
// place: callers that no longer want it delivered should Unsubscribe
// explicitly using Handle().
func (t *OnceToken) Wait(ctx context.Context) (Args, error) {
	select {
	case args := <-t.ch:
		return args, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *OnceToken) resolve(args Args) {
	select {
	case t.ch <- args:
	default:
		// Already resolved (or nobody is listening yet but a slot is
		// reserved); FireOnce guarantees at most one delivery reaches here.
	}
}
