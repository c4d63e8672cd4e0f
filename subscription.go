package pathbus

import "sync"

// Subscription is one registered (pattern, Handler) pair. The exported
// surface is a read-only view; all mutable state - the compiled Pattern,
// the memo cache, the once flag - stays unexported and is only ever touched
// by the registry and dispatcher that own it.
type Subscription struct {
	handle  Handle
	pattern *Pattern
	handler Handler
	once    bool

	memoMu sync.Mutex
	memo   map[string]MatchResult
}

// Handle returns the identity returned by Subscribe.
func (s *Subscription) Handle() Handle {
	return s.handle
}

// Pattern returns the original pattern text the subscription was created
// with.
func (s *Subscription) Pattern() string {
	return s.pattern.String()
}

// Once reports whether this subscription auto-unsubscribes after its first
// matching delivery.
func (s *Subscription) Once() bool {
	return s.once
}

func newSubscription(pattern *Pattern, handler Handler, once bool) *Subscription {
	return &Subscription{
		handle:  newHandle(),
		pattern: pattern,
		handler: handler,
		once:    once,
	}
}

// matchTopic runs topic against the subscription's compiled pattern,
// consulting and then populating a per-subscription memo cache. The memo
// is owned exclusively by this
// Subscription: concurrent Publish calls against the same subscription
// serialize briefly here, never across subscriptions, so the per-topic
// lookup stays cheap without contending the registry-wide lock.
func (s *Subscription) matchTopic(topic string, memoLimit int) MatchResult {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()

	if s.memo == nil {
		s.memo = make(map[string]MatchResult)
	}
	if cached, ok := s.memo[topic]; ok {
		return cached
	}

	result := s.pattern.Match(topic)

	if memoLimit <= 0 || len(s.memo) < memoLimit {
		s.memo[topic] = result
	}

	return result
}

// SubscribeOption configures a single Subscribe call.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	once bool
}

// FireOnce marks the subscription to fire at most once: the subscription is
// removed from the registry immediately after its handler is dispatched for
// the first matching Publish. Prefer Bus.Once for the common
// "wait for the next matching event" case; this option is for callers that
// already have a Handler to run exactly once as a side effect.
func FireOnce() SubscribeOption {
	return func(c *subscribeConfig) {
		c.once = true
	}
}
