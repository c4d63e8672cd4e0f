package pathbus

import (
	"context"
	"sync"
)

// Bus is an independent publish/subscribe instance: its own subscription
// registry, dispatcher, and configuration. Most callers use the
// package-level functions, which operate on a lazily-initialized process
// default; New is for callers that want an isolated instance (tests,
// multiple independent domains in one process).
type Bus struct {
	reg  *registry
	disp *dispatcher
	cfg  Config
}

// New builds a Bus from cfg, composing it over DefaultConfig() and
// validating it first. An invalid Config (for example a negative
// MemoLimit) is rejected rather than silently clamped.
func New(cfg Config) (*Bus, error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	reg := newRegistry()
	sink := newFailureSink(resolved.Logger)
	disp := newDispatcher(reg, sink, resolved.MemoLimit)

	return &Bus{reg: reg, disp: disp, cfg: resolved}, nil
}

// Subscribe compiles pattern and registers handler against it.
// BasePathMatcher's compile-time errors (malformed pattern, segment
// following a greedy descriptor, duplicate parameter name) are returned
// as-is.
func (b *Bus) Subscribe(pattern string, handler Handler, opts ...SubscribeOption) (Handle, error) {
	compiled, err := BasePathMatcher(pattern)
	if err != nil {
		return Handle{}, err
	}

	var sc subscribeConfig
	for _, opt := range opts {
		opt(&sc)
	}

	sub := newSubscription(compiled, handler, sc.once)
	b.reg.add(sub)
	return sub.handle, nil
}

// Unsubscribe removes a subscription, accepting either the Handle returned
// by Subscribe/Once or a topic string. A string removes every
// subscription whose compiled pattern matches it as if it were a published
// topic - not a literal text comparison against the original pattern.
// Unrecognized argument types and not-found handles/patterns are no-ops.
func (b *Bus) Unsubscribe(patternOrHandle any) {
	switch v := patternOrHandle.(type) {
	case Handle:
		b.reg.removeByHandle(v)
	case string:
		b.reg.removeByPattern(v)
	}
}

// Once registers a one-shot subscription against topic and returns a token
// that resolves with the Args of the first matching Publish. topic is
// compiled as a pattern, so it may itself contain parameter or wildcard
// descriptors.
func (b *Bus) Once(topic string) *OnceToken {
	compiled, err := BasePathMatcher(topic)
	if err != nil {
		// An unparseable topic can never be published, so the token is
		// handed back unregistered: it simply never resolves, which Wait's
		// ctx.Done() path already surfaces as a timeout/cancellation to the
		// caller.
		return newOnceToken(Handle{})
	}

	var token *OnceToken
	handleSub := func(ctx context.Context, args Args) error {
		token.resolve(args)
		return nil
	}

	sub := newSubscription(compiled, handleSub, true)
	token = newOnceToken(sub.handle)
	b.reg.add(sub)
	return token
}

// Publish dispatches topic to every currently-registered subscription whose
// pattern matches it, running each matched Handler in its own goroutine and
// blocking until all of them have returned. Use `go bus.Publish(...)` for
// fire-and-forget delivery.
func (b *Bus) Publish(ctx context.Context, topic string, args Args) {
	b.disp.publish(ctx, topic, args)
}

// InFlight returns the number of Publish calls currently in progress on this
// Bus: each call counts once, regardless of how many subscriptions it
// matches, from its start until every handler it spawned has returned.
func (b *Bus) InFlight() int {
	return b.disp.inFlightCount()
}

var (
	defaultBus     *Bus
	defaultBusOnce sync.Once
	defaultBusMu   sync.RWMutex
)

func defaultInstance() *Bus {
	defaultBusMu.RLock()
	existing := defaultBus
	defaultBusMu.RUnlock()
	if existing != nil {
		return existing
	}

	defaultBusOnce.Do(func() {
		// DefaultConfig always validates, so the error is unreachable.
		bus, _ := New(DefaultConfig())
		defaultBusMu.Lock()
		defaultBus = bus
		defaultBusMu.Unlock()
	})

	defaultBusMu.RLock()
	defer defaultBusMu.RUnlock()
	return defaultBus
}

// Subscribe registers handler against pattern on the process-wide default
// Bus. See (*Bus).Subscribe.
func Subscribe(pattern string, handler Handler, opts ...SubscribeOption) (Handle, error) {
	return defaultInstance().Subscribe(pattern, handler, opts...)
}

// Unsubscribe removes a subscription from the process-wide default Bus. See
// (*Bus).Unsubscribe.
func Unsubscribe(patternOrHandle any) {
	defaultInstance().Unsubscribe(patternOrHandle)
}

// Once registers a one-shot subscription on the process-wide default Bus.
// See (*Bus).Once.
func Once(topic string) *OnceToken {
	return defaultInstance().Once(topic)
}

// Publish dispatches topic on the process-wide default Bus. See
// (*Bus).Publish.
func Publish(ctx context.Context, topic string, args Args) {
	defaultInstance().Publish(ctx, topic, args)
}

// InFlight returns the process-wide default Bus's in-flight Publish count.
// See (*Bus).InFlight.
func InFlight() int {
	return defaultInstance().InFlight()
}

// ResetDefault discards the process-wide default Bus, including every
// subscription registered against it. A fresh one is lazily created on the
// next package-level call. Intended for test isolation between otherwise
// independent test cases that use the package-level functions.
func ResetDefault() {
	defaultBusMu.Lock()
	defaultBus = nil
	defaultBusOnce = sync.Once{}
	defaultBusMu.Unlock()
}
