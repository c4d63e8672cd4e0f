package pathbus

import (
	"sync"

	"github.com/arvo-dev/pathbus/internal/segindex"
)

// registry holds every live Subscription for a Bus. The RWMutex guards the
// authoritative slice; segindex.Index is a first-literal-segment cache
// rebuilt incrementally alongside it, per the package doc in
// internal/segindex.
type registry struct {
	mu   sync.RWMutex
	subs []*Subscription
	idx  *segindex.Index[*Subscription]
}

func newRegistry() *registry {
	return &registry{
		idx: segindex.New[*Subscription](),
	}
}

func (r *registry) add(sub *Subscription) {
	literal, hasLiteral := firstLiteralSegment(sub.pattern)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)
	r.idx.Add(literal, hasLiteral, sub)
}

// removeByHandle deletes the subscription with the given Handle, if any.
func (r *registry) removeByHandle(handle Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subs {
		if sub.handle == handle {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			literal, hasLiteral := firstLiteralSegment(sub.pattern)
			r.idx.Remove(literal, hasLiteral, func(s *Subscription) bool {
				return s.handle == handle
			})
			return
		}
	}
}

// removeByPattern deletes every subscription whose compiled pattern matches
// topic as if it were a published topic - this runs the given string
// through each subscription's own matcher, it is never a literal text
// comparison against the pattern the subscription was registered with.
func (r *registry) removeByPattern(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.subs[:0:0]
	for _, sub := range r.subs {
		if sub.pattern.Match(topic).Matched {
			literal, hasLiteral := firstLiteralSegment(sub.pattern)
			r.idx.Remove(literal, hasLiteral, func(s *Subscription) bool {
				return s == sub
			})
			continue
		}
		kept = append(kept, sub)
	}
	r.subs = kept
}

// candidatesFor narrows the live subscription set to the ones that could
// possibly match topic: the segindex bucket for topic's first segment, plus
// every catch-all (non-static-first-segment) subscription. The narrowing
// happens entirely inside segindex.Index.Candidates, which takes its own
// snapshot under its own lock before returning - any subscription added
// after this call starts is provably excluded, so the dispatcher gets a
// frozen candidate set without needing the registry's own lock. The index
// is a cache only: every
// returned candidate must still be run through its own Pattern.Match by the
// caller, since a literal-prefix bucket says nothing about the rest of the
// pattern.
func (r *registry) candidatesFor(topic string) []*Subscription {
	return r.idx.Candidates(firstPathSegment(topic))
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// firstPathSegment returns the first segment of an already-normalized topic,
// or "" for the root topic - the key candidatesFor probes the segindex
// bucket with.
func firstPathSegment(topic string) string {
	frags := splitNonEmpty(topic)
	if len(frags) == 0 {
		return ""
	}
	return frags[0]
}

// firstLiteralSegment reports the pattern's first path segment when that
// segment is a plain static literal, which is the only shape the segindex
// cache buckets on; every other pattern (root, param-first, wildcard-first)
// falls into the catch-all bucket and is still tested by Pattern.Match.
func firstLiteralSegment(p *Pattern) (string, bool) {
	if p.isRoot || len(p.segments) == 0 {
		return "", false
	}
	first := p.segments[0]
	if first.Kind == KindStatic {
		return first.Raw, true
	}
	return "", false
}
