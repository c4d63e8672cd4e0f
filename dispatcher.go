package pathbus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Handler is the callback a subscription runs when its pattern matches a
// published topic. A returned error (or recovered panic) becomes a
// HandlerFailure event; it never interrupts delivery to any other matched
// subscription.
type Handler func(ctx context.Context, args Args) error

// dispatcher owns the subscription registry and runs Publish's fan-out.
type dispatcher struct {
	reg       *registry
	sink      *failureSink
	memoLimit int
	inFlight  atomic.Int32
}

func newDispatcher(reg *registry, sink *failureSink, memoLimit int) *dispatcher {
	return &dispatcher{reg: reg, sink: sink, memoLimit: memoLimit}
}

func (d *dispatcher) publish(ctx context.Context, topic string, args Args) {
	// inFlight tracks the number of Publish calls currently in progress -
	// one per call, independent of how many subscriptions end up matching -
	// from here until the WaitGroup below settles.
	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)

	normalized := normalizePath(topic)

	// The candidate set is resolved before any handler goroutine is spawned:
	// a concurrent Subscribe/Unsubscribe racing with this Publish call can
	// never see a partially-dispatched state. See registry.candidatesFor.
	subs := d.reg.candidatesFor(normalized)

	type matched struct {
		sub    *Subscription
		result MatchResult
	}

	var toRun []matched
	for _, sub := range subs {
		result := sub.matchTopic(normalized, d.memoLimit)
		if result.Matched {
			toRun = append(toRun, matched{sub: sub, result: result})
		}
	}
	if len(toRun) == 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(toRun))
	for _, m := range toRun {
		m := m
		go func() {
			defer wg.Done()
			d.run(ctx, m.sub, normalized, m.result, args)
			if m.sub.Once() {
				d.reg.removeByHandle(m.sub.Handle())
			}
		}()
	}
	wg.Wait()
}

// run builds the merged Args for one matched subscription and invokes its
// Handler, converting a returned error or a recovered panic into a
// HandlerFailure logged through the sink. Neither ever reaches the caller
// of Publish.
func (d *dispatcher) run(ctx context.Context, sub *Subscription, topic string, result MatchResult, userArgs Args) {
	defer func() {
		if r := recover(); r != nil {
			d.sink.handlerFailure(sub.Handle(), sub.Pattern(), topic, fmt.Errorf("pathbus: handler panic: %v", r))
		}
	}()

	merged := buildArgs(userArgs, result, topic)

	if err := sub.handler(ctx, merged); err != nil {
		d.sink.handlerFailure(sub.Handle(), sub.Pattern(), topic, err)
	}
}

// buildArgs composes the final Handler payload: userArgs is lowest
// precedence, captured path parameters are next, and the reserved "_"
// (wildcard captures) and "topic" keys are highest and always win.
func buildArgs(userArgs Args, result MatchResult, topic string) Args {
	low := map[string]any(userArgs)
	if low == nil {
		low = map[string]any{}
	}

	params := make(map[string]any, len(result.Params))
	for name, v := range result.Params {
		params[name] = v.Any()
	}
	merged := deepMerge(low, params)

	reserved := map[string]any{
		"topic": topic,
	}
	if result.Wildcards != nil {
		reserved["_"] = result.Wildcards
	} else {
		reserved["_"] = []string{}
	}
	merged = deepMerge(merged, reserved)

	return Args(merged)
}

func (d *dispatcher) inFlightCount() int {
	return int(d.inFlight.Load())
}
