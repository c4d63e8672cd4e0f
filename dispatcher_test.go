package pathbus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bus_Publish_FansOutToEveryMatch(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var calls int32
	for i := 0; i < 3; i++ {
		_, err := bus.Subscribe("/events/:name", func(ctx context.Context, args Args) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		require.NoError(t, err)
	}

	bus.Publish(context.Background(), "/events/created", Args{})
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func Test_Bus_Publish_ArgsPrecedence(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var got Args
	_, err = bus.Subscribe("/orders/:id", func(ctx context.Context, args Args) error {
		got = args
		return nil
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), "/orders/7", Args{"id": "user-supplied", "extra": "kept"})

	assert.Equal(t, "7", got["id"]) // captured param beats user-supplied value
	assert.Equal(t, "kept", got["extra"])
	assert.Equal(t, "/orders/7", got["topic"])
	assert.Equal(t, []string{}, got["_"])
}

func Test_Bus_Publish_ArgsPrecedenceWithWildcardAndExtraParam(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var got Args
	_, err = bus.Subscribe("/arg/:test1/:test2/**", func(ctx context.Context, args Args) error {
		got = args
		return nil
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), "/arg/A/B/C/D", Args{"test5": "v"})

	assert.Equal(t, "/arg/a/b/c/d", got["topic"])
	assert.Equal(t, "a", got["test1"])
	assert.Equal(t, "b", got["test2"])
	assert.Equal(t, []string{"c", "d"}, got["_"])
	assert.Equal(t, "v", got["test5"])
}

func Test_Bus_Publish_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var secondRan atomic.Bool
	_, err = bus.Subscribe("/x", func(ctx context.Context, args Args) error {
		return errors.New("boom")
	})
	require.NoError(t, err)
	_, err = bus.Subscribe("/x", func(ctx context.Context, args Args) error {
		secondRan.Store(true)
		return nil
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), "/x", Args{})
	assert.True(t, secondRan.Load())
}

func Test_Bus_Publish_PanicIsRecoveredAndLogged(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	_, err = bus.Subscribe("/panics", func(ctx context.Context, args Args) error {
		panic("kaboom")
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), "/panics", Args{})
	})
}

func Test_Bus_Publish_BlocksUntilHandlersSettle(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var ran atomic.Bool
	_, err = bus.Subscribe("/slow", func(ctx context.Context, args Args) error {
		time.Sleep(30 * time.Millisecond)
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), "/slow", Args{})
	assert.True(t, ran.Load())
	assert.Equal(t, 0, bus.InFlight())
}

func Test_Bus_InFlight_ReflectsRunningHandlers(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	release := make(chan struct{})
	var wg sync.WaitGroup
	_, err = bus.Subscribe("/block", func(ctx context.Context, args Args) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	wg.Add(1)
	go func() {
		defer wg.Done()
		bus.Publish(context.Background(), "/block", Args{})
	}()

	require.Eventually(t, func() bool {
		return bus.InFlight() == 1
	}, time.Second, time.Millisecond)

	close(release)
	wg.Wait()
	assert.Equal(t, 0, bus.InFlight())
}

func Test_Bus_InFlight_OverlappingPublishesCountPerCall(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	release := make(chan struct{})
	_, err = bus.Subscribe("/block", func(ctx context.Context, args Args) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		bus.Publish(context.Background(), "/block", Args{})
	}()
	go func() {
		defer wg.Done()
		bus.Publish(context.Background(), "/block", Args{})
	}()

	require.Eventually(t, func() bool {
		return bus.InFlight() == 2
	}, time.Second, time.Millisecond)

	close(release)
	wg.Wait()
	assert.Equal(t, 0, bus.InFlight())
}

func Test_Bus_Unsubscribe_ByPatternRemovesAll(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var calls int32
	handler := func(ctx context.Context, args Args) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}
	_, err = bus.Subscribe("/dup", handler)
	require.NoError(t, err)
	_, err = bus.Subscribe("/dup", handler)
	require.NoError(t, err)

	bus.Unsubscribe("/dup")
	bus.Publish(context.Background(), "/dup", Args{})
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func Test_Bus_Unsubscribe_ByHandle(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var calls int32
	handle, err := bus.Subscribe("/solo", func(ctx context.Context, args Args) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)

	bus.Unsubscribe(handle)
	bus.Publish(context.Background(), "/solo", Args{})
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func Test_Bus_Subscribe_FireOnceRemovesAfterFirstDelivery(t *testing.T) {
	bus, err := New(Config{})
	require.NoError(t, err)

	var calls int32
	_, err = bus.Subscribe("/once-opt", func(ctx context.Context, args Args) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}, FireOnce())
	require.NoError(t, err)

	bus.Publish(context.Background(), "/once-opt", Args{})
	bus.Publish(context.Background(), "/once-opt", Args{})

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
