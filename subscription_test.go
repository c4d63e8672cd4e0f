package pathbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(ctx context.Context, args Args) error { return nil }

func Test_Subscription_MemoLimitStopsGrowingCache(t *testing.T) {
	p, err := BasePathMatcher("/orders/:id")
	require.NoError(t, err)

	sub := newSubscription(p, noopHandler, false)

	sub.matchTopic("/orders/1", 1)
	sub.matchTopic("/orders/2", 1)

	assert.Len(t, sub.memo, 1)
}

func Test_Subscription_UnboundedMemoWhenLimitIsZero(t *testing.T) {
	p, err := BasePathMatcher("/orders/:id")
	require.NoError(t, err)

	sub := newSubscription(p, noopHandler, false)

	for _, topic := range []string{"/orders/1", "/orders/2", "/orders/3"} {
		sub.matchTopic(topic, 0)
	}

	assert.Len(t, sub.memo, 3)
}

func Test_Handle_Uniqueness(t *testing.T) {
	a := newHandle()
	b := newHandle()
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
}
