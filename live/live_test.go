package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSubscribePublishUnsubscribe(t *testing.T) {
	path := "users/u1/expenses"

	id1, ch1 := Subscribe(path)
	id2, ch2 := Subscribe(path)
	defer Unsubscribe(path, id1)
	defer Unsubscribe(path, id2)

	require.Equal(t, 2, NumActiveStreams())

	Publish(path)

	assert.True(t, drain(ch1), "first subscriber should be signaled")
	assert.True(t, drain(ch2), "second subscriber should be signaled")
	assert.False(t, drain(ch1), "no extra signal queued")
}

func TestPublishOtherPathDoesNotSignal(t *testing.T) {
	id, ch := Subscribe("posts")
	defer Unsubscribe("posts", id)

	Publish("posts/p1/comments")

	assert.False(t, drain(ch))
}

func TestPublishCoalesces(t *testing.T) {
	path := "posts"

	id, ch := Subscribe(path)
	defer Unsubscribe(path, id)

	Publish(path)
	Publish(path)
	Publish(path)

	// three publishes before a drain collapse into one pending signal
	assert.True(t, drain(ch))
	assert.False(t, drain(ch))
}

func TestUnsubscribedReceivesNothing(t *testing.T) {
	path := "users/u2/expenses"

	id, ch := Subscribe(path)
	Unsubscribe(path, id)

	require.Equal(t, 0, NumActiveStreams())

	Publish(path)

	assert.False(t, drain(ch))
}
