package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := client
	SetClientForTesting(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClientForTesting(prev) })
	return mr
}

func TestAside_CachesFetchResult(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	var first cachedUser
	err := Aside(ctx, UserKey(7), &first, UserTTL, func() error {
		calls++
		first = cachedUser{ID: 7, Username: "dana"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "dana", first.Username)
	assert.Equal(t, 1, calls)

	var second cachedUser
	err = Aside(ctx, UserKey(7), &second, UserTTL, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "dana", second.Username, "second read should be served from cache")
	assert.Equal(t, 1, calls)
}

func TestAside_CorruptEntryFallsBackToFetch(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(3), "{not json"))

	var got cachedUser
	err := Aside(ctx, UserKey(3), &got, UserTTL, func() error {
		got = cachedUser{ID: 3, Username: "recovered"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got.Username)
}

func TestAside_NilClientFetchesDirectly(t *testing.T) {
	prev := client
	SetClientForTesting(nil)
	t.Cleanup(func() { SetClientForTesting(prev) })

	var got cachedUser
	err := Aside(context.Background(), UserKey(1), &got, time.Minute, func() error {
		got = cachedUser{ID: 1, Username: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Username)
}

func TestInvalidatePost_AlsoDropsModerationQueue(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PostKey(9), `{"id":9}`))
	require.NoError(t, mr.Set(ModerationQueueKey(), `[]`))

	InvalidatePost(ctx, 9)

	assert.False(t, mr.Exists(PostKey(9)))
	assert.False(t, mr.Exists(ModerationQueueKey()))
}
