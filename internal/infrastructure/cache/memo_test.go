package cache

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemo(t *testing.T) (*Memo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetOutput(io.Discard)

	memo := NewMemo(client, log)
	t.Cleanup(memo.Stop)

	return memo, mr
}

func TestGetOrRefresh_MissRunsLoaderAndCaches(t *testing.T) {
	memo, _ := newTestMemo(t)
	ctx := context.Background()

	var loads int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return map[string]string{"abc123": "Dr. Sarah Chen"}, nil
	}

	var got map[string]string
	err := memo.GetOrRefresh(ctx, "team:doctor-names", time.Minute, &got, loader)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Chen", got["abc123"])
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))

	// Second read must come from Redis without touching the loader.
	got = nil
	err = memo.GetOrRefresh(ctx, "team:doctor-names", time.Minute, &got, loader)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Chen", got["abc123"])
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))
}

func TestGetOrRefresh_ExpiredKeyRefreshes(t *testing.T) {
	memo, mr := newTestMemo(t)
	ctx := context.Background()

	var loads int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return int(atomic.LoadInt32(&loads)), nil
	}

	var got int
	require.NoError(t, memo.GetOrRefresh(ctx, "dashboard:stats", time.Minute, &got, loader))
	assert.Equal(t, 1, got)

	mr.FastForward(2 * time.Minute)

	require.NoError(t, memo.GetOrRefresh(ctx, "dashboard:stats", time.Minute, &got, loader))
	assert.Equal(t, 2, got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&loads))
}

func TestGetOrRefresh_SingleRefreshUnderContention(t *testing.T) {
	memo, _ := newTestMemo(t)
	ctx := context.Background()

	var loads int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return "refreshed", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	values := make([]string, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = memo.GetOrRefresh(ctx, "contended", time.Minute, &values[i], loader)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "refreshed", values[i])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads), "only one caller should run the loader")
}

func TestGetOrRefresh_LoaderErrorPropagates(t *testing.T) {
	memo, _ := newTestMemo(t)
	ctx := context.Background()

	loadErr := errors.New("upstream down")
	var got string
	err := memo.GetOrRefresh(ctx, "broken", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		return nil, loadErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
	assert.Empty(t, got)
}

func TestGetOrRefresh_CorruptPayloadTreatedAsMiss(t *testing.T) {
	memo, mr := newTestMemo(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("memo:stats", "{not json"))

	var loads int32
	var got map[string]int
	err := memo.GetOrRefresh(ctx, "stats", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return map[string]int{"active": 3}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got["active"])
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))
}

func TestInvalidate_ForcesNextReadToRefresh(t *testing.T) {
	memo, _ := newTestMemo(t)
	ctx := context.Background()

	var loads int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "v", nil
	}

	var got string
	require.NoError(t, memo.GetOrRefresh(ctx, "stats", time.Minute, &got, loader))
	require.NoError(t, memo.Invalidate(ctx, "stats"))
	require.NoError(t, memo.GetOrRefresh(ctx, "stats", time.Minute, &got, loader))

	assert.EqualValues(t, 2, atomic.LoadInt32(&loads))
}

func TestStop_IsIdempotent(t *testing.T) {
	memo, _ := newTestMemo(t)

	memo.Stop()
	memo.Stop()
}
