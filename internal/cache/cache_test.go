package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	k := Key{Source: "./data/results.csv", Version: 3}
	assert.Equal(t, "./data/results.csv@v3", k.String())
}

func TestGetLoadsOnce(t *testing.T) {
	s := New(0)
	var calls int32

	load := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "payload", nil
	}

	key := Key{Source: "x", Version: 1}
	for i := 0; i < 3; i++ {
		v, err := s.Get(key, load)
		require.NoError(t, err)
		assert.Equal(t, "payload", v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, s.Len())
}

func TestVersionBumpMisses(t *testing.T) {
	s := New(0)
	var calls int32
	load := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return calls, nil
	}

	_, err := s.Get(Key{Source: "x", Version: 1}, load)
	require.NoError(t, err)
	_, err = s.Get(Key{Source: "x", Version: 2}, load)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFailedLoadCachesNothing(t *testing.T) {
	s := New(0)
	var calls int32

	key := Key{Source: "x", Version: 1}
	_, err := s.Get(key, func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, eris.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())

	// The next call retries the load instead of serving the failure.
	v, err := s.Get(key, func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateAndFlush(t *testing.T) {
	s := New(0)
	a := Key{Source: "a", Version: 1}
	b := Key{Source: "b", Version: 1}

	_, err := s.Get(a, func() (any, error) { return 1, nil })
	require.NoError(t, err)
	_, err = s.Get(b, func() (any, error) { return 2, nil })
	require.NoError(t, err)

	s.Invalidate(a)
	assert.Equal(t, 1, s.Len())

	s.Flush()
	assert.Equal(t, 0, s.Len())
}

func TestConcurrentGetCollapses(t *testing.T) {
	s := New(time.Minute)
	var calls int32
	key := Key{Source: "slow", Version: 1}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.Get(key, func() (any, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(20 * time.Millisecond)
				return "shared", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetAs(t *testing.T) {
	s := New(0)
	key := Key{Source: "typed", Version: 1}

	v, err := GetAs(s, key, func() ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	// Same key read back under a mismatched type fails loudly.
	_, err = GetAs(s, key, func() (int, error) { return 0, nil })
	assert.Error(t, err)
}
