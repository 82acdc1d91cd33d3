package tools

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/internal/cache"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

func TestDeps_Generate_SharesConcurrentRuns(t *testing.T) {
	d := newTestDeps(t)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	d.run = func(bodies [][]byte, opts xmltypes.Options) (*xmltypes.Result, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return d.Engine.GenerateSamples(bodies, opts)
	}

	bodies := [][]byte{[]byte(`<root><a>1</a></root>`)}
	opts := xmltypes.Options{Format: "rust"}

	const callers = 8
	results := make([]*Generation, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	call := func(i int) {
		defer wg.Done()
		results[i], errs[i] = d.Generate(context.Background(), bodies, opts)
	}

	wg.Add(1)
	go call(0)
	<-started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go call(i)
	}
	// let the other callers join the run in flight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Same(t, results[0].Result, results[i].Result)
		assert.Equal(t, results[0].Key, results[i].Key)
	}
}

func TestDeps_Generate_FinishesAfterTimeout(t *testing.T) {
	d := newTestDeps(t)

	release := make(chan struct{})
	d.run = func(bodies [][]byte, opts xmltypes.Options) (*xmltypes.Result, error) {
		<-release
		return d.Engine.GenerateSamples(bodies, opts)
	}

	bodies := [][]byte{[]byte(`<root><item id="1">a</item></root>`)}
	opts := xmltypes.Options{Format: "go"}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	gen, err := d.Generate(ctx, bodies, opts)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, gen)
	requireCode(t, WrapGenerateError(err), ErrCodeTimeout)

	close(release)
	key := cache.Key(bodies, opts)
	assert.Eventually(t, func() bool {
		_, ok := d.Cache.Get(key)
		return ok
	}, time.Second, 5*time.Millisecond)

	gen, err = d.Generate(context.Background(), bodies, opts)
	require.NoError(t, err)
	assert.True(t, gen.Cached)
	assert.Equal(t, key, gen.Key)
	assert.Equal(t, "Root", gen.Result.RootType)
}

func TestDeps_Generate_ErrorNotCached(t *testing.T) {
	d := newTestDeps(t)
	bodies := [][]byte{[]byte(`<a><b></a>`)}
	opts := xmltypes.Options{Format: "rust"}

	_, err := d.Generate(context.Background(), bodies, opts)
	require.Error(t, err)
	assert.Equal(t, 0, d.Cache.Len())
}
