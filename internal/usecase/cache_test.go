package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlsearch/internal/adapter/memstore"
	"htmlsearch/internal/domain"
)

// countingBuilder counts builds and can hold them until released.
type countingBuilder struct {
	builds  atomic.Int32
	release chan struct{}
	started chan struct{}
	err     error
}

func (b *countingBuilder) Build(ctx context.Context, _ ProgressFunc) (*memstore.Corpus, *LoadReport, error) {
	b.builds.Add(1)
	if b.started != nil {
		b.started <- struct{}{}
	}
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return nil, nil, b.err
	}
	corpus, err := memstore.NewCorpus([]domain.Document{{ID: "1", Filename: "a.html", Text: "alpha"}})
	if err != nil {
		return nil, nil, err
	}
	return corpus, &LoadReport{Loaded: 1}, nil
}

func TestCorpusCache_SingleFlight(t *testing.T) {
	builder := &countingBuilder{
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	cache := NewCorpusCache(builder, discardLogger())

	const callers = 16
	results := make([]*memstore.Corpus, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			corpus, err := cache.Ensure(context.Background())
			assert.NoError(t, err)
			results[i] = corpus
		}()
	}

	<-builder.started
	// Let the other callers pile up behind the running build.
	time.Sleep(20 * time.Millisecond)
	close(builder.release)
	wg.Wait()

	assert.Equal(t, int32(1), builder.builds.Load())
	for _, corpus := range results {
		require.NotNil(t, corpus)
		assert.Same(t, results[0], corpus)
	}
	assert.True(t, cache.Loaded())
	assert.Equal(t, 1, cache.Report().Loaded)

	// Published: no further builds.
	again, err := cache.Ensure(context.Background())
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, int32(1), builder.builds.Load())
}

func TestCorpusCache_FailureIsNotCached(t *testing.T) {
	loadErr := &domain.CorpusLoadError{Op: "list documents", Path: "/missing", Err: errors.New("boom")}
	builder := &countingBuilder{err: loadErr}
	cache := NewCorpusCache(builder, discardLogger())

	_, err := cache.Ensure(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCorpusLoad))
	assert.False(t, cache.Loaded())
	assert.Nil(t, cache.Report())

	builder.err = nil
	corpus, err := cache.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, corpus.Len())
	assert.Equal(t, int32(2), builder.builds.Load())
}

func TestCorpusCache_CallerGivesUp(t *testing.T) {
	builder := &countingBuilder{
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	cache := NewCorpusCache(builder, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := cache.Ensure(ctx)
		errc <- err
	}()

	<-builder.started
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	// The abandoned build still completes and is published.
	done := make(chan *memstore.Corpus, 1)
	go func() {
		corpus, err := cache.Ensure(context.Background())
		assert.NoError(t, err)
		done <- corpus
	}()
	close(builder.release)

	corpus := <-done
	require.NotNil(t, corpus)
	assert.Equal(t, int32(1), builder.builds.Load())
}
