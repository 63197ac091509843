package usecase

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"htmlsearch/internal/adapter/memstore"
)

// CorpusBuilder produces a complete corpus.
type CorpusBuilder interface {
	Build(ctx context.Context, progress ProgressFunc) (*memstore.Corpus, *LoadReport, error)
}

// CorpusCache builds the corpus on first use and then serves it for the rest
// of the process lifetime. Concurrent callers share a single build; a failed
// build is not remembered, so the next caller tries again.
type CorpusCache struct {
	builder CorpusBuilder
	group   singleflight.Group
	corpus  atomic.Pointer[memstore.Corpus]
	report  atomic.Pointer[LoadReport]
	logger  *slog.Logger
}

func NewCorpusCache(builder CorpusBuilder, logger *slog.Logger) *CorpusCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusCache{
		builder: builder,
		logger:  logger,
	}
}

// Ensure returns the published corpus, building it if needed. A caller whose
// context ends stops waiting, but the build itself runs to completion for
// the remaining callers.
func (c *CorpusCache) Ensure(ctx context.Context) (*memstore.Corpus, error) {
	if corpus := c.corpus.Load(); corpus != nil {
		return corpus, nil
	}

	ch := c.group.DoChan("corpus", func() (any, error) {
		if corpus := c.corpus.Load(); corpus != nil {
			return corpus, nil
		}

		corpus, report, err := c.builder.Build(context.WithoutCancel(ctx), nil)
		if err != nil {
			c.logger.Error("corpus load failed", "error", err)
			return nil, err
		}

		c.report.Store(report)
		c.corpus.Store(corpus)
		c.logger.Info("corpus loaded",
			"documents", report.Loaded,
			"skipped", len(report.Skipped),
			"duration", report.Duration)
		return corpus, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*memstore.Corpus), nil
	}
}

// Loaded reports whether the corpus has been published.
func (c *CorpusCache) Loaded() bool {
	return c.corpus.Load() != nil
}

// Report returns the report of the published build, or nil.
func (c *CorpusCache) Report() *LoadReport {
	return c.report.Load()
}
