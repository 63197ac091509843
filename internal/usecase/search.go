package usecase

import (
	"context"
	"log/slog"
	"strings"

	"htmlsearch/internal/domain"
	"htmlsearch/internal/port"
)

// SearchUseCase answers queries against the cached corpus.
type SearchUseCase struct {
	cache   *CorpusCache
	matcher port.Matcher
	limit   int
	window  int
	logger  *slog.Logger
}

// NewSearchUseCase creates a new search use case.
func NewSearchUseCase(
	cache *CorpusCache,
	matcher port.Matcher,
	limit int,
	window int,
	logger *slog.Logger,
) *SearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{
		cache:   cache,
		matcher: matcher,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Search returns up to the configured number of results for query.
func (u *SearchUseCase) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return u.SearchWithLimit(ctx, query, u.limit)
}

// SearchWithLimit is Search with an explicit result limit. An empty query
// yields no results without loading the corpus.
func (u *SearchUseCase) SearchWithLimit(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}

	corpus, err := u.cache.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	candidates := u.matcher.Search(query, corpus, limit)
	results := Assemble(candidates, corpus, u.window, u.logger)

	u.logger.Debug("search finished", "query", query, "results", len(results))

	return results, nil
}
