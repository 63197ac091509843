package matcher

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"htmlsearch/internal/domain"
	"htmlsearch/internal/port"
)

var _ port.Matcher = (*Matcher)(nil)

const releaseTimeout = 3 * time.Second

// Matcher scores every document of a corpus against a query and keeps the
// best candidates.
type Matcher struct {
	scorer   port.Scorer
	pool     *ants.Pool
	minScore float64
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithPoolSize sets the number of workers scoring documents concurrently.
// Values below 1 select GOMAXPROCS.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = runtime.GOMAXPROCS(0)
		}
		pool, err := newPool(size)
		if err != nil {
			return err
		}
		if m.pool != nil {
			m.pool.Release()
		}
		m.pool = pool
		return nil
	}
}

// WithMinScore drops candidates scoring below min. Zero keeps every match.
func WithMinScore(min float64) Option {
	return func(m *Matcher) error {
		m.minScore = min
		return nil
	}
}

// WithScorer replaces the scoring strategy.
func WithScorer(scorer port.Scorer) Option {
	return func(m *Matcher) error {
		if scorer != nil {
			m.scorer = scorer
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a matcher. Close releases its worker pool.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		scorer: NewSubstringScorer(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.Close()
			return nil, err
		}
	}

	if m.pool == nil {
		pool, err := newPool(runtime.GOMAXPROCS(0))
		if err != nil {
			return nil, err
		}
		m.pool = pool
	}

	return m, nil
}

// A full pool never makes a query wait on another query's work: the
// submitting goroutine scores the document itself instead.
func newPool(size int) (*ants.Pool, error) {
	return ants.NewPool(size, ants.WithNonblocking(true))
}

// Close releases the worker pool and waits for its goroutines to exit.
func (m *Matcher) Close() {
	if m.pool == nil {
		return
	}
	if err := m.pool.ReleaseTimeout(releaseTimeout); err != nil {
		m.logger.Warn("matcher pool did not shut down cleanly", "error", err)
	}
}

// Search returns at most limit candidates sorted by descending score. Equal
// scores keep corpus order.
func (m *Matcher) Search(query string, corpus port.CorpusView, limit int) []domain.Candidate {
	q := PrepareQuery(query)
	if q == "" || limit <= 0 || corpus == nil {
		return nil
	}

	docs := corpus.Documents()
	slots := make([]*domain.Candidate, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		i, doc := i, doc
		text, ok := corpus.Runes(doc.ID)
		if !ok {
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = m.score(q, doc.ID, text)
		}
		if err := m.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	candidates := make([]domain.Candidate, 0, len(docs))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	m.logger.Debug("fuzzy search finished",
		"query", q,
		"documents", len(docs),
		"candidates", len(candidates))

	return candidates
}

func (m *Matcher) score(query, docID string, text []rune) *domain.Candidate {
	loc, ok := m.scorer.ScoreAndLocate(query, text)
	if !ok || loc.Score <= 0 || loc.Score < m.minScore {
		return nil
	}
	return &domain.Candidate{
		DocID:  docID,
		Offset: loc.Offset,
		Length: loc.Length,
		Score:  loc.Score,
	}
}

// PrepareQuery collapses whitespace and lowercases the query. A query that
// is a plain integer gets a trailing period instead, because numbers in the
// documents are usually followed by punctuation.
func PrepareQuery(raw string) string {
	q := strings.Join(strings.Fields(raw), " ")
	if q == "" {
		return ""
	}
	if isInteger(q) {
		return q + "."
	}
	return cases.Lower(language.Und).String(norm.NFC.String(q))
}

func isInteger(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
