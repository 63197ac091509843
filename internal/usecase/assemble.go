package usecase

import (
	"log/slog"

	"github.com/samber/lo"

	"htmlsearch/internal/domain"
	"htmlsearch/internal/port"
)

// Assemble turns matcher candidates into results, keeping their order. Each
// match carries up to window runes of context on both sides of the span,
// clipped at the ends of the text. A candidate whose document is not in the
// corpus is dropped and logged.
func Assemble(candidates []domain.Candidate, corpus port.CorpusView, window int, logger *slog.Logger) []domain.SearchResult {
	if logger == nil {
		logger = slog.Default()
	}
	if window < 0 {
		window = 0
	}

	return lo.FilterMap(candidates, func(c domain.Candidate, _ int) (domain.SearchResult, bool) {
		doc, ok := corpus.Document(c.DocID)
		if !ok {
			logger.Warn("lookup inconsistency: candidate document not in corpus", "doc_id", c.DocID)
			return domain.SearchResult{}, false
		}
		text, _ := corpus.Runes(c.DocID)

		return domain.SearchResult{
			Filename: doc.Filename,
			Match:    snippet(text, c.Offset, c.Length, window),
			Score:    c.Score,
		}, true
	})
}

func snippet(text []rune, offset, length, window int) domain.Match {
	start := clamp(offset, 0, len(text))
	end := clamp(offset+length, start, len(text))
	before := clamp(start-window, 0, start)
	after := clamp(end+window, end, len(text))

	return domain.Match{
		string(text[before:start]),
		string(text[start:end]),
		string(text[end:after]),
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
