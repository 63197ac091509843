package port

import "htmlsearch/internal/domain"

// Matcher ranks the documents of a corpus against a query.
type Matcher interface {
	// Search returns at most limit candidates, best first.
	Search(query string, corpus CorpusView, limit int) []domain.Candidate
}
