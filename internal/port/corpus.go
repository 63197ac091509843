package port

import "htmlsearch/internal/domain"

// CorpusView is the read-only surface of a published corpus.
type CorpusView interface {
	// Documents returns every document in corpus iteration order.
	Documents() []domain.Document

	// Document looks up a document by identifier.
	Document(id string) (domain.Document, bool)

	// Runes returns the normalized text of a document as runes.
	Runes(id string) ([]rune, bool)

	Len() int
}
