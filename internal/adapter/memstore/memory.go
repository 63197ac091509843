package memstore

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"htmlsearch/internal/domain"
	"htmlsearch/internal/port"
)

var _ port.CorpusView = (*Corpus)(nil)

// Corpus is an immutable in-memory document set. The filename and text
// lookups are both served from the same document slice, so they always cover
// the same identifiers.
type Corpus struct {
	docs  []domain.Document
	index map[string]int
	runes [][]rune
	stats domain.Stats
}

// NewCorpus builds a corpus from docs, keeping their order.
func NewCorpus(docs []domain.Document) (*Corpus, error) {
	c := &Corpus{
		docs:  slices.Clone(docs),
		index: make(map[string]int, len(docs)),
		runes: make([][]rune, len(docs)),
	}

	for i, doc := range c.docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("document %s has no id", doc.Filename)
		}
		if _, dup := c.index[doc.ID]; dup {
			return nil, fmt.Errorf("duplicate document id: %s", doc.ID)
		}
		c.index[doc.ID] = i
		c.runes[i] = []rune(doc.Text)
		c.stats.TotalRunes += utf8.RuneCountInString(doc.Text)
	}
	c.stats.TotalDocs = len(c.docs)

	return c, nil
}

// Empty returns a corpus with no documents.
func Empty() *Corpus {
	c, _ := NewCorpus(nil)
	return c
}

func (c *Corpus) Documents() []domain.Document {
	return slices.Clone(c.docs)
}

func (c *Corpus) Document(id string) (domain.Document, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Document{}, false
	}
	return c.docs[i], true
}

// Runes returns the normalized text as runes. The slice is shared and must
// not be modified.
func (c *Corpus) Runes(id string) ([]rune, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.runes[i], true
}

func (c *Corpus) Len() int {
	return len(c.docs)
}

func (c *Corpus) Stats() domain.Stats {
	return c.stats
}
