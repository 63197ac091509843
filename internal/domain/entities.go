package domain

// Document is one loaded file. ID is generated per build and is never
// derived from Filename, so duplicate or renamed files cannot collide.
type Document struct {
	ID       string
	Filename string
	Text     string // normalized searchable text
}

// Candidate is a matcher hit. Offset and Length count runes of the
// document's normalized text.
type Candidate struct {
	DocID  string
	Offset int
	Length int
	Score  float64
}

// Match is the (before, span, after) snippet of a result.
type Match [3]string

func (m Match) Before() string { return m[0] }
func (m Match) Span() string   { return m[1] }
func (m Match) After() string  { return m[2] }

type SearchResult struct {
	Filename string  `json:"filename"`
	Match    Match   `json:"match"`
	Score    float64 `json:"score"`
}

type Stats struct {
	TotalDocs  int
	TotalRunes int
}

// StopList is the ordered list of words removed during normalization.
type StopList []string
