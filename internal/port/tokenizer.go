package port

// Normalizer turns raw HTML into searchable text.
type Normalizer interface {
	Normalize(html string) (string, error)
}
