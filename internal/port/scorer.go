package port

// Location is the best approximate match of a query inside one text.
// Offset and Length count runes.
type Location struct {
	Offset int
	Length int
	Score  float64 // similarity in (0, 1], higher is better
}

// Scorer finds where a query best matches a candidate text.
type Scorer interface {
	// ScoreAndLocate returns false when the text holds no usable match.
	ScoreAndLocate(query string, text []rune) (Location, bool)
}
