package analyzer

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"htmlsearch/internal/domain"
)

// wordClass is the set of runes that make up a word. Boundaries are checked
// with lookarounds so that they hold for non-ASCII letters too.
const wordClass = `[\p{L}\p{N}\p{M}_]`

const (
	notAfterWord  = `(?<!` + wordClass + `)`
	notBeforeWord = `(?!` + wordClass + `)`
)

var singleCharWord = regexp2.MustCompile(notAfterWord+wordClass+`\p{M}*`+notBeforeWord, regexp2.None)

// Normalizer converts HTML documents into lowercase searchable text with
// stop-words and one-character words removed.
type Normalizer struct {
	stopWords *regexp2.Regexp // nil when the stop list is empty
}

// NewNormalizer compiles the stop-word removal pattern.
func NewNormalizer(stops domain.StopList) (*Normalizer, error) {
	n := &Normalizer{}
	if len(stops) == 0 {
		return n, nil
	}

	escaped := make([]string, len(stops))
	for i, w := range stops {
		escaped[i] = regexp2.Escape(w)
	}
	pattern := notAfterWord + `(?:` + strings.Join(escaped, "|") + `)` + notBeforeWord

	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("failed to compile stop-word pattern: %w", err)
	}
	n.stopWords = re
	return n, nil
}

// Normalize extracts the text of an HTML document and normalizes it.
func (n *Normalizer) Normalize(src string) (string, error) {
	text, err := ExtractText(src)
	if err != nil {
		return "", err
	}
	return n.NormalizeText(text)
}

// NormalizeText applies every normalization step after HTML extraction.
func (n *Normalizer) NormalizeText(text string) (string, error) {
	// Casers keep state, so each call gets its own.
	text = cases.Lower(language.Und).String(norm.NFC.String(text))

	text = strings.ReplaceAll(text, "\n", " ")

	var err error
	if n.stopWords != nil {
		text, err = n.stopWords.Replace(text, " ", -1, -1)
		if err != nil {
			return "", fmt.Errorf("failed to remove stop-words: %w", err)
		}
	}

	text, err = singleCharWord.Replace(text, " ", -1, -1)
	if err != nil {
		return "", fmt.Errorf("failed to remove single-character words: %w", err)
	}

	return strings.Join(strings.Fields(text), " "), nil
}
