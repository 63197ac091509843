package analyzer

import (
	"os"
	"strings"

	"github.com/samber/lo"

	"htmlsearch/internal/domain"
)

// LoadStopList reads a newline-delimited stop-word file.
func LoadStopList(path string) (domain.StopList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStopList(string(data)), nil
}

// ParseStopList splits stop-list content into words. Entries are trimmed and
// lowercased; blank lines and repeats are dropped and the first-seen order is
// kept.
func ParseStopList(content string) domain.StopList {
	words := lo.Map(strings.Split(content, "\n"), func(line string, _ int) string {
		return strings.ToLower(strings.TrimSpace(line))
	})
	words = lo.Filter(words, func(word string, _ int) bool {
		return word != ""
	})
	return lo.Uniq(words)
}
