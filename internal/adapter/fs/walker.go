package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"htmlsearch/internal/port"
)

// Lister enumerates the regular files directly inside a directory. It does
// not descend into subdirectories.
type Lister struct {
	includes []string
}

func NewLister(includes []string) *Lister {
	if len(includes) == 0 {
		includes = []string{"*"}
	}
	return &Lister{
		includes: includes,
	}
}

// List returns matching files sorted by name.
func (l *Lister) List(dir string) ([]port.FileInfo, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []port.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if !l.shouldInclude(entry.Name()) {
			continue
		}

		files = append(files, port.FileInfo{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime().Unix(),
			Size:    info.Size(),
		})
	}

	return files, nil
}

func (l *Lister) shouldInclude(name string) bool {
	for _, pattern := range l.includes {
		matched, err := doublestar.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// OSReader reads files from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(path string) (string, error) {
	return ReadFile(path)
}
