package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCorpusLoad matches every *CorpusLoadError via errors.Is.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrDocumentParse matches every *DocumentParseError via errors.Is.
	ErrDocumentParse = errors.New("document parse failed")
)

// CorpusLoadError aborts a corpus build. Nothing is published when it is
// returned.
type CorpusLoadError struct {
	Op   string // "read stoplist", "list documents", ...
	Path string
	Err  error
}

func (e *CorpusLoadError) Error() string {
	return fmt.Sprintf("corpus load: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CorpusLoadError) Unwrap() error { return e.Err }

func (e *CorpusLoadError) Is(target error) bool { return target == ErrCorpusLoad }

// DocumentParseError describes a single document that was skipped during a
// build.
type DocumentParseError struct {
	Filename string
	Err      error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Filename, e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

func (e *DocumentParseError) Is(target error) bool { return target == ErrDocumentParse }
