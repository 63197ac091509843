package usecase

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"htmlsearch/internal/adapter/analyzer"
	"htmlsearch/internal/adapter/memstore"
	"htmlsearch/internal/domain"
	"htmlsearch/internal/port"
)

// ProgressFunc is called after each document is processed. It may be called
// from several goroutines at once.
type ProgressFunc func(processed, total int, filename string)

// LoadReport describes one corpus build.
type LoadReport struct {
	Loaded   int
	Skipped  []*domain.DocumentParseError
	Duration time.Duration
}

// CorpusLoader performs a full corpus build: it reads the stop list, lists
// the document directory, then reads and normalizes every file.
type CorpusLoader struct {
	lister   port.DirLister
	reader   port.FileReader
	dir      string
	stopList string
	workers  int
	logger   *slog.Logger
}

// NewCorpusLoader creates a loader for the documents in dir. Workers below 1
// select GOMAXPROCS.
func NewCorpusLoader(
	lister port.DirLister,
	reader port.FileReader,
	dir string,
	stopList string,
	workers int,
	logger *slog.Logger,
) *CorpusLoader {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusLoader{
		lister:   lister,
		reader:   reader,
		dir:      dir,
		stopList: stopList,
		workers:  workers,
		logger:   logger,
	}
}

// Build loads the corpus. Either the whole corpus is returned or a
// *domain.CorpusLoadError; documents that fail individually are skipped and
// listed in the report.
func (l *CorpusLoader) Build(ctx context.Context, progress ProgressFunc) (*memstore.Corpus, *LoadReport, error) {
	started := time.Now()

	stops, err := analyzer.LoadStopList(l.stopList)
	if err != nil {
		return nil, nil, &domain.CorpusLoadError{Op: "read stoplist", Path: l.stopList, Err: err}
	}

	normalizer, err := analyzer.NewNormalizer(stops)
	if err != nil {
		return nil, nil, &domain.CorpusLoadError{Op: "compile stoplist", Path: l.stopList, Err: err}
	}

	files, err := l.lister.List(l.dir)
	if err != nil {
		return nil, nil, &domain.CorpusLoadError{Op: "list documents", Path: l.dir, Err: err}
	}

	l.logger.Debug("loading corpus",
		"dir", l.dir,
		"files", len(files),
		"stopwords", len(stops))

	docs := make([]*domain.Document, len(files))
	skipped := make([]*domain.DocumentParseError, len(files))
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, file := range files {
		i, file := i, file
		id := uuid.NewString()

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := l.loadDocument(normalizer, id, file)
			if err != nil {
				skipped[i] = &domain.DocumentParseError{Filename: file.Name, Err: err}
			} else {
				docs[i] = doc
			}

			n := processed.Add(1)
			if progress != nil {
				progress(int(n), len(files), file.Name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, &domain.CorpusLoadError{Op: "load documents", Path: l.dir, Err: err}
	}

	report := &LoadReport{}
	loaded := make([]domain.Document, 0, len(files))
	for i := range files {
		if skipped[i] != nil {
			l.logger.Warn("skipping document",
				"file", skipped[i].Filename,
				"error", skipped[i].Err)
			report.Skipped = append(report.Skipped, skipped[i])
			continue
		}
		loaded = append(loaded, *docs[i])
	}

	corpus, err := memstore.NewCorpus(loaded)
	if err != nil {
		return nil, nil, &domain.CorpusLoadError{Op: "build corpus", Path: l.dir, Err: err}
	}

	report.Loaded = corpus.Len()
	report.Duration = time.Since(started)

	return corpus, report, nil
}

func (l *CorpusLoader) loadDocument(normalizer port.Normalizer, id string, file port.FileInfo) (*domain.Document, error) {
	raw, err := l.reader.ReadFile(file.Path)
	if err != nil {
		return nil, err
	}

	text, err := normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	return &domain.Document{
		ID:       id,
		Filename: file.Name,
		Text:     text,
	}, nil
}
