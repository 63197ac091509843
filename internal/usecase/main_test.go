package usecase

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"htmlsearch/internal/adapter/fs"
)

// TestMain checks that no goroutine outlives the tests: corpus builds,
// single-flight waiters and matcher pools must all shut down.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// The worker-pool library starts a default pool at init.
		goleak.IgnoreCurrent(),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeCorpus lays out a document directory and stop list under a temp dir.
func writeCorpus(t *testing.T, files map[string]string, stops string) (dir, stopList string) {
	t.Helper()
	root := t.TempDir()
	dir = filepath.Join(root, "files")
	require.NoError(t, os.MkdirAll(dir, 0755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	stopList = filepath.Join(root, "stoplist.txt")
	require.NoError(t, os.WriteFile(stopList, []byte(stops), 0644))
	return dir, stopList
}

func newLoader(dir, stopList string) *CorpusLoader {
	return NewCorpusLoader(fs.NewLister(nil), fs.OSReader{}, dir, stopList, 2, discardLogger())
}
