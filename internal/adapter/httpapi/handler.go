package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"htmlsearch/internal/domain"
)

// Searcher answers a query with ranked results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Query   string       `json:"query"`
	Results []resultView `json:"results"`
}

// resultView adds the retrieval link of the matched document.
type resultView struct {
	domain.SearchResult
	URL string `json:"url"`
}

func fileURL(filename string) string {
	return "/files/" + url.PathEscape(filename)
}

// NewRouter serves search requests and the raw documents under /files/.
func NewRouter(searcher Searcher, filesDir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{searcher: searcher, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Get("/search", h.handleSearch)
	r.Post("/search", h.handleSearch)
	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(filesDir))))

	return r
}

type handler struct {
	searcher Searcher
	logger   *slog.Logger
}

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := readQuery(r)
	if err != nil {
		writeJSON(w, nil, httpErr{code: http.StatusBadRequest, msg: "bad request"})
		return
	}

	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search failed", "query", query, "error", err)
		if errors.Is(err, domain.ErrCorpusLoad) {
			err = httpErr{code: http.StatusServiceUnavailable, msg: "search unavailable"}
		}
		writeJSON(w, nil, err)
		return
	}
	views := make([]resultView, 0, len(results))
	for _, r := range results {
		views = append(views, resultView{SearchResult: r, URL: fileURL(r.Filename)})
	}

	writeJSON(w, searchResponse{Query: query, Results: views}, nil)
}

// readQuery takes the query from a JSON body, a form body or the URL.
func readQuery(r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("query"), nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return req.Query, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("query"), nil
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		code := http.StatusInternalServerError
		msg := "internal error"
		var he httpErr
		if errors.As(err, &he) {
			code, msg = he.code, he.msg
		}
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

type httpErr struct {
	code int
	msg  string
}

func (e httpErr) Error() string { return e.msg }

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(started),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
