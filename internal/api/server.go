package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/classifier"
	"github.com/pbaille/digest/internal/domain"
	"github.com/pbaille/digest/internal/importance"
	"github.com/pbaille/digest/internal/logging"
	"github.com/pbaille/digest/internal/parser"
	"github.com/pbaille/digest/internal/render"
	"github.com/pbaille/digest/internal/reorder"
	"github.com/pbaille/digest/internal/store"
)

// maxBody bounds request bodies
const maxBody = 8 << 20

// Server exposes the digest transforms over HTTP
type Server struct {
	classifier *classifier.Classifier
	engine     *reorder.Engine
	layout     render.CountLayout
	addr       string
	runID      string
	logger     *zap.Logger
}

// New creates a new API server. Responses carry runID, the ID of the run that
// started the server; an empty runID gets a fresh one.
func New(c *classifier.Classifier, engine *reorder.Engine, layout render.CountLayout, addr, runID string, logger *zap.Logger) *Server {
	if runID == "" {
		runID = uuid.New().String()
	}
	return &Server{
		classifier: c,
		engine:     engine,
		layout:     layout,
		addr:       addr,
		runID:      runID,
		logger:     logging.OrNop(logger),
	}
}

// Handler returns the router with all routes registered
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(withCORS)

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/classify", s.classify)
		r.Post("/split", s.split)
		r.Post("/reorder", s.reorder)
		r.Post("/sort", s.sort)
	})

	return r
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.logger.Info("Starting server", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClassifyRequest is the request body for classifying text
type ClassifyRequest struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
}

// ClassifyResponse is the response for classifying text
type ClassifyResponse struct {
	Category string `json:"category"`
	Matched  bool   `json:"matched"` // false when the fallback category was used
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	category := s.classifier.Classify(req.Context, req.Text)
	writeJSON(w, http.StatusOK, ClassifyResponse{
		Category: category,
		Matched:  category != s.classifier.Fallback(),
	})
}

// TransformResponse is the response of the text transforms
type TransformResponse struct {
	RunID    string                 `json:"run_id"`
	Text     string                 `json:"text,omitempty"`
	Document *domain.Document       `json:"document,omitempty"`
	Sections []reorder.Result       `json:"sections,omitempty"`
	Counts   []domain.CategoryCount `json:"counts,omitempty"`
}

func (s *Server) split(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, TransformResponse{RunID: s.runID, Document: &doc})
}

func (s *Server) reorder(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	out, results := s.engine.Document(doc)
	writeJSON(w, http.StatusOK, TransformResponse{
		RunID:    s.runID,
		Text:     render.Document(out),
		Sections: results,
	})
}

func (s *Server) sort(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	sorted := importance.SortCollection(store.FromDocument(doc))
	writeJSON(w, http.StatusOK, TransformResponse{
		RunID:  s.runID,
		Text:   render.CountedDocument(doc.Header, sorted, s.layout),
		Counts: sorted.Counts(),
	})
}

// readDocument parses a plain-text request body, writing the error response
// itself when the body is unusable
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (domain.Document, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return domain.Document{}, false
	}
	if !utf8.Valid(body) {
		writeError(w, http.StatusUnprocessableEntity, "body is not valid utf-8")
		return domain.Document{}, false
	}

	doc, err := parser.Parse(string(body))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoSections) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return domain.Document{}, false
	}
	s.logger.Debug("Parsed request document",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("sections", len(doc.Sections)))
	return doc, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
