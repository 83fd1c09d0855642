// Package api serves the known-words store over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/f3rmion/scribe/internal/knownwords"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// WordStore is the storage the server needs.
type WordStore interface {
	Add(ctx context.Context, words []string) (added, skipped int, err error)
	Remove(ctx context.Context, word string) (bool, error)
	All(ctx context.Context) ([]string, error)
}

// Server handles the known-words endpoints.
type Server struct {
	store WordStore
	log   *slog.Logger
}

// NewServer creates a Server over store.
func NewServer(store WordStore, logger *slog.Logger) *Server {
	return &Server{
		store: store,
		log:   logger.With("component", "api"),
	}
}

// Handler returns the routed handler wrapped in recovery and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+knownwords.AddPath, s.addWords)
	mux.HandleFunc("GET "+knownwords.ListPath, s.listWords)
	mux.HandleFunc("POST "+knownwords.RemovePath, s.removeWord)
	mux.HandleFunc("GET /health", s.health)

	return Chain(Recovery(s.log), Logger(s.log))(mux)
}

type addRequest struct {
	Words []string `json:"words"`
}

type addResponse struct {
	Success      bool   `json:"success"`
	AddedCount   int    `json:"addedCount"`
	SkippedCount int    `json:"skippedCount"`
	Message      string `json:"message"`
}

type listResponse struct {
	Success bool     `json:"success"`
	Words   []string `json:"words"`
	Count   int      `json:"count"`
}

type removeRequest struct {
	Word string `json:"word"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) addWords(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Words) == 0 {
		writeError(w, http.StatusBadRequest, "word list is empty")
		return
	}

	added, skipped, err := s.store.Add(r.Context(), req.Words)
	if err != nil {
		s.log.ErrorContext(r.Context(), "adding words failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, addResponse{
		Success:      true,
		AddedCount:   added,
		SkippedCount: skipped,
		Message:      fmt.Sprintf("added %d words", added),
	})
}

func (s *Server) listWords(w http.ResponseWriter, r *http.Request) {
	words, err := s.store.All(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "listing words failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Words: words, Count: len(words)})
}

func (s *Server) removeWord(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is empty")
		return
	}

	removed, err := s.store.Remove(r.Context(), word)
	if err != nil {
		s.log.ErrorContext(r.Context(), "removing word failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	msg := fmt.Sprintf("removed %q", word)
	if !removed {
		msg = fmt.Sprintf("%q was not a known word", word)
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("invalid JSON")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
