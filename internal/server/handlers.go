package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jstrzelecki/filesearch/internal/search"
	"github.com/jstrzelecki/filesearch/pkg/timefmt"
)

// searchRequest is the body of POST /search. Rozszerzenie is a pointer so an
// omitted field gets the configured default while an explicit "" means
// "match every file".
type searchRequest struct {
	StartPath    string  `json:"start_path"`
	Rozszerzenie *string `json:"rozszerzenie"`
	Fraza        string  `json:"fraza"`
}

// searchResponse is the shared response of both search endpoints.
type searchResponse struct {
	Wyniki             []search.Match `json:"wyniki"`
	CzasWyszukiwania   string         `json:"czas_wyszukiwania"`
	LiczbaZnalezionych int            `json:"liczba_znalezionych"`
	Status             string         `json:"status"`
}

// errorResponse mirrors the {"detail": ...} error body shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("nieprawidłowe żądanie: %v", err))
		return
	}

	ext := s.cfg.DefaultExtension
	if req.Rozszerzenie != nil {
		ext = *req.Rozszerzenie
	}

	// Phrase validation happens before any filesystem access.
	if strings.TrimSpace(req.Fraza) == "" {
		writeError(w, http.StatusBadRequest, "Fraza nie może być pusta")
		s.logOp("search", req.StartPath, false, "empty phrase", time.Since(start))
		return
	}

	out, err := search.Search(r.Context(), req.StartPath, ext, req.Fraza, s.searchOptions())
	if err != nil {
		if errors.Is(err, search.ErrPathNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			s.logOp("search", req.StartPath, false, "path not found", time.Since(start))
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Błąd wewnętrzny: %v", err))
		s.logOp("search", req.StartPath, false, err.Error(), time.Since(start))
		return
	}

	elapsed := time.Since(start)
	writeJSON(w, http.StatusOK, searchResponse{
		Wyniki:             out.Matches,
		CzasWyszukiwania:   timefmt.Czytelny(elapsed.Seconds()),
		LiczbaZnalezionych: len(out.Matches),
		Status:             "sukces",
	})
	s.logOp("search", req.StartPath, true,
		fmt.Sprintf("matches:%d skipped:%d", len(out.Matches), len(out.Skipped)), elapsed)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "File Search API",
		"version": Version,
		"endpoints": map[string]string{
			"/search":          "Wyszukiwanie w plikach na serwerze",
			"/search-uploaded": "Wyszukiwanie w uploadowanych plikach",
			"/health":          "Sprawdzanie statusu API",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": float64(time.Now().UnixNano()) / 1e9,
	})
}
