package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jstrzelecki/filesearch/internal/search"
	"github.com/jstrzelecki/filesearch/pkg/timefmt"
)

func (s *Server) handleSearchUploaded(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// MaxBytesReader enforces the upload cap; ParseMultipartForm's argument
	// only sets the memory-vs-disk spill threshold.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, fmt.Sprintf("nieprawidłowy formularz: %v", err))
		s.logOp("search-uploaded", "", false, err.Error(), time.Since(start))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	fraza := r.FormValue("fraza")
	if strings.TrimSpace(fraza) == "" {
		writeError(w, http.StatusBadRequest, "Fraza nie może być pusta")
		s.logOp("search-uploaded", "", false, "empty phrase", time.Since(start))
		return
	}

	ext := s.cfg.DefaultExtension
	if values, ok := r.MultipartForm.Value["rozszerzenie"]; ok && len(values) > 0 {
		ext = values[0]
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "Nie przesłano żadnych plików")
		s.logOp("search-uploaded", "", false, "no files", time.Since(start))
		return
	}

	out, err := s.searchStaged(r, files, ext, fraza)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Błąd przetwarzania plików: %v", err))
		s.logOp("search-uploaded", fmt.Sprintf("%d files", len(files)), false, err.Error(), time.Since(start))
		return
	}

	elapsed := time.Since(start)
	writeJSON(w, http.StatusOK, searchResponse{
		Wyniki:             out.Matches,
		CzasWyszukiwania:   timefmt.Czytelny(elapsed.Seconds()),
		LiczbaZnalezionych: len(out.Matches),
		Status:             "sukces",
	})
	s.logOp("search-uploaded", fmt.Sprintf("%d files", len(files)), true,
		fmt.Sprintf("matches:%d", len(out.Matches)), elapsed)
}

// searchStaged copies the accepted uploads into a request-scoped staging
// directory, scans it, and rewrites result paths to bare file names. The
// staging directory is removed on every exit path.
func (s *Server) searchStaged(r *http.Request, files []*multipart.FileHeader, ext, fraza string) (*search.Outcome, error) {
	stagingDir := filepath.Join(os.TempDir(), "filesearch-"+uuid.NewString())
	if err := os.Mkdir(stagingDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create staging directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(stagingDir); err != nil {
			s.log.Warn("staging cleanup failed", "dir", stagingDir, "error", err)
		}
	}()

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return nil, fmt.Errorf("invalid upload name %q", fh.Filename)
		}
		if !strings.HasSuffix(name, ext) {
			continue
		}
		if err := stageFile(fh, filepath.Join(stagingDir, name)); err != nil {
			return nil, err
		}
	}

	out, err := search.Search(r.Context(), stagingDir, ext, fraza, s.searchOptions())
	if err != nil {
		return nil, err
	}

	// Clients see only the uploaded file names, never the staging location.
	for i := range out.Matches {
		out.Matches[i].Path = filepath.Base(out.Matches[i].Path)
	}
	return out, nil
}

func stageFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("cannot open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cannot stage upload %s: %w", fh.Filename, err)
	}
	_, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return fmt.Errorf("cannot stage upload %s: %w", fh.Filename, err)
	}
	return nil
}
