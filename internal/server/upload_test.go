package server

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrzelecki/filesearch/internal/audit"
	"github.com/jstrzelecki/filesearch/internal/config"
)

type uploadField struct {
	name    string
	content string
}

func postUpload(t *testing.T, s *Server, fields map[string]string, files []uploadField) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/search-uploaded", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestSearchUploaded(t *testing.T) {
	s := newTestServer(t)

	w := postUpload(t, s,
		map[string]string{"fraza": "needle", "rozszerzenie": ".txt"},
		[]uploadField{
			{"matching.txt", "needle here\nnothing\nneedle again\n"},
			{"ignored.log", "needle everywhere\n"},
		})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sukces", body["status"])
	assert.Equal(t, float64(2), body["liczba_znalezionych"])

	wyniki := body["wyniki"].([]any)
	require.Len(t, wyniki, 2)
	for _, raw := range wyniki {
		match := raw.(map[string]any)
		// Reported path is the bare file name, no staging dir prefix.
		assert.Equal(t, "matching.txt", match["sciezka"])
	}
	first := wyniki[0].(map[string]any)
	assert.Equal(t, float64(1), first["nr_linii"])
	assert.Equal(t, "needle here", first["tresc"])
}

func TestSearchUploadedEmptyExtensionMatchesAll(t *testing.T) {
	s := newTestServer(t)

	w := postUpload(t, s,
		map[string]string{"fraza": "needle", "rozszerzenie": ""},
		[]uploadField{
			{"a.txt", "needle\n"},
			{"b.log", "needle\n"},
		})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["liczba_znalezionych"])
}

func TestSearchUploadedDefaultExtension(t *testing.T) {
	s := newTestServer(t)

	// No rozszerzenie field at all: the configured default ".txt" applies.
	w := postUpload(t, s,
		map[string]string{"fraza": "needle"},
		[]uploadField{
			{"a.txt", "needle\n"},
			{"b.log", "needle\n"},
		})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["liczba_znalezionych"])
}

func TestSearchUploadedEmptyPhrase(t *testing.T) {
	s := newTestServer(t)

	w := postUpload(t, s,
		map[string]string{"fraza": "   "},
		[]uploadField{{"a.txt", "content\n"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Fraza nie może być pusta", decodeBody(t, w)["detail"])
}

func TestSearchUploadedNoFiles(t *testing.T) {
	s := newTestServer(t)

	w := postUpload(t, s, map[string]string{"fraza": "needle"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchUploadedBodyTooLarge(t *testing.T) {
	trail, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer trail.Close()

	cfg := &config.Config{
		DefaultExtension: ".txt",
		DecodePolicy:     "replace",
		MaxUploadBytes:   1024,
	}
	s, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), trail)
	require.NoError(t, err)

	w := postUpload(t, s,
		map[string]string{"fraza": "needle"},
		[]uploadField{{"big.txt", strings.Repeat("x", 64*1024)}})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// The rejection is audited like every other handler exit.
	entries, err := trail.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "search-uploaded", entries[0].Op)
	assert.False(t, entries[0].Success)
}

func TestSearchUploadedRejectsDotDotName(t *testing.T) {
	s := newTestServer(t)

	w := postUpload(t, s,
		map[string]string{"fraza": "needle", "rozszerzenie": ""},
		[]uploadField{{"..", "needle\n"}})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w)["detail"], "invalid upload name")
}

func TestSearchUploadedStagingCleanup(t *testing.T) {
	s := newTestServer(t)

	before := stagingDirs(t)
	w := postUpload(t, s,
		map[string]string{"fraza": "needle"},
		[]uploadField{{"a.txt", "needle\n"}})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, before, stagingDirs(t), "staging directory leaked")
}

func stagingDirs(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "filesearch-*"))
	require.NoError(t, err)
	return matches
}
