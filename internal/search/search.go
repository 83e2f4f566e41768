// Package search implements the recursive walk-and-scan routine: it
// enumerates files under a root, filters them by name suffix, and reports
// every line containing a literal phrase.
package search

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrPathNotFound is returned when the search root does not exist.
var ErrPathNotFound = errors.New("ścieżka nie istnieje")

// errBinaryFile marks files skipped by the binary probe.
var errBinaryFile = errors.New("binary file")

// errTooLarge marks files skipped by the size guard.
var errTooLarge = errors.New("file exceeds size limit")

// Match is one occurrence of the phrase within one line of one file.
// The JSON names are the wire contract of the HTTP layer.
type Match struct {
	Path string `json:"sciezka"`
	Line int    `json:"nr_linii"`
	Text string `json:"tresc"`
}

// SkippedFile records a file the scan could not read. Skips degrade
// completeness only; they are never surfaced to callers as failures.
type SkippedFile struct {
	Path string
	Err  error
}

// Outcome is the result of a single scan.
type Outcome struct {
	Matches []Match
	Skipped []SkippedFile
}

// Options tunes a scan. The zero value is usable: replace-decoding,
// no size limit, binaries scanned like any other file.
type Options struct {
	Decode      DecodePolicy
	MaxFileSize int64 // bytes, 0 = unlimited
	SkipBinary  bool  // skip files whose first 8 KiB contain a NUL byte
	Logger      *slog.Logger
}

// maxLineSize bounds a single scanned line. Lines longer than this make the
// file count as unreadable from that point on.
const maxLineSize = 1 << 20

// Search walks root and returns every line containing phrase in files whose
// name ends with ext. An empty ext matches every file. A root that is a
// regular file is scanned as a single file. Per-file read problems are
// collected into Outcome.Skipped and never abort the walk; a missing root is
// the only fatal condition.
//
// Callers are responsible for rejecting empty phrases; the routine itself
// makes no claim about phrase content.
func Search(ctx context.Context, root, ext, phrase string, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		// ENOTDIR means a path component is a regular file, so the root
		// does not exist either.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return nil, err
	}

	out := &Outcome{Matches: []Match{}}

	if !info.IsDir() {
		if strings.HasSuffix(filepath.Base(root), ext) {
			scanFile(root, phrase, opts, logger, out)
		}
		return out, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: walkErr})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		scanFile(path, phrase, opts, logger, out)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// scanFile reads one file line by line and appends matches to out. Any
// failure is recorded as a skip; matches found before a mid-read failure are
// kept.
func scanFile(path, phrase string, opts Options, logger *slog.Logger, out *Outcome) {
	if opts.MaxFileSize > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > opts.MaxFileSize {
			out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: errTooLarge})
			return
		}
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Warn("cannot open file", "path", path, "error", err)
		out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: err})
		return
	}
	defer file.Close()

	if opts.SkipBinary {
		binary, err := isBinary(file)
		if err != nil {
			out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: err})
			return
		}
		if binary {
			out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: errBinaryFile})
			return
		}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	nrLinii := 0
	for scanner.Scan() {
		nrLinii++
		line := decodeLine(scanner.Bytes(), opts.Decode)
		if strings.Contains(line, phrase) {
			out.Matches = append(out.Matches, Match{
				Path: path,
				Line: nrLinii,
				Text: strings.TrimSpace(line),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("read failed mid-file", "path", path, "line", nrLinii, "error", err)
		out.Skipped = append(out.Skipped, SkippedFile{Path: path, Err: err})
	}
}

// isBinary reports whether the first 8 KiB of f contain a NUL byte. The read
// offset is rewound before returning.
func isBinary(f *os.File) (bool, error) {
	buf := make([]byte, 8192)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true, nil
		}
	}
	return false, nil
}
