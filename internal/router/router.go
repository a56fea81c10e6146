// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package router files source documents into the processed and error
// folders without overwriting anything already there.
//
// Moves are not locked: a free name is chosen and then used, so two
// processes sharing a destination can race. One active run per input folder
// is assumed.
package router

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Router moves files and logs every move.
type Router struct {
	logger *zap.Logger
}

// New returns a router that logs through logger.
func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{logger: logger}
}

// MoveFailure records a file that could not be moved.
type MoveFailure struct {
	Source string
	Dest   string
	Err    error
}

// MoveReport summarizes a MoveAll call.
type MoveReport struct {
	Moved    []string
	Failures []MoveFailure
}

// HasFailures reports whether any move failed.
func (r MoveReport) HasFailures() bool {
	return len(r.Failures) > 0
}

// Move moves src into destDir and returns the final path. When the name is
// taken, "_1", "_2", ... is inserted before the extension until a free name
// is found. A failed move leaves src in place; the error is logged and
// returned.
func (r *Router) Move(src, destDir string) (string, error) {
	dest, err := move(src, destDir)
	if err != nil {
		r.logger.Error("could not move file",
			zap.String("file", filepath.Base(src)), zap.String("dest", destDir), zap.Error(err))
		return "", err
	}
	r.logger.Info("file moved", zap.String("file", filepath.Base(src)), zap.String("dest", dest))
	return dest, nil
}

// MoveAll moves every path in srcs into destDir, continuing past failures.
func (r *Router) MoveAll(srcs []string, destDir string) MoveReport {
	var report MoveReport
	for _, src := range srcs {
		dest, err := r.Move(src, destDir)
		if err != nil {
			report.Failures = append(report.Failures, MoveFailure{Source: src, Dest: destDir, Err: err})
			continue
		}
		report.Moved = append(report.Moved, dest)
	}
	return report
}

func move(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}
	dest, err := FreeName(destDir, filepath.Base(src))
	if err != nil {
		return "", err
	}
	if err := os.Rename(src, dest); err != nil {
		var linkErr *os.LinkError
		if !errors.As(err, &linkErr) || !isCrossDevice(linkErr) {
			return "", fmt.Errorf("moving %s: %w", src, err)
		}
		if err := copyAndRemove(src, dest); err != nil {
			return "", err
		}
	}
	return dest, nil
}

// FreeName returns the first path in dir for name that does not exist:
// name itself, then base_1.ext, base_2.ext, ...
func FreeName(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}

func copyAndRemove(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	in.Close()
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}
