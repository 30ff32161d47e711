// Package scan enumerates a project's files and loads the text content the
// analyzers read. A scan is read-only and produces one immutable Result that
// every downstream stage shares.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/logging"
)

// DefaultMaxFileSize is the largest file whose content is loaded (512 KiB).
const DefaultMaxFileSize = 512 << 10

// binarySniffLen is how many leading bytes are checked for NUL.
const binarySniffLen = 8000

// textExtensions are loaded when under the size ceiling.
var textExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".vue": true, ".svelte": true, ".php": true, ".py": true, ".go": true, ".rb": true,
	".rs": true, ".java": true, ".kt": true, ".prisma": true, ".graphql": true, ".gql": true,
	".json": true, ".toml": true, ".yaml": true, ".yml": true, ".lock": true, ".mod": true,
	".md": true, ".mdx": true, ".txt": true, ".css": true, ".scss": true, ".sass": true,
	".less": true, ".html": true, ".sql": true, ".xml": true, ".gradle": true,
}

// textNames are loaded regardless of extension.
var textNames = map[string]bool{
	"Gemfile":    true,
	"Makefile":   true,
	"Dockerfile": true,
	"artisan":    true,
	"Procfile":   true,
}

// Scanner produces a Result for a project root. The zero value is usable:
// it applies DefaultMaxFileSize, DefaultIgnore, and looks for rg on PATH.
// A Scanner holds no per-scan state and is safe for concurrent use.
type Scanner struct {
	// MaxFileSize is the content loading ceiling in bytes. Zero uses DefaultMaxFileSize.
	MaxFileSize int64

	// Ignore overrides the ignore rules. A zero value uses DefaultIgnore.
	Ignore IgnoreRules

	// RipgrepPath is the rg binary to look for. Empty means "rg".
	RipgrepPath string

	// DisableFastSearch forces the walk strategy.
	DisableFastSearch bool

	// Logger receives scan diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// Scan validates root, selects a listing strategy once, enumerates files and
// loads the text ones. It returns a *ProjectAccessError when the root cannot
// be read and ctx.Err() when canceled; no partial Result is ever returned.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	log := logging.OrDiscard(s.Logger)

	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	rules := s.Ignore
	if len(rules.Dirs) == 0 && len(rules.Globs) == 0 {
		rules = DefaultIgnore()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	maxSize := s.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var strategy Strategy = WalkStrategy{}
	fastAvailable := false
	if !s.DisableFastSearch {
		strategy = SelectStrategy(s.RipgrepPath)
		_, fastAvailable = strategy.(RipgrepStrategy)
	}

	listing, err := strategy.List(ctx, abs, rules)
	if err != nil && fastAvailable && ctx.Err() == nil {
		log.WithError(err).Warn("ripgrep listing failed, walking instead")
		strategy = WalkStrategy{}
		listing, err = strategy.List(ctx, abs, rules)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ProjectAccessError{Root: root, Err: err}
	}

	files := make([]File, 0, len(listing.Entries))
	stats := Stats{
		Skipped:             listing.Skipped,
		Strategy:            strategy.Name(),
		FastSearchAvailable: fastAvailable,
	}
	for _, e := range listing.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := File{Path: e.Path, Size: e.Size}
		if e.Size <= maxSize && isTextCandidate(e.Path) {
			data, readErr := os.ReadFile(filepath.Join(abs, filepath.FromSlash(e.Path)))
			switch {
			case readErr != nil:
				stats.Skipped++
				log.WithError(readErr).WithField("path", e.Path).Debug("skipping unreadable file")
			case isBinary(data):
			default:
				f.Content = data
				f.Loaded = true
			}
		}
		files = append(files, f)
	}

	res := NewResult(abs, files, stats, conventionDirs(abs, rules)...)
	log.WithFields(logrus.Fields{
		"root":     abs,
		"strategy": res.Stats.Strategy,
		"files":    res.Stats.FilesScanned,
		"loaded":   res.Stats.FilesLoaded,
		"skipped":  res.Stats.Skipped,
	}).Debug("scan complete")
	return res, nil
}

// resolveRoot makes root absolute and checks that it is a listable directory.
func resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", &ProjectAccessError{Root: root, Err: errors.New("empty path")}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &ProjectAccessError{Root: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ProjectAccessError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return "", &ProjectAccessError{Root: root, Err: fmt.Errorf("%s is not a directory", abs)}
	}
	dir, err := os.Open(abs)
	if err != nil {
		return "", &ProjectAccessError{Root: root, Err: err}
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && err != io.EOF {
		return "", &ProjectAccessError{Root: root, Err: err}
	}
	return abs, nil
}

// sourceRoots are top-level directories whose children are listed too, so
// src-layout conventions such as src/app are seen when empty.
var sourceRoots = []string{"src"}

// conventionDirs lists the non-ignored directories directly under root and
// under each source root. Listing strategies only report files, so empty
// convention directories would otherwise be invisible.
func conventionDirs(root string, rules IgnoreRules) []string {
	dirs := childDirs(root, "", rules)
	for _, src := range sourceRoots {
		dirs = append(dirs, childDirs(filepath.Join(root, src), src, rules)...)
	}
	return dirs
}

func childDirs(dir, rel string, rules IgnoreRules) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if rel != "" {
			name = rel + "/" + name
		}
		if !rules.Match(name, true) {
			dirs = append(dirs, name)
		}
	}
	return dirs
}

// isTextCandidate reports whether a path is worth loading.
func isTextCandidate(p string) bool {
	base := path.Base(p)
	if textNames[base] || strings.HasPrefix(base, ".env") {
		return true
	}
	return textExtensions[strings.ToLower(path.Ext(base))]
}

// isBinary reports whether data contains a NUL byte near its start.
func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// sortFiles orders files by path for deterministic output.
func sortFiles(files []File) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}
