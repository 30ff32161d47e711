package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one scanned file. Content is set only when Loaded is true.
type File struct {
	Path    string
	Size    int64
	Content []byte
	Loaded  bool
}

// Ext returns the lowercased extension including the dot.
func (f File) Ext() string {
	return strings.ToLower(path.Ext(f.Path))
}

// Base returns the final path element.
func (f File) Base() string {
	return path.Base(f.Path)
}

// Stats summarizes a scan.
type Stats struct {
	FilesScanned        int    `json:"filesScanned"`
	FilesLoaded         int    `json:"filesLoaded"`
	Skipped             int    `json:"skipped"`
	Strategy            string `json:"strategy"`
	FastSearchAvailable bool   `json:"fastSearchAvailable"`
}

// Result is an immutable scan of one project root. Callers must not modify
// the slices it returns.
type Result struct {
	Root        string
	Files       []File
	Stats       Stats
	Fingerprint string

	index map[string]int
	dirs  map[string]struct{}
}

// NewResult builds a Result from files, sorting them, indexing paths and
// computing the fingerprint. FilesScanned and FilesLoaded are derived from
// files; the remaining stats are taken as given. dirs records directories
// that hold no listed files (an empty app/, for instance) so HasDir sees them.
func NewResult(root string, files []File, stats Stats, dirs ...string) *Result {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sortFiles(sorted)

	r := &Result{
		Root:  root,
		Files: sorted,
		index: make(map[string]int, len(sorted)),
		dirs:  make(map[string]struct{}),
	}
	h := sha256.New()
	for i, f := range sorted {
		r.index[f.Path] = i
		for dir := path.Dir(f.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
			r.dirs[dir] = struct{}{}
		}
		fmt.Fprintf(h, "%s\x00%d\x00", f.Path, f.Size)
		if f.Loaded {
			sum := sha256.Sum256(f.Content)
			h.Write(sum[:])
			stats.FilesLoaded++
		}
		h.Write([]byte{'\n'})
	}
	for _, d := range dirs {
		if d = strings.Trim(d, "/"); d != "" {
			r.dirs[d] = struct{}{}
		}
	}
	stats.FilesScanned = len(sorted)
	if stats.Strategy == "" {
		stats.Strategy = "memory"
	}
	r.Stats = stats
	r.Fingerprint = "sha256:" + hex.EncodeToString(h.Sum(nil))
	return r
}

// FromContents builds a loaded Result from an in-memory path→content map.
func FromContents(root string, contents map[string]string) *Result {
	files := make([]File, 0, len(contents))
	for p, c := range contents {
		files = append(files, File{Path: p, Size: int64(len(c)), Content: []byte(c), Loaded: true})
	}
	return NewResult(root, files, Stats{})
}

// Lookup returns the file at p.
func (r *Result) Lookup(p string) (File, bool) {
	i, ok := r.index[p]
	if !ok {
		return File{}, false
	}
	return r.Files[i], true
}

// Has reports whether a file exists at p.
func (r *Result) Has(p string) bool {
	_, ok := r.index[p]
	return ok
}

// HasAny reports whether any of the given paths exists.
func (r *Result) HasAny(paths ...string) bool {
	for _, p := range paths {
		if r.Has(p) {
			return true
		}
	}
	return false
}

// HasDir reports whether any scanned file lives under dir.
func (r *Result) HasDir(dir string) bool {
	_, ok := r.dirs[strings.Trim(dir, "/")]
	return ok
}

// Content returns the loaded content of p, or "" when absent or not loaded.
func (r *Result) Content(p string) string {
	f, ok := r.Lookup(p)
	if !ok || !f.Loaded {
		return ""
	}
	return string(f.Content)
}

// WithExt returns the files whose extension is one of exts, in path order.
func (r *Result) WithExt(exts ...string) []File {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}
	var out []File
	for _, f := range r.Files {
		if want[f.Ext()] {
			out = append(out, f)
		}
	}
	return out
}

// Glob returns the files matching a doublestar pattern, in path order.
func (r *Result) Glob(pattern string) []File {
	var out []File
	for _, f := range r.Files {
		if ok, _ := doublestar.Match(pattern, f.Path); ok {
			out = append(out, f)
		}
	}
	return out
}

// Paths returns every scanned path in order.
func (r *Result) Paths() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Path
	}
	return out
}
