package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Strategy names.
const (
	StrategyRipgrep = "ripgrep"
	StrategyWalk    = "walk"
)

// Entry is one listed file before content loading.
type Entry struct {
	Path string // slash-separated, relative to the root
	Size int64
}

// Listing is what a Strategy returns: the candidate files plus the number of
// subpaths it could not read.
type Listing struct {
	Entries []Entry
	Skipped int
}

// Strategy enumerates candidate files under a project root. Implementations
// must honor the ignore rules and return entries in any order; the scanner
// sorts them.
type Strategy interface {
	Name() string
	List(ctx context.Context, root string, rules IgnoreRules) (Listing, error)
}

// SelectStrategy selects the listing strategy for one scan. When the ripgrep binary
// at rgPath resolves on PATH the accelerated strategy is returned; otherwise
// the filesystem walk.
func SelectStrategy(rgPath string) Strategy {
	if rgPath == "" {
		rgPath = "rg"
	}
	resolved, err := exec.LookPath(rgPath)
	if err != nil {
		return WalkStrategy{}
	}
	return RipgrepStrategy{Path: resolved}
}

// RipgrepStrategy delegates file enumeration to rg --files.
type RipgrepStrategy struct {
	Path string
}

// Name returns "ripgrep".
func (RipgrepStrategy) Name() string { return StrategyRipgrep }

// List runs rg --files with NUL-separated output. VCS ignore files are
// disabled so that the listing depends only on the ignore rules and matches
// the walk strategy.
func (s RipgrepStrategy) List(ctx context.Context, root string, rules IgnoreRules) (Listing, error) {
	args := []string{"--files", "--hidden", "--null", "--no-ignore", "--no-messages"}
	args = append(args, rules.ripgrepGlobs()...)

	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Listing{}, ctxErr
		}
		// Exit status 1 with no output means no files matched.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 || stdout.Len() > 0 {
			return Listing{}, fmt.Errorf("rg --files: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
	}

	return parseRipgrepFiles(root, stdout.Bytes(), rules), nil
}

// parseRipgrepFiles splits NUL-separated rg output and stats each path.
func parseRipgrepFiles(root string, out []byte, rules IgnoreRules) Listing {
	var listing Listing
	for _, raw := range bytes.Split(out, []byte{0}) {
		rel := strings.TrimSpace(string(raw))
		if rel == "" {
			continue
		}
		rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
		if rules.Match(rel, false) {
			continue
		}
		info, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			listing.Skipped++
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		listing.Entries = append(listing.Entries, Entry{Path: rel, Size: info.Size()})
	}
	return listing
}

// WalkStrategy enumerates files with filepath.WalkDir.
type WalkStrategy struct{}

// Name returns "walk".
func (WalkStrategy) Name() string { return StrategyWalk }

// List walks root, pruning ignored directories. Unreadable subdirectories
// and files are counted in Skipped; only a failure on the root itself is
// returned as an error.
func (WalkStrategy) List(ctx context.Context, root string, rules IgnoreRules) (Listing, error) {
	var listing Listing
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return err
			}
			listing.Skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			listing.Skipped++
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rules.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || rules.Match(rel, false) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			listing.Skipped++
			return nil
		}
		listing.Entries = append(listing.Entries, Entry{Path: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}
