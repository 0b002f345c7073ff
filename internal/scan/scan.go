// Package scan discovers compounds and their parts under a root directory.
//
// The expected layout is root/<compound>/<part>/..., where every immediate
// subdirectory of root is a compound and every immediate subdirectory of a
// compound is one of its parts. Files at either level are ignored.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// Compound is a directory holding the parts of one compound object.
type Compound struct {
	// Name is the compound's directory name.
	Name string
	// Path is the compound's directory path.
	Path string
	// Parts are the names of the compound's child directories, in the order
	// they were read from disk (byte order).
	Parts []string
}

// ScanError reports a directory that could not be read.
type ScanError struct {
	// Compound is empty when the root itself failed.
	Compound string
	Path     string
	Err      error
}

func (e *ScanError) Error() string {
	if e.Compound == "" {
		return fmt.Sprintf("scan root %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("scan compound %s: %v", e.Compound, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Scanner walks a single root directory. It never modifies the filesystem.
type Scanner struct {
	root    string
	ignore  []string
	exclude []string
	logger  *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithIgnore skips compounds and parts whose names match any of the
// filepath.Match patterns.
func WithIgnore(patterns ...string) Option {
	return func(s *Scanner) {
		s.ignore = append(s.ignore, patterns...)
	}
}

// WithExcludeCompounds skips root entries with exactly these names. Unlike
// WithIgnore it never applies to parts. Empty names are dropped.
func WithExcludeCompounds(names ...string) Option {
	return func(s *Scanner) {
		for _, n := range names {
			if n != "" {
				s.exclude = append(s.exclude, n)
			}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scanner rooted at root.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:   root,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the directory the scanner walks.
func (s *Scanner) Root() string {
	return s.root
}

// ValidateIgnore checks that every pattern is well formed.
func ValidateIgnore(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
	}
	return nil
}

// Compounds yields every compound under the root in name order.
//
// If the root cannot be read, a single *ScanError is yielded. A compound whose
// directory cannot be read yields a *ScanError instead of a Compound and the
// sequence continues with the next one. Iteration stops early when ctx is done.
func (s *Scanner) Compounds(ctx context.Context) iter.Seq2[Compound, error] {
	return func(yield func(Compound, error) bool) {
		names, err := s.subdirs(s.root)
		if err != nil {
			yield(Compound{}, &ScanError{Path: s.root, Err: err})
			return
		}

		names = slices.DeleteFunc(names, func(n string) bool {
			return slices.Contains(s.exclude, n)
		})
		s.logger.Debug("scanned root", "root", s.root, "compounds", len(names))

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				yield(Compound{}, err)
				return
			}

			path := filepath.Join(s.root, name)
			parts, err := s.subdirs(path)
			if err != nil {
				s.logger.Debug("compound unreadable", "compound", name, "error", err)
				if !yield(Compound{}, &ScanError{Compound: name, Path: path, Err: err}) {
					return
				}
				continue
			}

			s.logger.Debug("scanned compound", "compound", name, "parts", len(parts))
			if !yield(Compound{Name: name, Path: path, Parts: parts}, nil) {
				return
			}
		}
	}
}

// Scan collects all compounds, stopping at the first error.
func (s *Scanner) Scan(ctx context.Context) ([]Compound, error) {
	var out []Compound
	for c, err := range s.Compounds(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// subdirs lists the names of the directories directly inside dir.
func (s *Scanner) subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s.ignored(entry.Name()) {
			continue
		}
		ok, err := isDir(dir, entry)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, p := range s.ignore {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// isDir reports whether entry is a directory, following symlinks.
// Dangling links are not directories.
func isDir(dir string, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
