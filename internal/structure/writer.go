package structure

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/structgen/internal/scan"
)

// DefaultBaseName is the structure file name without extension.
const DefaultBaseName = "structure"

// WriteError reports a structure file that could not be written.
type WriteError struct {
	Compound string
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write structure for %s to %s: %v", e.Compound, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result describes one written structure file.
type Result struct {
	Path string
	// Changed is false when the file already held identical bytes.
	Changed bool
}

// Writer writes one structure file per compound.
type Writer struct {
	// Encoder serializes the structure; nil means XML.
	Encoder Encoder
	// FileName overrides "structure" plus the encoder's extension.
	FileName string
	// OutputDir, when set, receives <OutputDir>/<compound>/<file> instead of
	// writing next to the parts.
	OutputDir string
	// Perm is the file mode of new files; 0 means 0644.
	Perm fs.FileMode
}

func (w *Writer) encoder() Encoder {
	if w.Encoder == nil {
		return XMLEncoder{}
	}
	return w.Encoder
}

// Name returns the structure file name.
func (w *Writer) Name() string {
	if w.FileName != "" {
		return w.FileName
	}
	return DefaultBaseName + w.encoder().Ext()
}

// RootEntry returns the entry of root that holds OutputDir, such as "out"
// for root/out/structures. It is empty when OutputDir is unset, equals root
// or lies outside it.
func (w *Writer) RootEntry(root string) string {
	if w.OutputDir == "" {
		return ""
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absOut, err := filepath.Abs(w.OutputDir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absRoot, absOut)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return first
}

// Path returns where the structure of c is written.
func (w *Writer) Path(c scan.Compound) string {
	name := w.Name()
	if w.OutputDir != "" {
		return filepath.Join(w.OutputDir, c.Name, name)
	}
	return filepath.Join(c.Path, name)
}

// Encode renders s to bytes.
func (w *Writer) Encode(s Structure) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.encoder().Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes s and stores it at Path(c). Files whose content would not
// change are left alone, so repeated runs keep both bytes and mtimes.
func (w *Writer) Write(c scan.Compound, s Structure) (Result, error) {
	dest := w.Path(c)
	data, err := w.Encode(s)
	if err != nil {
		return Result{}, &WriteError{Compound: c.Name, Path: dest, Err: err}
	}

	existing, err := os.ReadFile(dest)
	if err == nil && bytes.Equal(existing, data) {
		return Result{Path: dest}, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Result{}, &WriteError{Compound: c.Name, Path: dest, Err: err}
	}

	if w.OutputDir != "" {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return Result{}, &WriteError{Compound: c.Name, Path: dest, Err: err}
		}
	}
	if err := w.writeAtomic(dest, data); err != nil {
		return Result{}, &WriteError{Compound: c.Name, Path: dest, Err: err}
	}
	return Result{Path: dest, Changed: true}, nil
}

// writeAtomic writes data to a temp file beside dest and renames it over dest.
func (w *Writer) writeAtomic(dest string, data []byte) error {
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".structgen-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
