package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/katalvlaran/infomax/matrix"
	"gopkg.in/yaml.v3"
)

// Well-known archive keys used by the experiment harness.
const (
	KeySources = "sources"
	KeyMixing  = "mixing"
)

// Archive is a named collection of matrices. Matrices are copied on Put and
// on Get, so callers never share storage with the archive.
// The zero value is not usable; call NewArchive.
type Archive struct {
	m map[string]*matrix.Dense
}

// archiveDoc is the YAML layout of an Archive.
type archiveDoc struct {
	Matrices map[string][][]float64 `yaml:"matrices"`
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{m: make(map[string]*matrix.Dense)}
}

// Put stores a copy of m under key, replacing any previous entry.
func (a *Archive) Put(key string, m matrix.Matrix) error {
	if key == "" {
		return fmt.Errorf("put: empty key: %w", ErrEmpty)
	}
	d, err := matrix.CloneDense(m)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	a.m[key] = d

	return nil
}

// Get returns a copy of the matrix stored under key.
func (a *Archive) Get(key string) (*matrix.Dense, error) {
	d, ok := a.m[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrKeyNotFound)
	}

	return d.Clone().(*matrix.Dense), nil
}

// Has reports whether key is present.
func (a *Archive) Has(key string) bool {
	_, ok := a.m[key]

	return ok
}

// Keys returns the stored names in sorted order.
func (a *Archive) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Decode reads a YAML archive from r.
func Decode(r io.Reader) (*Archive, error) {
	var doc archiveDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode: %w", ErrEmpty)
		}
		return nil, fmt.Errorf("decode: %v: %w", err, ErrUnreadable)
	}
	a := NewArchive()
	for key, rows := range doc.Matrices {
		if len(rows) == 0 {
			return nil, fmt.Errorf("decode %q: %w", key, ErrEmpty)
		}
		d, err := matrix.NewDenseFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %v: %w", key, err, ErrUnreadable)
		}
		a.m[key] = d
	}

	return a, nil
}

// Encode writes the archive to w as YAML.
func (a *Archive) Encode(w io.Writer) error {
	doc := archiveDoc{Matrices: make(map[string][][]float64, len(a.m))}
	for k, d := range a.m {
		doc.Matrices[k] = d.RowsCopy()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return enc.Close()
}

// Load reads a YAML archive from path.
func Load(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	a, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Save writes the archive to path, creating parent directories as needed.
func (a *Archive) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}
