// Package loader reads keywarp configuration files.
//
// Three formats are accepted and all produce the same ordered list of
// key/value pairs:
//
//   - the native line format, one "key: value" pair per line
//   - TOML (*.toml), where nested tables are joined with '_'
//   - YAML (*.yaml, *.yml), flattened the same way
//
// Loaders only split text; validation of keys and values happens in the
// config registry so that every format is checked identically.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a configuration file syntax.
type Format int

const (
	// FormatLines is the native "key: value" line format.
	FormatLines Format = iota

	// FormatTOML is TOML.
	FormatTOML

	// FormatYAML is YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatLines:
		return "lines"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Pair is one configuration assignment in file order.
type Pair struct {
	Key   string
	Value string

	// Line is the 1-based source line for the line format, zero otherwise.
	Line int
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FSAdapter exposes an fs.FS (fstest.MapFS in tests) as a FileSystem.
type FSAdapter struct {
	FS fs.FS
}

// ReadFile reads path from the wrapped file system.
func (a FSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(a.FS, path)
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLines
	}
}

// Load reads and parses the file at path with the OS file system.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func Load(path string) ([]Pair, error) {
	return LoadFS(OSFS{}, path)
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys FileSystem, path string) ([]Pair, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(FormatFor(path), path, data)
}

// Parse splits data in the given format into pairs.
func Parse(format Format, source string, data []byte) ([]Pair, error) {
	switch format {
	case FormatTOML:
		return parseTOML(source, data)
	case FormatYAML:
		return parseYAML(source, data)
	default:
		return parseLines(data), nil
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
