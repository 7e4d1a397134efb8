package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads flat configuration sections from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *TOMLLoader) Load() (File, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (File, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return l.parse("<reader>", data)
}

// parse parses TOML data into flat string sections.
func (l *TOMLLoader) parse(source string, data []byte) (File, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	return flattenFile(source, raw)
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// flattenFile reduces a decoded document to flat string sections.
// Top-level scalars live in the "" section; nested tables inside a
// section are rejected, this is a flat format.
func flattenFile(source string, raw map[string]any) (File, error) {
	file := make(File)
	for name, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			text, ok := stringifyScalar(v)
			if !ok {
				return nil, &ParseError{
					Path:    source,
					Message: fmt.Sprintf("unsupported value for key %q: %T", name, v),
				}
			}
			if file[""] == nil {
				file[""] = make(Section)
			}
			file[""][name] = text
			continue
		}

		section := make(Section, len(table))
		for key, cell := range table {
			text, ok := stringifyScalar(cell)
			if !ok {
				return nil, &ParseError{
					Path:    source,
					Message: fmt.Sprintf("unsupported value for key %q in section %q: %T", key, name, cell),
				}
			}
			section[key] = text
		}
		file[name] = section
	}
	return file, nil
}

// stringifyScalar reduces a decoded scalar to its text form.
func stringifyScalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
