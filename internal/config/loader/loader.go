// Package loader provides configuration file loading for gridcfg.
//
// Config files are flat: each section is a set of scalar key/value
// entries, every value reduced to its text form. Compound options are
// stored across several flat entries sharing a row identifier; the grid
// functions in this package group such entries into row grids and
// flatten grids back into entries.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// Section is one flat config section: key to raw text value.
type Section map[string]string

// File is a parsed config file: section name to section.
type File map[string]Section

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (File, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from a specific path.
	LoadFrom(path string) (File, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads configuration from a reader.
	LoadFromReader(r io.Reader) (File, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
