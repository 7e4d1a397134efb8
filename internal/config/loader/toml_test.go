package loader

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[bindings]
key_binding1 = 5
cmd_binding1 = "run-app"
key_binding2 = 9
cmd_binding2 = "toggle"

[editor]
tabSize = 4
insertSpaces = true
lineHeight = 1.5
wordWrap = "on"
`)

	l := NewTOMLLoaderWithFS(memfs, "/config.toml")
	file, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Every value is reduced to its text form.
	wantEditor := Section{
		"tabSize":      "4",
		"insertSpaces": "true",
		"lineHeight":   "1.5",
		"wordWrap":     "on",
	}
	if diff := cmp.Diff(wantEditor, file["editor"]); diff != "" {
		t.Errorf("editor section mismatch (-want +got):\n%s", diff)
	}

	wantBindings := Section{
		"key_binding1": "5",
		"cmd_binding1": "run-app",
		"key_binding2": "9",
		"cmd_binding2": "toggle",
	}
	if diff := cmp.Diff(wantBindings, file["bindings"]); diff != "" {
		t.Errorf("bindings section mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLLoader_TopLevelScalars(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
version = 2

[editor]
tabSize = 4
`)

	l := NewTOMLLoaderWithFS(memfs, "/config.toml")
	file, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if file[""]["version"] != "2" {
		t.Errorf("top-level version = %q, want \"2\"", file[""]["version"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	l := NewTOMLLoaderWithFS(memfs, "/nonexistent.toml")

	file, err := l.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if file != nil {
		t.Error("expected nil file for non-existent path")
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[editor
tabSize = 4
`)

	l := NewTOMLLoaderWithFS(memfs, "/invalid.toml")
	_, err := l.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", parseErr.Path)
	}
}

func TestTOMLLoader_NestedTableRejected(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor.nested]
deep = 1
`)

	l := NewTOMLLoaderWithFS(memfs, "/config.toml")
	if _, err := l.Load(); err == nil {
		t.Fatal("expected error for nested table in a flat format")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	l := &TOMLLoader{}

	content := `
[ui]
theme = "light"
fontSize = 12
`
	file, err := l.LoadFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if file["ui"]["theme"] != "light" || file["ui"]["fontSize"] != "12" {
		t.Errorf("ui section = %v", file["ui"])
	}
}
