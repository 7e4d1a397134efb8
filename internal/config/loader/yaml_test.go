package loader

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
bindings:
  key_open: 5
  cmd_open: run-app
editor:
  tabSize: 4
  insertSpaces: true
`)

	l := NewYAMLLoaderWithFS(memfs, "/config.yaml")
	file, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := File{
		"bindings": Section{
			"key_open": "5",
			"cmd_open": "run-app",
		},
		"editor": Section{
			"tabSize":      "4",
			"insertSpaces": "true",
		},
	}
	if diff := cmp.Diff(want, file); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	l := NewYAMLLoaderWithFS(NewMemFS(), "/nope.yaml")
	file, err := l.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if file != nil {
		t.Error("expected nil file for non-existent path")
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "editor:\n\t- broken")

	l := NewYAMLLoaderWithFS(memfs, "/bad.yaml")
	if _, err := l.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestYAMLLoader_LoadFromReader(t *testing.T) {
	l := &YAMLLoader{}
	file, err := l.LoadFromReader(strings.NewReader("ui:\n  theme: dark\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if file["ui"]["theme"] != "dark" {
		t.Errorf("ui section = %v", file["ui"])
	}
}
