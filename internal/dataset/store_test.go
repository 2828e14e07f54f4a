package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/nlsearch/pkg/tree"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		nodes   int
		wantErr error
	}{
		{"json", "a.json", `{"name": "Alice", "tags": ["x", "y"]}`, 5, nil},
		{"yaml", "b.yaml", "name: Bob\ntags:\n  - x\n", 4, nil},
		{"yml upper case", "c.YML", "- 1\n- 2\n", 3, nil},
		{"bad json", "d.json", `{"name":`, 0, tree.ErrInvalidJSON},
		{"unsupported", "e.txt", "hello", 0, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)
			root, err := LoadFile(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := root.Count(); got != tt.nodes {
				t.Errorf("Count() = %d, want %d", got, tt.nodes)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestStore_LoadGetRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.json")
	writeFile(t, path, `[{"name": "Alice"}, {"name": "Bob"}]`)

	s := NewStore(nil)
	if err := s.Load("people", path); err != nil {
		t.Fatal(err)
	}
	ds, err := s.Get("people")
	if err != nil {
		t.Fatal(err)
	}
	if ds.Nodes != 5 {
		t.Errorf("Nodes = %d, want 5", ds.Nodes)
	}
	if !filepath.IsAbs(ds.Path) {
		t.Errorf("Path = %q, want absolute", ds.Path)
	}

	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
	if !s.Remove("people") {
		t.Error("Remove should report an existing dataset")
	}
	if s.Remove("people") {
		t.Error("second Remove should report false")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestStore_LoadAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "a: 1\n")

	s := NewStore(nil)
	err := s.LoadAll(map[string]string{
		"good":    good,
		"missing": filepath.Join(dir, "missing.json"),
	})
	if err == nil {
		t.Fatal("expected an error for the missing file")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want the good dataset loaded", s.Len())
	}
}

func TestStore_ListAndPut(t *testing.T) {
	s := NewStore(nil)
	s.Put("zeta", tree.Array(tree.String("z")))
	s.Put("alpha", tree.String("a"))

	list := s.List()
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Fatalf("List() = %+v", list)
	}
	if list[1].Nodes != 2 {
		t.Errorf("zeta Nodes = %d, want 2", list[1].Nodes)
	}
}

func TestStore_ReloadAndDrop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, `["one"]`)

	s := NewStore(nil)
	if err := s.Load("a", path); err != nil {
		t.Fatal(err)
	}
	if err := s.Load("b", path); err != nil {
		t.Fatal(err)
	}
	if names := s.NamesForPath(path); len(names) != 2 {
		t.Fatalf("NamesForPath() = %v", names)
	}

	writeFile(t, path, `["one", "two"]`)
	s.Reload(path)
	ds, _ := s.Get("a")
	if ds.Nodes != 3 {
		t.Errorf("after reload Nodes = %d, want 3", ds.Nodes)
	}

	writeFile(t, path, `[broken`)
	s.Reload(path)
	ds, _ = s.Get("a")
	if ds.Nodes != 3 {
		t.Errorf("failed reload should keep previous tree, Nodes = %d", ds.Nodes)
	}

	s.Drop(path)
	if s.Len() != 0 {
		t.Errorf("Drop left %d datasets", s.Len())
	}

	// The file comes back: both names are restored from their source.
	writeFile(t, path, `["again"]`)
	s.Reload(path)
	if s.Len() != 2 {
		t.Fatalf("Reload after Drop restored %d datasets, want 2", s.Len())
	}
	ds, err := s.Get("b")
	if err != nil || ds.Nodes != 2 {
		t.Errorf("restored dataset = %+v, %v", ds, err)
	}
}

func TestStore_RemoveForgetsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, `["one"]`)

	s := NewStore(nil)
	if err := s.Load("data", path); err != nil {
		t.Fatal(err)
	}
	s.Remove("data")
	if names := s.NamesForPath(path); len(names) != 0 {
		t.Errorf("NamesForPath() after Remove = %v", names)
	}
	s.Reload(path)
	if s.Len() != 0 {
		t.Error("Reload should not bring back a removed dataset")
	}
}

func TestStore_LoadsFileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.yaml")

	s := NewStore(nil)
	if err := s.Load("later", path); err == nil {
		t.Fatal("expected an error for the missing file")
	}
	writeFile(t, path, "name: Alice\n")
	s.Reload(path)
	if _, err := s.Get("later"); err != nil {
		t.Errorf("Get(later) after the file appeared: %v", err)
	}
}

func TestStore_PutReplacesFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, `["one"]`)

	s := NewStore(nil)
	if err := s.Load("data", path); err != nil {
		t.Fatal(err)
	}
	s.Put("data", tree.String("memory"))
	s.Reload(path)
	ds, _ := s.Get("data")
	if ds.Root.StringValue() != "memory" {
		t.Error("Reload should not overwrite an in-memory dataset")
	}
}

func TestIsDatasetFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/a/b.json", true},
		{"/a/b.JSON", true},
		{"/a/b.yaml", true},
		{"/a/b.yml", true},
		{"/a/b.txt", false},
		{"/a/b", false},
	}
	for _, tt := range tests {
		if got := IsDatasetFile(tt.path); got != tt.want {
			t.Errorf("IsDatasetFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
