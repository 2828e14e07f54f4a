// Package dataset holds named trees loaded from JSON or YAML files so they can be
// searched by name.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hyperjump/nlsearch/pkg/tree"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no dataset has the requested name.
	ErrNotFound = errors.New("dataset not found")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Extensions lists the file extensions a dataset may have.
var Extensions = []string{".json", ".yaml", ".yml"}

// Dataset is a named tree and where it came from.
type Dataset struct {
	Name     string
	Path     string
	Root     *tree.Node
	Nodes    int
	LoadedAt time.Time
}

// Info summarizes a dataset for listings.
type Info struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Nodes    int       `json:"nodes"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Store is a concurrency-safe registry of datasets. Reloading a dataset swaps
// its tree; searches already holding the old tree finish against it.
//
// Datasets loaded from files keep their source registered after the tree is
// dropped, so a file that is deleted and written again comes back under the
// same name.
type Store struct {
	mu      sync.RWMutex
	sets    map[string]*Dataset
	sources map[string]string // name -> absolute file path
	logger  *zap.Logger
}

// NewStore creates an empty Store. A nil logger disables logging.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{sets: make(map[string]*Dataset), sources: make(map[string]string), logger: logger}
}

// LoadFile parses path as JSON or YAML according to its extension.
func LoadFile(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return tree.Parse(data)
	case ".yaml", ".yml":
		return tree.ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads path and registers it under name, replacing any previous tree.
// The path is stored in absolute form and stays registered as the source of
// name even when parsing fails, so a later Reload can pick the file up.
func (s *Store) Load(name, path string) error {
	path = absPath(path)
	s.mu.Lock()
	s.sources[name] = path
	s.mu.Unlock()

	root, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("load dataset %q: %w", name, err)
	}
	ds := s.put(name, path, root)
	s.logger.Info("dataset loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("nodes", ds.Nodes),
	)
	return nil
}

// LoadAll loads every name → path entry. It keeps going past failures and
// returns them joined.
func (s *Store) LoadAll(paths map[string]string) error {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := s.Load(name, paths[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Put registers an in-memory tree under name, replacing any file source.
func (s *Store) Put(name string, root *tree.Node) {
	s.mu.Lock()
	delete(s.sources, name)
	s.mu.Unlock()
	s.put(name, "", root)
}

func (s *Store) put(name, path string, root *tree.Node) *Dataset {
	ds := &Dataset{
		Name:     name,
		Path:     path,
		Root:     root,
		Nodes:    root.Count(),
		LoadedAt: time.Now(),
	}
	s.mu.Lock()
	s.sets[name] = ds
	s.mu.Unlock()
	return ds
}

// Get returns the dataset called name.
func (s *Store) Get(name string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ds, nil
}

// Remove forgets the dataset called name along with its source. It reports
// whether a tree was loaded.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, name)
	return s.unload(name)
}

func (s *Store) unload(name string) bool {
	if _, ok := s.sets[name]; !ok {
		return false
	}
	delete(s.sets, name)
	return true
}

// List returns a summary of every dataset, sorted by name.
func (s *Store) List() []Info {
	s.mu.RLock()
	out := make([]Info, 0, len(s.sets))
	for _, ds := range s.sets {
		out = append(out, Info{Name: ds.Name, Path: ds.Path, Nodes: ds.Nodes, LoadedAt: ds.LoadedAt})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

// NamesForPath returns the datasets whose source is path, loaded or not.
func (s *Store) NamesForPath(path string) []string {
	path = absPath(path)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for name, src := range s.sources {
		if src == path {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Reload re-reads every dataset sourced from path, restoring ones that were
// dropped. A file that fails to parse leaves the previous tree in place.
func (s *Store) Reload(path string) {
	for _, name := range s.NamesForPath(path) {
		if err := s.Load(name, path); err != nil {
			s.logger.Warn("dataset reload failed, keeping previous version",
				zap.String("name", name), zap.Error(err))
		}
	}
}

// Drop unloads every dataset sourced from path. The sources stay registered.
func (s *Store) Drop(path string) {
	for _, name := range s.NamesForPath(path) {
		s.mu.Lock()
		removed := s.unload(name)
		s.mu.Unlock()
		if removed {
			s.logger.Info("dataset removed", zap.String("name", name), zap.String("path", path))
		}
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// IsDatasetFile reports whether path has a supported extension.
func IsDatasetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
