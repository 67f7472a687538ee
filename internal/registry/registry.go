// Package registry provides a global registry for maze layout factories.
// Layouts register themselves in init() functions, allowing the platform
// to discover and build mazes without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// ErrUnknownLayout is returned by Create for an unregistered ID.
var ErrUnknownLayout = errors.New("registry: unknown layout")

// Request carries everything a layout may need to build a maze.
type Request struct {
	// Params holds size, markers, density and braiding.
	Params maze.Params
	// File is the layout file path, used by file-backed layouts.
	File string
}

// Factory builds a maze. Generated layouts draw all randomness from rng.
type Factory func(req Request, rng maze.Source) (*maze.Grid, error)

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from an init() function.
// Panics if a layout with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered layouts, sorted by ID.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LayoutInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a maze with the layout registered under id.
func Create(id string, req Request, rng maze.Source) (*maze.Grid, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLayout, id)
	}
	return f(req, rng)
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
