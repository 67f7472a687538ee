package layouts_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/mazetrace/internal/layouts"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/registry"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{layouts.Scatter, layouts.Carved, layouts.Open, layouts.File} {
		if !registry.Exists(id) {
			t.Errorf("layout %q not registered", id)
		}
	}
}

func TestGeneratedLayouts(t *testing.T) {
	req := registry.Request{Params: maze.Params{
		Width: 21, Height: 15, Home: maze.P(2, 12), Goal: maze.P(10, 12), Density: 0.3, Braiding: 0.2,
	}}
	for _, id := range []string{layouts.Scatter, layouts.Carved, layouts.Open} {
		t.Run(id, func(t *testing.T) {
			g, err := registry.Create(id, req, rand.New(rand.NewSource(4)))
			if err != nil {
				t.Fatalf("Create(%s) error = %v", id, err)
			}
			if g.Width() != 21 || g.Height() != 15 {
				t.Errorf("size = %dx%d, expected 21x15", g.Width(), g.Height())
			}
			if g.Home() != req.Params.Home || g.Goal() != req.Params.Goal {
				t.Errorf("markers = %v/%v, expected %v/%v", g.Home(), g.Goal(), req.Params.Home, req.Params.Goal)
			}
		})
	}
}

func TestFileLayout(t *testing.T) {
	if _, err := registry.Create(layouts.File, registry.Request{}, nil); !errors.Is(err, layouts.ErrNoFile) {
		t.Errorf("Create(file) without path error = %v, expected ErrNoFile", err)
	}

	path := filepath.Join(t.TempDir(), "room.yaml")
	doc := "rows:\n  - \"H..\"\n  - \".#.\"\n  - \"..G\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := registry.Create(layouts.File, registry.Request{File: path}, nil)
	if err != nil {
		t.Fatalf("Create(file) error = %v", err)
	}
	if g.Goal() != maze.P(2, 2) || g.Get(1, 1) != maze.RoomWall {
		t.Errorf("file layout decoded wrong:\n%s", g)
	}
}
