package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownScene is returned by Load when the name matches neither a file nor a built-in scene.
var ErrUnknownScene = errors.New("config: unknown scene")

// Load loads a scene.
// Search order: file at nameOrPath -> built-in scene named nameOrPath.
func Load(nameOrPath string) (Scene, error) {
	if data, err := os.ReadFile(nameOrPath); err == nil {
		return Parse(data, nameOrPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Scene{}, fmt.Errorf("config: failed to read scene %s: %w", nameOrPath, err)
	}

	data, err := builtinScenes.ReadFile(path.Join("scenes", nameOrPath+".yaml"))
	if err != nil {
		return Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, nameOrPath)
	}
	return Parse(data, nameOrPath)
}

// Parse decodes and validates a scene. source names the scene in errors.
func Parse(data []byte, source string) (Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("config: failed to parse scene %s: %w", source, err)
	}
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(path.Base(source), ".yaml")
	}
	if err := scene.Validate(); err != nil {
		return Scene{}, err
	}
	scene.applyDefaults()
	return scene, nil
}

// Builtins returns the names of the embedded scenes in lexical order.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinScenes, "scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Validate checks the shapes, names and joint references of the scene.
func (s *Scene) Validate() error {
	names := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name != "" {
			if names[b.Name] {
				return fmt.Errorf("config: body %d: duplicate name %q", i, b.Name)
			}
			names[b.Name] = true
		}
		switch b.Shape {
		case "circle":
			if b.Radius <= 0 {
				return fmt.Errorf("config: body %d (%s): circle needs a positive radius", i, b.Name)
			}
		case "box":
			if b.Width <= 0 || b.Height <= 0 {
				return fmt.Errorf("config: body %d (%s): box needs a positive width and height", i, b.Name)
			}
		case "polygon":
			if len(b.Vertices) < 3 {
				return fmt.Errorf("config: body %d (%s): polygon needs at least 3 vertices, got %d", i, b.Name, len(b.Vertices))
			}
		default:
			return fmt.Errorf("config: body %d (%s): unknown shape %q", i, b.Name, b.Shape)
		}
	}

	for i, j := range s.Joints {
		switch j.Type {
		case "distance", "revolute", "spring":
		default:
			return fmt.Errorf("config: joint %d: unknown type %q", i, j.Type)
		}
		for _, ref := range []string{j.A, j.B} {
			if !names[ref] {
				return fmt.Errorf("config: joint %d (%s): unknown body %q", i, j.Type, ref)
			}
		}
		if j.A == j.B {
			return fmt.Errorf("config: joint %d (%s): both ends on body %q", i, j.Type, j.A)
		}
	}

	switch s.World.BroadPhase {
	case "", "sweep", "tree", "brute":
	default:
		return fmt.Errorf("config: unknown broad phase %q", s.World.BroadPhase)
	}
	return nil
}
