package levels

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DiskDir is checked before the embedded copy so edited scenes can be
// reloaded without a rebuild.
var DiskDir = "levels"

var ErrInvalidScene = errors.New("invalid scene")

// Scene lists what to place in the world and the sorter's fallback offsets.
type Scene struct {
	Name            string           `yaml:"name"`
	Player          *Placement       `yaml:"player"`
	Camera          string           `yaml:"camera"`
	FallbackOffsets []FallbackOffset `yaml:"fallback_offsets"`
	Objects         []Placement      `yaml:"objects"`
	Spawners        []SpawnerSpec    `yaml:"spawners"`
}

// Placement instantiates Prefab at (X, Y). A zero scale keeps the prefab's
// own scale. Sort overrides the prefab's depth_sort mode.
type Placement struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
	Sort   string  `yaml:"sort"`
}

type FallbackOffset struct {
	Image  string  `yaml:"image"`
	Offset float64 `yaml:"offset"`
}

type SpawnerSpec struct {
	Prefab string  `yaml:"prefab"`
	Key    string  `yaml:"key"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Sort   string  `yaml:"sort"`
	Limit  int     `yaml:"limit"`
}

func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

func LoadScene(name string) (*Scene, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*Scene, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
	}
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

func (s *Scene) Validate() error {
	if s.Player == nil && len(s.Objects) == 0 && len(s.Spawners) == 0 {
		return fmt.Errorf("%w: no player, objects or spawners", ErrInvalidScene)
	}
	if s.Player != nil && s.Player.Prefab == "" {
		return fmt.Errorf("%w: player has no prefab", ErrInvalidScene)
	}
	for i, obj := range s.Objects {
		if obj.Prefab == "" {
			return fmt.Errorf("%w: objects[%d] has no prefab", ErrInvalidScene, i)
		}
	}
	for i, sp := range s.Spawners {
		if sp.Prefab == "" {
			return fmt.Errorf("%w: spawners[%d] has no prefab", ErrInvalidScene, i)
		}
		if sp.Key == "" {
			return fmt.Errorf("%w: spawners[%d] has no key", ErrInvalidScene, i)
		}
		if sp.Limit < 0 {
			return fmt.Errorf("%w: spawners[%d] has a negative limit", ErrInvalidScene, i)
		}
	}
	for i, fb := range s.FallbackOffsets {
		if fb.Image == "" {
			return fmt.Errorf("%w: fallback_offsets[%d] has no image", ErrInvalidScene, i)
		}
	}
	return nil
}

func cleanScenePath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}
