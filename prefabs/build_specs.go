package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec describes one entity and, through Children, the entities
// attached beneath it. Children are how anchor markers such as SortPoint are
// authored.
type EntityBuildSpec struct {
	Name       string            `yaml:"name"`
	Components map[string]any    `yaml:"components"`
	Children   []EntityBuildSpec `yaml:"children"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
	Hidden             bool    `yaml:"hidden"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type SortingOrderComponentSpec struct {
	Order int `yaml:"order"`
}

type TagComponentSpec struct {
	Name string `yaml:"name"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type ChaserComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	Target    string  `yaml:"target"`
	StopRange float64 `yaml:"stop_range"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type SpawnerComponentSpec struct {
	Prefab string `yaml:"prefab"`
	Key    string `yaml:"key"`
	Mode   string `yaml:"mode"`
	Limit  int    `yaml:"limit"`
}

type DepthSortComponentSpec struct {
	Mode string `yaml:"mode"`
}
