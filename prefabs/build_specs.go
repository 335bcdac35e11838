package prefabs

import (
	"github.com/milk9111/platformer/ecs/component"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab: a name plus a bag of component specs keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
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

type PlayerControllerComponentSpec struct {
	UseTransformMovement   bool    `yaml:"use_transform_movement"`
	HorizontalWalkingSpeed float64 `yaml:"horizontal_walking_speed"`
	JumpForce              float64 `yaml:"jump_force"`
	AllowedJumps           int     `yaml:"allowed_jumps"`
	AllowInfiniteJumping   bool    `yaml:"allow_infinite_jumping"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Trigger       bool    `yaml:"trigger"`
	FixedRotation bool    `yaml:"fixed_rotation"`
}

type CategoryComponentSpec struct {
	Tag component.Category `yaml:"tag"`
}

type SpriteComponentSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Layer  int        `yaml:"layer"`
}

type SpawnerComponentSpec struct {
	Prefab           string  `yaml:"prefab"`
	InitialDelay     Seconds `yaml:"initial_delay"`
	TimeBetweenSpawn Seconds `yaml:"time_between_spawns"`
	Script           string  `yaml:"script"`
}

type TTLComponentSpec struct {
	Lifetime Seconds `yaml:"lifetime"`
}

type AnimationParamsComponentSpec struct {
	Floats map[string]float64 `yaml:"floats"`
}
