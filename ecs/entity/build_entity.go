package entity

import (
	"fmt"
	"image/color"
	"maps"
	"sort"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"category":          addCategory,
	"input":             addInput,
	"contacts":          addContacts,
	"transform":         addTransform,
	"player_controller": addPlayerController,
	"physics_body":      addPhysicsBody,
	"animation_params":  addAnimationParams,
	"sprite":            addSprite,
	"spawner":           addSpawner,
	"ttl":               addTTL,
}

var componentBuildOrder = []string{
	"player_tag",
	"category",
	"input",
	"contacts",
	"transform",
	"player_controller",
	"physics_body",
	"animation_params",
	"sprite",
	"spawner",
	"ttl",
}

// BuildEntity instantiates the prefab at prefabPath.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithOverrides(w, prefabPath, nil)
}

// BuildEntityWithOverrides instantiates a prefab after shallow-merging
// overrides into its component specs. An override for a component the
// prefab lacks adds that component.
func BuildEntityWithOverrides(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	remaining := mergeComponents(spec.Components, overrides)

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func mergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	maps.Copy(out, base)
	for name, raw := range overrides {
		over, okOver := raw.(map[string]any)
		orig, okOrig := out[name].(map[string]any)
		if !okOver || !okOrig {
			out[name] = raw
			continue
		}
		merged := make(map[string]any, len(orig)+len(over))
		maps.Copy(merged, orig)
		maps.Copy(merged, over)
		out[name] = merged
	}
	return out
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addContacts(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{})
}

func addCategory(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CategoryComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode category spec: %w", err)
	}
	return ecs.Add(w, e, component.CategoryTagComponent.Kind(), &component.CategoryTag{Category: spec.Tag})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

// PlayerControllerFromSpec converts inspector fields into a controller with
// a full jump counter.
func PlayerControllerFromSpec(spec prefabs.PlayerControllerComponentSpec) component.PlayerController {
	pc := component.PlayerController{
		UseTransformMovement: spec.UseTransformMovement,
		WalkSpeed:            spec.HorizontalWalkingSpeed,
		JumpForce:            spec.JumpForce,
		AllowedJumps:         spec.AllowedJumps,
		InfiniteJumping:      spec.AllowInfiniteJumping,
	}
	pc.ResetJumps()
	return pc
}

func addPlayerController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player controller spec: %w", err)
	}
	pc := PlayerControllerFromSpec(spec)
	return ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &pc)
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a positive width and height")
	}
	if !spec.Static && spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Trigger:       spec.Trigger,
		FixedRotation: spec.FixedRotation,
	})
}

func addAnimationParams(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationParamsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation params spec: %w", err)
	}
	params := &component.AnimationParams{Floats: make(map[string]float64, len(spec.Floats))}
	maps.Copy(params.Floats, spec.Floats)
	return ecs.Add(w, e, component.AnimationParamsComponent.Kind(), params)
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	sprite := component.Sprite{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  color.White,
		Layer:  spec.Layer,
	}
	if spec.Color != nil && spec.Color.Color != nil {
		sprite.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addSpawner(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpawnerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	if spec.Prefab == "" {
		return fmt.Errorf("spawner needs a prefab")
	}
	delay := spec.InitialDelay.Duration()
	if delay < 0 {
		delay = 0
	}
	return ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Prefab:       spec.Prefab,
		InitialDelay: delay,
		Interval:     spec.TimeBetweenSpawn.Duration(),
		Script:       spec.Script,
		NextAt:       delay,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Lifetime <= 0 {
		return fmt.Errorf("ttl lifetime must be positive")
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: spec.Lifetime.Duration()})
}
