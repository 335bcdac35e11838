package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// LoadLevelToWorld creates the level bounds entity and one entity per
// placement, in file order. It stops at the first placement that fails.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	if lvl.Width > 0 && lvl.Height > 0 {
		bounds := ecs.CreateEntity(w)
		if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
			Width:  lvl.Width,
			Height: lvl.Height,
		}); err != nil {
			return nil, fmt.Errorf("load level: bounds: %w", err)
		}
	}

	created := make([]ecs.Entity, 0, len(lvl.Entities))
	for i, placement := range lvl.Entities {
		e, err := BuildEntityWithOverrides(w, placement.Prefab, placement.Components)
		if err != nil {
			return created, fmt.Errorf("load level: entity %d: %w", i, err)
		}
		if err := SetEntityTransform(w, e, placement.X, placement.Y, placement.Rotation); err != nil {
			return created, fmt.Errorf("load level: entity %d: %w", i, err)
		}
		created = append(created, e)
	}
	return created, nil
}
