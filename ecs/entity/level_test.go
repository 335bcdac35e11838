package entity

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

func TestLoadTutorialLevel(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS(levels.Default)
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	w := ecs.NewWorld()
	created, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		t.Fatalf("load level to world: %v", err)
	}
	if len(created) != len(lvl.Entities) {
		t.Fatalf("expected %d entities, got %d", len(lvl.Entities), len(created))
	}

	bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		t.Fatalf("expected level bounds")
	}
	b, _ := ecs.Get(w, bounds, component.LevelBoundsComponent.Kind())
	if b.Width != lvl.Width || b.Height != lvl.Height {
		t.Fatalf("unexpected bounds %+v", *b)
	}

	if got := ecs.Count(w, component.PlayerTagComponent.Kind()); got != 1 {
		t.Fatalf("expected one player, got %d", got)
	}
	if got := ecs.Count(w, component.SpawnerComponent.Kind()); got != 1 {
		t.Fatalf("expected one spawner, got %d", got)
	}

	for i, placement := range lvl.Entities {
		tr, ok := ecs.Get(w, created[i], component.TransformComponent.Kind())
		if !ok {
			t.Fatalf("entity %d has no transform", i)
		}
		if tr.X != placement.X || tr.Y != placement.Y {
			t.Fatalf("entity %d (%s): expected (%v,%v), got (%v,%v)", i, placement.Prefab, placement.X, placement.Y, tr.X, tr.Y)
		}
	}

	wide, _ := ecs.Get(w, created[2], component.PhysicsBodyComponent.Kind())
	if wide.Width != 800 {
		t.Fatalf("expected width override 800, got %v", wide.Width)
	}
	if wide.Height != 40 {
		t.Fatalf("expected prefab height to survive the override, got %v", wide.Height)
	}
}

func TestLoadLevelStopsAtBadPlacement(t *testing.T) {
	lvl := &levels.Level{
		Entities: []levels.Placement{
			{Prefab: "floor.yaml", X: 1, Y: 2},
			{Prefab: "ghost.yaml"},
			{Prefab: "enemy.yaml"},
		},
	}

	w := ecs.NewWorld()
	created, err := LoadLevelToWorld(w, lvl)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if len(created) != 1 {
		t.Fatalf("expected placements before the failure to remain, got %d", len(created))
	}
	if _, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		t.Fatalf("a level without a size must not create bounds")
	}
}

func TestLoadLevelRequiresWorld(t *testing.T) {
	if _, err := LoadLevelToWorld(nil, &levels.Level{}); err == nil {
		t.Fatalf("expected an error for a nil world")
	}
}
