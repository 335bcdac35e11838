package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return e, nil
}

// ReloadPlayerTuning re-reads the controller section of prefabPath and
// applies it to every live player. It returns the number of players updated.
func ReloadPlayerTuning(w *ecs.World, prefabPath string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("player: reload %q: %w", prefabPath, err)
	}
	raw, ok := spec.Components["player_controller"]
	if !ok {
		return 0, fmt.Errorf("player: reload %q: no player_controller component", prefabPath)
	}
	ctrlSpec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("player: reload %q: %w", prefabPath, err)
	}
	next := PlayerControllerFromSpec(ctrlSpec)

	updated := 0
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.PlayerControllerComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, pc *component.PlayerController) {
		pc.Retune(next)
		updated++
	})
	return updated, nil
}
