package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const retunedPlayer = `name: player
components:
  player_tag: {}
  transform: {}
  player_controller:
    use_transform_movement: false
    horizontal_walking_speed: 900
    jump_force: 400
    allowed_jumps: 2
    allow_infinite_jumping: true
`

func writePrefab(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll(prefabs.Dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(prefabs.Dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write prefab: %v", err)
	}
}

func TestReloadPlayerTuning(t *testing.T) {
	w := ecs.NewWorld()
	first, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}
	second, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}
	pc, _ := ecs.Get(w, second, component.PlayerControllerComponent.Kind())
	pc.JumpsRemaining = 0

	writePrefab(t, PlayerPrefab, retunedPlayer)

	n, err := ReloadPlayerTuning(w, PlayerPrefab)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 players retuned, got %d", n)
	}

	for _, e := range []ecs.Entity{first, second} {
		pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
		if pc.UseTransformMovement || pc.WalkSpeed != 900 || pc.JumpForce != 400 || pc.AllowedJumps != 2 || !pc.InfiniteJumping {
			t.Fatalf("unexpected tuning %+v", *pc)
		}
	}

	firstPC, _ := ecs.Get(w, first, component.PlayerControllerComponent.Kind())
	if firstPC.JumpsRemaining != 1 {
		t.Fatalf("retuning must keep the live counter, got %d", firstPC.JumpsRemaining)
	}
	if pc.JumpsRemaining != 0 {
		t.Fatalf("retuning must not refill an empty counter, got %d", pc.JumpsRemaining)
	}
}

func TestReloadPlayerTuningClampsCounter(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if err := ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{AllowedJumps: 5, JumpsRemaining: 5}); err != nil {
		t.Fatalf("add controller: %v", err)
	}

	writePrefab(t, PlayerPrefab, `components:
  player_controller:
    allowed_jumps: -1
`)

	if _, err := ReloadPlayerTuning(w, PlayerPrefab); err != nil {
		t.Fatalf("reload: %v", err)
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if pc.AllowedJumps != 0 || pc.JumpsRemaining != 0 {
		t.Fatalf("expected counter clamped to 0, got allowed=%d remaining=%d", pc.AllowedJumps, pc.JumpsRemaining)
	}
}

func TestReloadPlayerTuningErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no_controller", "components:\n  transform: {}\n"},
		{"bad_yaml", "components: [\n"},
		{"bad_field", "components:\n  player_controller:\n    allowed_jumps: lots\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			writePrefab(t, "broken.yaml", tc.body)
			if _, err := ReloadPlayerTuning(w, "broken.yaml"); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
