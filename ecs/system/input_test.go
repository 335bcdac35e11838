package system

import (
	"testing"
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestInputSystemClampsAndBroadcasts(t *testing.T) {
	tests := []struct {
		name  string
		moveX float64
		want  float64
	}{
		{"in_range", 0.25, 0.25},
		{"too_far_right", 4, 1},
		{"too_far_left", -2, -1},
		{"idle", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(time.Second / 60)
			a := addPlayer(t, w, playerOpts{})
			b := addPlayer(t, w, playerOpts{})
			source := InputSourceFunc(func() component.Input {
				return component.Input{MoveX: tc.moveX, Jump: true, JumpPressed: true}
			})

			NewInputSystem(source).Update(w)

			for _, e := range []ecs.Entity{a, b} {
				in, _ := ecs.Get(w, e, component.InputComponent.Kind())
				if in.MoveX != tc.want {
					t.Fatalf("expected MoveX=%v, got %v", tc.want, in.MoveX)
				}
				if !in.Jump || !in.JumpPressed {
					t.Fatalf("expected jump flags to be copied, got %+v", in)
				}
			}
		})
	}
}

func TestInputSystemNilSource(t *testing.T) {
	w := newTestWorld(time.Second / 60)
	e := addPlayer(t, w, playerOpts{})
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.MoveX = 0.5

	NewInputSystem(nil).Update(w)

	if in.MoveX != 0.5 {
		t.Fatalf("a nil source must leave input untouched, got %v", in.MoveX)
	}
}
