package system

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestWorld(step time.Duration) *ecs.World {
	w := ecs.NewWorld()
	ecs.SetTimeStep(w, step)
	return w
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		t.Fatalf("add %s: %v", h.Kind(), err)
	}
}

type playerOpts struct {
	x, y          float64
	controller    component.PlayerController
	withBody      bool
	withAnimation bool
}

func addPlayer(t *testing.T, w *ecs.World, o playerOpts) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	pc := o.controller
	pc.ResetJumps()
	mustAdd(t, w, e, component.PlayerTagComponent, &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerControllerComponent, &pc)
	mustAdd(t, w, e, component.InputComponent, &component.Input{})
	mustAdd(t, w, e, component.ContactsComponent, &component.Contacts{})
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: o.x, Y: o.y, ScaleX: 1, ScaleY: 1})
	if o.withBody {
		mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 20, Height: 20, Mass: 1, FixedRotation: true})
	}
	if o.withAnimation {
		mustAdd(t, w, e, component.AnimationParamsComponent, &component.AnimationParams{})
	}
	return e
}

func addTagged(t *testing.T, w *ecs.World, category component.Category, x, y, width, height float64, trigger bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.CategoryTagComponent, &component.CategoryTag{Category: category})
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: width, Height: height, Static: true, Trigger: trigger})
	return e
}

// scriptedInput replays one sample per tick and then repeats the last one.
type scriptedInput struct {
	samples []component.Input
	next    int
}

func (s *scriptedInput) Sample() component.Input {
	if len(s.samples) == 0 {
		return component.Input{}
	}
	if s.next >= len(s.samples) {
		return s.samples[len(s.samples)-1]
	}
	in := s.samples[s.next]
	s.next++
	return in
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}
