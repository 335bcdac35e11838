package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PlayerControllerSystem turns input into movement and jumps for every
// player. Jumps are gated by the controller's remaining-jump counter.
type PlayerControllerSystem struct {
	logger *log.Logger
}

func NewPlayerControllerSystem(logger *log.Logger) *PlayerControllerSystem {
	return &PlayerControllerSystem{logger: loggerOrDefault(logger, "player")}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := ecs.Delta(w).Seconds()
	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, pc *component.PlayerController, input *component.Input) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		var rb *cp.Body
		if body != nil && !body.Static {
			rb = body.Body
		}

		if pc.UseTransformMovement {
			p.translate(w, e, rb, input.MoveX*pc.WalkSpeed*dt)
		} else if rb != nil {
			rb.ApplyForceAtWorldPoint(cp.Vector{X: input.MoveX * pc.WalkSpeed * dt}, rb.Position())
		}

		if input.JumpPressed && pc.ConsumeJump() {
			p.logger.Debug("jumping", "entity", e, "remaining", pc.JumpsRemaining)
			if rb != nil {
				// Y grows downward, so up is negative.
				rb.ApplyImpulseAtWorldPoint(cp.Vector{Y: -pc.JumpForce}, rb.Position())
			}
			ecs.Events(w).Push(ecs.Event{Type: ecs.EventJumped, Entity: e})
		}

		if params, ok := ecs.Get(w, e, component.AnimationParamsComponent.Kind()); ok {
			params.SetFloat(component.ParamMovementSpeed, math.Abs(input.MoveX))
		}
	})
}

// translate shifts the player horizontally. A simulated body is moved too,
// otherwise the next physics sync would snap the transform back.
func (p *PlayerControllerSystem) translate(w *ecs.World, e ecs.Entity, rb *cp.Body, dx float64) {
	if dx == 0 {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X += dx
	}
	if rb != nil {
		pos := rb.Position()
		pos.X += dx
		rb.SetPosition(pos)
		rb.Activate()
	}
}
