package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InputSource samples the devices once per tick.
type InputSource interface {
	Sample() component.Input
}

// InputSourceFunc adapts a plain function to InputSource.
type InputSourceFunc func() component.Input

func (f InputSourceFunc) Sample() component.Input {
	return f()
}

// InputSystem copies one device sample into every Input component.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	sample := i.source.Sample()
	if sample.MoveX > 1 {
		sample.MoveX = 1
	} else if sample.MoveX < -1 {
		sample.MoveX = -1
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = sample
	})
}
