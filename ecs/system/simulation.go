package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
)

// Simulation is one attempt at a level: a fresh world and the systems that
// drive it, in tick order.
type Simulation struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Physics   *PhysicsSystem
	Spawner   *SpawnerSystem
	Entities  []ecs.Entity
}

// NewSimulation builds a world from lvl ticking at rate. Nothing is returned
// unless the whole level loads.
func NewSimulation(lvl *levels.Level, input InputSource, rate int, logger *log.Logger) (*Simulation, error) {
	if lvl == nil {
		return nil, errors.New("simulation: nil level")
	}

	w := ecs.NewWorld()
	ecs.SetTickRate(w, rate)

	physics := NewPhysicsSystem(DefaultGravity, logger)
	spawner := NewSpawnerSystem(logger)
	scheduler := ecs.NewScheduler(
		NewInputSystem(input),
		NewPlayerControllerSystem(logger),
		spawner,
		physics,
		NewPlayerContactSystem(logger),
		NewTTLSystem(),
	)

	created, err := entity.LoadLevelToWorld(w, lvl)
	if err != nil {
		return nil, fmt.Errorf("load level %q into world: %w", lvl.Name, err)
	}

	return &Simulation{
		World:     w,
		Scheduler: scheduler,
		Physics:   physics,
		Spawner:   spawner,
		Entities:  created,
	}, nil
}
