package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
)

// PrefabBuilder instantiates a prefab into the world.
type PrefabBuilder func(w *ecs.World, prefab string) (ecs.Entity, error)

// SpawnerSystem fires each spawner first at its initial delay and then once
// per interval, measured from the spawner's own lifetime. Firings that fall
// inside a single long tick are all emitted on that tick.
type SpawnerSystem struct {
	logger  *log.Logger
	build   PrefabBuilder
	load    scriptLoader
	scripts map[string]*spawnScript
}

type SpawnerOption func(*SpawnerSystem)

// WithPrefabBuilder replaces entity.BuildEntity.
func WithPrefabBuilder(build PrefabBuilder) SpawnerOption {
	return func(s *SpawnerSystem) { s.build = build }
}

// WithScriptLoader replaces prefabs.LoadScript.
func WithScriptLoader(load func(name string) ([]byte, error)) SpawnerOption {
	return func(s *SpawnerSystem) { s.load = load }
}

func NewSpawnerSystem(logger *log.Logger, opts ...SpawnerOption) *SpawnerSystem {
	s := &SpawnerSystem{
		logger:  loggerOrDefault(logger, "spawner"),
		build:   entity.BuildEntity,
		scripts: make(map[string]*spawnScript),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InvalidateScript drops a cached script so the next firing recompiles it.
func (s *SpawnerSystem) InvalidateScript(path string) {
	delete(s.scripts, path)
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := ecs.Delta(w)
	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spawner, t *component.Transform) {
		if sp.Done {
			return
		}
		sp.Elapsed += dt
		for !sp.Done && sp.Elapsed >= sp.NextAt {
			s.spawn(w, e, sp, t)
			sp.Spawned++
			if sp.Interval <= 0 {
				sp.Done = true
				break
			}
			sp.NextAt += sp.Interval
		}
	})
}

func (s *SpawnerSystem) spawn(w *ecs.World, spawner ecs.Entity, sp *component.Spawner, t *component.Transform) {
	x, y := t.X, t.Y
	if sp.Script != "" {
		if dx, dy, err := s.scriptOffset(sp, x, y); err != nil {
			s.logger.Warn("spawn script failed", "spawner", spawner, "script", sp.Script, "err", err)
		} else {
			x += dx
			y += dy
		}
	}

	e, err := s.build(w, sp.Prefab)
	if err != nil {
		s.logger.Error("spawn failed", "spawner", spawner, "prefab", sp.Prefab, "err", err)
		return
	}
	if err := entity.SetEntityTransform(w, e, x, y, 0); err != nil {
		s.logger.Error("spawn placement failed", "spawner", spawner, "prefab", sp.Prefab, "err", err)
		return
	}

	s.logger.Debug("spawned", "spawner", spawner, "prefab", sp.Prefab, "entity", e, "x", x, "y", y)
	ecs.Events(w).Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Source: spawner})
}

func (s *SpawnerSystem) scriptOffset(sp *component.Spawner, x, y float64) (float64, float64, error) {
	script, ok := s.scripts[sp.Script]
	if !ok {
		compiled, err := compileSpawnScript(sp.Script, s.load)
		if err != nil {
			return 0, 0, err
		}
		s.scripts[sp.Script] = compiled
		script = compiled
	}
	return script.offset(sp.Spawned, x, y)
}
