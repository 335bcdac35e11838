package system

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/prefabs"
)

// spawnScript is a compiled Tengo program that offsets spawn positions. It
// reads `index`, `x` and `y` and may define `offset_x` and `offset_y`.
// scriptTimeout bounds one run so a looping script cannot stall the tick.
const scriptTimeout = 50 * time.Millisecond

type spawnScript struct {
	path     string
	compiled *tengo.Compiled
}

type scriptLoader func(name string) ([]byte, error)

func compileSpawnScript(path string, load scriptLoader) (*spawnScript, error) {
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("spawn script %q: %w", path, err)
	}

	script := tengo.NewScript(src)
	for name, zero := range map[string]any{"index": 0, "x": 0.0, "y": 0.0} {
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("spawn script %q: declare %s: %w", path, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawn script %q: compile: %w", path, err)
	}
	return &spawnScript{path: path, compiled: compiled}, nil
}

func (s *spawnScript) offset(index int, x, y float64) (float64, float64, error) {
	if err := s.compiled.Set("index", index); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Set("x", x); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Set("y", y); err != nil {
		return 0, 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	// RunContext also turns VM panics, such as integer division by zero, into errors.
	if err := s.compiled.RunContext(ctx); err != nil {
		return 0, 0, fmt.Errorf("spawn script %q: run: %w", s.path, err)
	}

	var dx, dy float64
	if s.compiled.IsDefined("offset_x") {
		dx = s.compiled.Get("offset_x").Float()
	}
	if s.compiled.IsDefined("offset_y") {
		dy = s.compiled.Get("offset_y").Float()
	}
	return dx, dy, nil
}
