package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// hudStats counts gameplay events since the last restart.
type hudStats struct {
	jumps    int
	landings int
	spawns   int
	dead     bool
}

func (h *hudStats) record(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventJumped:
			h.jumps++
		case ecs.EventLanded:
			h.landings++
		case ecs.EventSpawned:
			h.spawns++
		case ecs.EventPlayerDied:
			h.dead = true
		}
	}
}

func (h *hudStats) draw(screen *ebiten.Image, w *ecs.World, best time.Duration, debug bool) {
	var b strings.Builder
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if pc, ok := ecs.Get(w, player, component.PlayerControllerComponent.Kind()); ok {
			if pc.InfiniteJumping {
				b.WriteString("Jumps: infinite\n")
			} else {
				fmt.Fprintf(&b, "Jumps: %d/%d\n", pc.JumpsRemaining, pc.AllowedJumps)
			}
		}
	}
	if h.dead {
		b.WriteString("Character has died! Press R to restart\n")
	}
	if best > 0 {
		fmt.Fprintf(&b, "Longest run: %s\n", best.Truncate(10*time.Millisecond))
	}
	if debug {
		fmt.Fprintf(&b, "TPS: %.1f  FPS: %.1f\n", ebiten.ActualTPS(), ebiten.ActualFPS())
		fmt.Fprintf(&b, "Time: %s  Frame: %d\n", ecs.Elapsed(w).Truncate(10*time.Millisecond), ecs.Frame(w))
		fmt.Fprintf(&b, "Jumped: %d  Landed: %d  Spawned: %d\n", h.jumps, h.landings, h.spawns)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
