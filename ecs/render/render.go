package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// DrawSprites fills one rectangle per sprite, centred on its transform and
// ordered by layer. Entities on the same layer draw in creation order.
func DrawSprites(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	type drawable struct {
		e      ecs.Entity
		t      *component.Transform
		sprite *component.Sprite
	}
	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		items = append(items, drawable{e: e, t: t, sprite: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].sprite.Layer != items[j].sprite.Layer {
			return items[i].sprite.Layer < items[j].sprite.Layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		sx, sy := it.t.ScaleX, it.t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		width := it.sprite.Width * sx
		height := it.sprite.Height * sy
		if width <= 0 || height <= 0 {
			continue
		}
		clr := it.sprite.Color
		if clr == nil {
			clr = color.White
		}
		vector.FillRect(screen, float32(it.t.X-width/2), float32(it.t.Y-height/2), float32(width), float32(height), clr, false)
	}
}
