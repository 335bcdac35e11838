package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PlayerContactSystem reacts to the contacts the physics step reported for
// each player: a floor refills the jump counter, an enemy body or a lava
// trigger kills the player.
type PlayerContactSystem struct {
	logger *log.Logger
}

func NewPlayerContactSystem(logger *log.Logger) *PlayerContactSystem {
	return &PlayerContactSystem{logger: loggerOrDefault(logger, "contact")}
}

func (s *PlayerContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.ContactsComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, contacts *component.Contacts) {
		events := contacts.Events
		contacts.Events = nil
		for _, c := range events {
			if s.handle(w, e, c) {
				return
			}
		}
	})
}

// handle applies one contact and reports whether the player was destroyed.
func (s *PlayerContactSystem) handle(w *ecs.World, player ecs.Entity, c component.Contact) bool {
	other := ecs.Entity(c.Other)
	category := categoryOf(w, other)

	switch c.Phase {
	case component.ContactBegin:
		if c.Trigger {
			return s.onTriggerEnter(w, player, other, category)
		}
		return s.onCollisionEnter(w, player, other, category)
	case component.ContactStay, component.ContactEnd:
		// Nothing reacts to stay or exit phases.
	}
	return false
}

func (s *PlayerContactSystem) onCollisionEnter(w *ecs.World, player, other ecs.Entity, category component.Category) bool {
	switch category {
	case component.CategoryFloor:
		if pc, ok := ecs.Get(w, player, component.PlayerControllerComponent.Kind()); ok {
			pc.ResetJumps()
		}
		s.logger.Debug("touched the floor", "entity", player)
		ecs.Events(w).Push(ecs.Event{Type: ecs.EventLanded, Entity: player, Source: other})
	case component.CategoryEnemy:
		return s.die(w, player, other)
	}
	return false
}

func (s *PlayerContactSystem) onTriggerEnter(w *ecs.World, player, other ecs.Entity, category component.Category) bool {
	if category == component.CategoryLava {
		return s.die(w, player, other)
	}
	return false
}

// die destroys the player. A dead player stays dead and logs nothing.
func (s *PlayerContactSystem) die(w *ecs.World, player, cause ecs.Entity) bool {
	if !ecs.DestroyEntity(w, player) {
		return false
	}
	s.logger.Info("character has died", "entity", player, "cause", categoryOf(w, cause))
	ecs.Events(w).Push(ecs.Event{Type: ecs.EventPlayerDied, Entity: player, Source: cause})
	return true
}

func categoryOf(w *ecs.World, e ecs.Entity) component.Category {
	if tag, ok := ecs.Get(w, e, component.CategoryTagComponent.Kind()); ok {
		return tag.Category
	}
	return component.CategoryNone
}
