package system

import (
	"testing"
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func pushContacts(t *testing.T, w *ecs.World, player ecs.Entity, contacts ...component.Contact) {
	t.Helper()
	buf, ok := ecs.Get(w, player, component.ContactsComponent.Kind())
	if !ok {
		t.Fatalf("player has no contacts buffer")
	}
	buf.Events = append(buf.Events, contacts...)
}

func begin(other ecs.Entity, trigger bool) component.Contact {
	return component.Contact{Other: uint64(other), Phase: component.ContactBegin, Trigger: trigger}
}

func TestFloorContactResetsJumps(t *testing.T) {
	tests := []struct {
		name      string
		allowed   int
		remaining int
	}{
		{"from_zero", 2, 0},
		{"from_partial", 3, 1},
		{"already_full", 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(time.Second / 60)
			player := addPlayer(t, w, playerOpts{controller: component.PlayerController{AllowedJumps: tc.allowed}})
			floor := addTagged(t, w, component.CategoryFloor, 0, 0, 100, 10, false)

			pc, _ := ecs.Get(w, player, component.PlayerControllerComponent.Kind())
			pc.JumpsRemaining = tc.remaining

			pushContacts(t, w, player, begin(floor, false))
			NewPlayerContactSystem(quietLogger()).Update(w)

			if pc.JumpsRemaining != tc.allowed {
				t.Fatalf("expected counter reset to %d, got %d", tc.allowed, pc.JumpsRemaining)
			}
			events := ecs.Events(w).Drain()
			if countEvents(events, ecs.EventLanded) != 1 {
				t.Fatalf("expected one landed event, got %+v", events)
			}
			if events[0].Source != floor {
				t.Fatalf("expected landed source %v, got %v", floor, events[0].Source)
			}
		})
	}
}

func TestDeadlyContacts(t *testing.T) {
	tests := []struct {
		name     string
		category component.Category
		trigger  bool
		dies     bool
	}{
		{"enemy_collision", component.CategoryEnemy, false, true},
		{"lava_trigger", component.CategoryLava, true, true},
		{"lava_collision_ignored", component.CategoryLava, false, false},
		{"enemy_trigger_ignored", component.CategoryEnemy, true, false},
		{"floor_trigger_ignored", component.CategoryFloor, true, false},
		{"untagged_ignored", component.CategoryNone, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(time.Second / 60)
			player := addPlayer(t, w, playerOpts{controller: component.PlayerController{AllowedJumps: 1}})
			other := addTagged(t, w, tc.category, 0, 0, 10, 10, tc.trigger)

			pushContacts(t, w, player, begin(other, tc.trigger))
			NewPlayerContactSystem(quietLogger()).Update(w)

			if alive := ecs.IsAlive(w, player); alive == tc.dies {
				t.Fatalf("expected dies=%v, player alive=%v", tc.dies, alive)
			}
			died := countEvents(ecs.Events(w).Drain(), ecs.EventPlayerDied)
			if tc.dies && died != 1 {
				t.Fatalf("expected one died event, got %d", died)
			}
			if !tc.dies && died != 0 {
				t.Fatalf("expected no died event, got %d", died)
			}
			if !ecs.IsAlive(w, other) {
				t.Fatalf("the other party must never be destroyed")
			}
		})
	}
}

func TestStayAndEndContactsIgnored(t *testing.T) {
	w := newTestWorld(time.Second / 60)
	player := addPlayer(t, w, playerOpts{controller: component.PlayerController{AllowedJumps: 2}})
	floor := addTagged(t, w, component.CategoryFloor, 0, 0, 100, 10, false)
	enemy := addTagged(t, w, component.CategoryEnemy, 0, 0, 10, 10, false)
	lava := addTagged(t, w, component.CategoryLava, 0, 0, 10, 10, true)

	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent.Kind())
	pc.JumpsRemaining = 0

	pushContacts(t, w, player,
		component.Contact{Other: uint64(floor), Phase: component.ContactStay},
		component.Contact{Other: uint64(enemy), Phase: component.ContactStay},
		component.Contact{Other: uint64(lava), Phase: component.ContactStay, Trigger: true},
		component.Contact{Other: uint64(floor), Phase: component.ContactEnd},
		component.Contact{Other: uint64(enemy), Phase: component.ContactEnd},
		component.Contact{Other: uint64(lava), Phase: component.ContactEnd, Trigger: true},
	)
	NewPlayerContactSystem(quietLogger()).Update(w)

	if !ecs.IsAlive(w, player) {
		t.Fatalf("stay/end contacts must not kill the player")
	}
	if pc.JumpsRemaining != 0 {
		t.Fatalf("stay/end contacts must not reset jumps, got %d", pc.JumpsRemaining)
	}
	if n := ecs.Events(w).Len(); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
	contacts, _ := ecs.Get(w, player, component.ContactsComponent.Kind())
	if len(contacts.Events) != 0 {
		t.Fatalf("expected contact buffer to be drained, got %d", len(contacts.Events))
	}
}

func TestContactsStopAfterDeath(t *testing.T) {
	w := newTestWorld(time.Second / 60)
	player := addPlayer(t, w, playerOpts{controller: component.PlayerController{AllowedJumps: 1}})
	enemy := addTagged(t, w, component.CategoryEnemy, 0, 0, 10, 10, false)
	lava := addTagged(t, w, component.CategoryLava, 0, 0, 10, 10, true)
	floor := addTagged(t, w, component.CategoryFloor, 0, 0, 10, 10, false)

	pushContacts(t, w, player, begin(enemy, false), begin(lava, true), begin(floor, false))
	sys := NewPlayerContactSystem(quietLogger())
	sys.Update(w)
	sys.Update(w)

	events := ecs.Events(w).Drain()
	if got := countEvents(events, ecs.EventPlayerDied); got != 1 {
		t.Fatalf("expected exactly one death, got %d", got)
	}
	if got := countEvents(events, ecs.EventLanded); got != 0 {
		t.Fatalf("a dead player must not land, got %d", got)
	}
	if events[0].Source != enemy {
		t.Fatalf("expected death caused by the enemy, got %v", events[0].Source)
	}
}

func TestDieIsIdempotent(t *testing.T) {
	w := newTestWorld(time.Second / 60)
	player := addPlayer(t, w, playerOpts{})
	sys := NewPlayerContactSystem(quietLogger())

	if !sys.die(w, player, 0) {
		t.Fatalf("expected first die to destroy the player")
	}
	if sys.die(w, player, 0) {
		t.Fatalf("expected second die to be a no-op")
	}
	if got := ecs.Events(w).Len(); got != 1 {
		t.Fatalf("expected one died event, got %d", got)
	}
}
