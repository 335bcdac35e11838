package system

import (
	"testing"
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestTTLDestroysExpiredEntities(t *testing.T) {
	w := newTestWorld(100 * time.Millisecond)
	short := ecs.CreateEntity(w)
	long := ecs.CreateEntity(w)
	mustAdd(t, w, short, component.TTLComponent, &component.TTL{Remaining: 250 * time.Millisecond})
	mustAdd(t, w, long, component.TTLComponent, &component.TTL{Remaining: time.Second})

	sched := ecs.NewScheduler(NewTTLSystem())
	sched.Update(w)
	sched.Update(w)
	if !ecs.IsAlive(w, short) {
		t.Fatalf("expected entity alive at 200ms")
	}
	sched.Update(w)
	if ecs.IsAlive(w, short) {
		t.Fatalf("expected entity destroyed at 300ms")
	}
	if !ecs.IsAlive(w, long) {
		t.Fatalf("expected long-lived entity to survive")
	}

	ttl, _ := ecs.Get(w, long, component.TTLComponent.Kind())
	if ttl.Remaining != 700*time.Millisecond {
		t.Fatalf("expected 700ms remaining, got %v", ttl.Remaining)
	}
}

func TestTTLExactExpiry(t *testing.T) {
	w := newTestWorld(100 * time.Millisecond)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TTLComponent, &component.TTL{Remaining: 100 * time.Millisecond})

	NewTTLSystem().Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected entity destroyed when remaining reaches zero")
	}
}
