package component

import "time"

// Spawner instantiates Prefab at its own position after InitialDelay and then
// every Interval. A non-positive Interval spawns exactly once.
type Spawner struct {
	Prefab       string
	InitialDelay time.Duration
	Interval     time.Duration
	Script       string

	Elapsed time.Duration
	NextAt  time.Duration
	Spawned int
	Done    bool
}

var SpawnerComponent = NewComponent[Spawner]()

// TTL destroys an entity once Remaining runs out.
type TTL struct {
	Remaining time.Duration
}

var TTLComponent = NewComponent[TTL]()
