package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypeDefault cp.CollisionType = iota + 1
	collisionTypeListener
)

// DefaultGravity is in pixels per second squared, Y down.
const DefaultGravity = 1800.0

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk2D space,
// steps it by the world clock and reports contacts for entities carrying a
// Contacts buffer.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	logger        *log.Logger

	entities map[ecs.Entity]*bodyInfo
	owners   map[*cp.Shape]shapeOwner
	pending  map[ecs.Entity][]component.Contact
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

type shapeOwner struct {
	entity   ecs.Entity
	listener bool
	trigger  bool
}

func NewPhysicsSystem(gravity float64, logger *log.Logger) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:    space,
		logger:   loggerOrDefault(logger, "physics"),
		entities: make(map[ecs.Entity]*bodyInfo),
		owners:   make(map[*cp.Shape]shapeOwner),
		pending:  make(map[ecs.Entity][]component.Contact),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	ps.space.Step(ecs.Delta(w).Seconds())

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeListener, collisionTypeDefault)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.record(arb, component.ContactBegin)
		}
		return true
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.record(arb, component.ContactStay)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.record(arb, component.ContactEnd)
		}
	}

	ps.handlersReady = true
}

// record runs inside the space step, so it only buffers.
func (ps *PhysicsSystem) record(arb *cp.Arbiter, phase component.ContactPhase) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.owners[shapeA]
	b, okB := ps.owners[shapeB]
	if !okA || !okB {
		return
	}
	if !a.listener {
		a, b = b, a
	}
	if !a.listener {
		return
	}
	ps.pending[a.entity] = append(ps.pending[a.entity], component.Contact{
		Other:   uint64(b.entity),
		Phase:   phase,
		Trigger: a.trigger || b.trigger,
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, events := range ps.pending {
		delete(ps.pending, e)
		contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
		if !ok {
			continue
		}
		contacts.Events = append(contacts.Events, events...)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil && len(info.shapes) > 0 {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			return
		}

		listener := ecs.Has(w, e, component.ContactsComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, listener)
		for _, shape := range info.shapes {
			ps.owners[shape] = shapeOwner{entity: e, listener: listener, trigger: bodyComp.Trigger}
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, listener bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 32, 32
	}

	collisionType := collisionTypeDefault
	if listener {
		collisionType = collisionTypeListener
	}
	configure := func(shape *cp.Shape) *cp.Shape {
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		shape.SetSensor(bodyComp.Trigger)
		return ps.space.AddShape(shape)
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{configure(shape)}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	switch {
	case bodyComp.FixedRotation:
		moment = math.Inf(1)
	case radius > 0:
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, width, height)
	}

	body := ps.space.AddBody(cp.NewBody(mass, moment))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}

	return &bodyInfo{body: body, shapes: []*cp.Shape{configure(shape)}}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: bounds.Width, Y: 0}},
		{a: cp.Vector{X: 0, Y: bounds.Height}, b: cp.Vector{X: bounds.Width, Y: bounds.Height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: bounds.Height}},
		{a: cp.Vector{X: bounds.Width, Y: 0}, b: cp.Vector{X: bounds.Width, Y: bounds.Height}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeDefault)
		ps.space.AddShape(shape)
		ps.owners[shape] = shapeOwner{entity: boundsEntity}
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
	ps.logger.Debug("level bounds", "width", bounds.Width, "height", bounds.Height)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

// cleanupEntities drops bodies whose entity died or lost its collider. It
// runs before the step so shapes never leave the space mid-step.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.owners, shape)
		}
		if !info.static && info.body != nil {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.pending, e)
	}
}
