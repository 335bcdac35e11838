package component

// Transform is an entity's world-space placement. Y grows downward and a
// zero Rotation is the identity orientation.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
