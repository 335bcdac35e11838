package component

// ParamMovementSpeed is the animator parameter driven by horizontal input.
const ParamMovementSpeed = "MovementSpeed"

// AnimationParams is a sink of named animator parameters.
type AnimationParams struct {
	Floats map[string]float64
}

var AnimationParamsComponent = NewComponent[AnimationParams]()

func (a *AnimationParams) SetFloat(name string, v float64) {
	if a.Floats == nil {
		a.Floats = make(map[string]float64)
	}
	a.Floats[name] = v
}

func (a *AnimationParams) Float(name string) float64 {
	return a.Floats[name]
}
