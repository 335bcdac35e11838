package component

// Input stores per-frame input state for an entity. MoveX is the horizontal
// axis in [-1, 1]; JumpPressed is true only on the frame the button went down.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
