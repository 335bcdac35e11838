package component

// PlayerController holds the player's movement tuning and its remaining
// jump counter. JumpsRemaining stays within [0, AllowedJumps].
type PlayerController struct {
	UseTransformMovement bool
	WalkSpeed            float64
	JumpForce            float64
	AllowedJumps         int
	InfiniteJumping      bool

	JumpsRemaining int
}

var PlayerControllerComponent = NewComponent[PlayerController]()

// ResetJumps refills the counter to the configured maximum.
func (p *PlayerController) ResetJumps() {
	if p.AllowedJumps < 0 {
		p.AllowedJumps = 0
	}
	p.JumpsRemaining = p.AllowedJumps
}

// CanJump reports whether a jump request would be honoured.
func (p *PlayerController) CanJump() bool {
	return p.InfiniteJumping || p.JumpsRemaining > 0
}

// ConsumeJump spends one jump if allowed. The counter saturates at zero so
// infinite jumping never drives it negative.
func (p *PlayerController) ConsumeJump() bool {
	if !p.CanJump() {
		return false
	}
	if p.JumpsRemaining > 0 {
		p.JumpsRemaining--
	}
	return true
}

// Retune applies new tuning while keeping the counter in range.
func (p *PlayerController) Retune(next PlayerController) {
	p.UseTransformMovement = next.UseTransformMovement
	p.WalkSpeed = next.WalkSpeed
	p.JumpForce = next.JumpForce
	p.InfiniteJumping = next.InfiniteJumping
	p.AllowedJumps = next.AllowedJumps
	if p.AllowedJumps < 0 {
		p.AllowedJumps = 0
	}
	if p.JumpsRemaining > p.AllowedJumps {
		p.JumpsRemaining = p.AllowedJumps
	}
	if p.JumpsRemaining < 0 {
		p.JumpsRemaining = 0
	}
}
