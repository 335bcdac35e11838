package component

// ContactPhase is the lifecycle stage of a contact between two shapes.
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota + 1
	ContactStay
	ContactEnd
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return "begin"
	case ContactStay:
		return "stay"
	case ContactEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Contact is one collision or trigger notification. Other is the raw entity
// handle of the other party.
type Contact struct {
	Other   uint64
	Phase   ContactPhase
	Trigger bool
}

// Contacts buffers the notifications an entity received during the last
// physics step. Entities carrying it are reported on by the physics system.
type Contacts struct {
	Events []Contact
}

var ContactsComponent = NewComponent[Contacts]()
