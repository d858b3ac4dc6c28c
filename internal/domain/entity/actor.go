package entity

// ActorKind identifies what an actor is
type ActorKind int

const (
	ActorCat ActorKind = iota
	ActorMouse
)

// String returns the string representation of the actor kind
func (k ActorKind) String() string {
	switch k {
	case ActorCat:
		return "Cat"
	case ActorMouse:
		return "Mouse"
	default:
		return "Unknown"
	}
}

// Behavior is the per-kind state that drives an actor's intent
type Behavior interface {
	isBehavior()
}

// PlayerControlled actors take their intent from input
type PlayerControlled struct{}

func (PlayerControlled) isBehavior() {}

// FleeWander actors wander randomly and run from the player
type FleeWander struct {
	Direction        Vec2
	ScareCooldown    float64 // seconds until the actor can be scared again
	RedirectCooldown float64 // seconds until the next random heading
	Bonus            bool
}

func (*FleeWander) isBehavior() {}

// Actor is any moving entity in the level
type Actor struct {
	Body
	Kind         ActorKind
	Acceleration float64 // pixels/frame gained per second of full intent
	Damping      float64 // per-frame velocity multiplier
	Facing       float64 // radians, from the last nonzero intent
	LastIntent   Vec2
	Score        int // points awarded when captured
	Behavior     Behavior
}

// NewCat creates the player actor
func NewCat(x, y, w, h, accel, damping float64) *Actor {
	return &Actor{
		Body: Body{
			Position: Vec2{x, y},
			Size:     Vec2{w, h},
		},
		Kind:         ActorCat,
		Acceleration: accel,
		Damping:      damping,
		Behavior:     PlayerControlled{},
	}
}

// NewMouse creates an NPC actor
func NewMouse(x, y, w, h, accel, damping float64, score int, bonus bool) *Actor {
	return &Actor{
		Body: Body{
			Position: Vec2{x, y},
			Size:     Vec2{w, h},
		},
		Kind:         ActorMouse,
		Acceleration: accel,
		Damping:      damping,
		Score:        score,
		Behavior:     &FleeWander{Bonus: bonus},
	}
}

// IsBonus reports whether the actor is the rare bonus variant
func (a *Actor) IsBonus() bool {
	fw, ok := a.Behavior.(*FleeWander)
	return ok && fw.Bonus
}

// IsMoving reports whether the actor has any velocity
func (a *Actor) IsMoving() bool {
	return !a.Velocity.IsZero()
}
