package tank

import "github.com/vovakirdan/pocket-tanks/internal/core"

// Phase tells whether the tank has completed its first tick.
type Phase int

const (
	// PhaseUninitialized: no snapshots exist yet, so neither the position
	// commit nor the direction commit can run and input is ignored.
	PhaseUninitialized Phase = iota
	// PhaseSteady: snapshots exist and every tick compares against them.
	PhaseSteady
)

func (p Phase) String() string {
	if p == PhaseSteady {
		return "steady"
	}
	return "uninitialized"
}

// RequestOutcome reports what RequestDirection did with a key.
type RequestOutcome int

const (
	RequestIgnored   RequestOutcome = iota // not a direction key, or still bootstrapping
	RequestStaged                          // buffered for the next tick
	RequestCommitted                       // heading changed immediately
	RequestDropped                         // would have reversed the tank
)

func (o RequestOutcome) String() string {
	switch o {
	case RequestStaged:
		return "staged"
	case RequestCommitted:
		return "committed"
	case RequestDropped:
		return "dropped"
	default:
		return "ignored"
	}
}

// Tank is the movement state machine. It moves once per Advance and turns
// in response to RequestDirection, never reversing in place.
//
// The last-known fields are one-tick-delayed copies of pos and direction.
// Comparing a live field with its snapshot tells whether a change has
// already happened since the previous tick boundary.
type Tank struct {
	phase Phase

	pos               Position
	nextPos           Opt[Position]
	lastKnownPosition Opt[Position]

	direction          Direction
	lastKnownDirection Opt[Direction]
	nextDirection      Opt[Direction]
}

// NewTank creates a tank at pos facing dir.
func NewTank(pos Position, dir Direction) *Tank {
	return &Tank{
		phase:     PhaseUninitialized,
		pos:       pos,
		direction: dir,
	}
}

// Pos returns the authoritative position.
func (t *Tank) Pos() Position { return t.pos }

// Direction returns the authoritative heading.
func (t *Tank) Direction() Direction { return t.direction }

// Phase returns the bootstrap phase.
func (t *Tank) Phase() Phase { return t.phase }

// NextPos returns the projection staged by the previous tick.
func (t *Tank) NextPos() Opt[Position] { return t.nextPos }

// LastKnownPosition returns the delayed position snapshot.
func (t *Tank) LastKnownPosition() Opt[Position] { return t.lastKnownPosition }

// LastKnownDirection returns the delayed heading snapshot.
func (t *Tank) LastKnownDirection() Opt[Direction] { return t.lastKnownDirection }

// NextDirection returns the buffered direction request.
func (t *Tank) NextDirection() Opt[Direction] { return t.nextDirection }

// RequestDirection handles one key press.
func (t *Tank) RequestDirection(key core.Action) RequestOutcome {
	dir, ok := DirectionFromKey(key)
	if !ok {
		return RequestIgnored
	}

	lastKnown, ok := t.lastKnownDirection.Get()
	if !ok {
		return RequestIgnored
	}

	switch {
	case t.direction != lastKnown && dir != t.direction.Inverse():
		// A change is already in flight this tick; queue behind it.
		t.nextDirection = Some(dir)
		return RequestStaged
	case dir != lastKnown.Inverse() && dir != t.direction.Inverse():
		t.direction = dir
		return RequestCommitted
	default:
		return RequestDropped
	}
}

// Advance runs one simulation tick. candidate is the externally driven
// position used by the position commit.
func (t *Tank) Advance(candidate Position) {
	startPos, startDir := t.pos, t.direction

	if lastKnown, ok := t.lastKnownPosition.Get(); ok {
		if next, staged := t.nextPos.Get(); lastKnown == t.pos && staged {
			t.pos = next
			t.nextPos = None[Position]()
		} else {
			t.lastKnownPosition = Some(t.pos)
			t.pos = candidate
		}
	}

	t.nextPos = Some(Project(candidate, t.direction))

	if lastKnown, ok := t.lastKnownDirection.Get(); ok {
		if lastKnown == t.direction && t.nextDirection.IsSome() {
			next, _ := t.nextDirection.Take()
			t.turn(next)
		} else {
			t.lastKnownDirection = Some(t.direction)
		}
	}

	if next, ok := t.nextDirection.Get(); ok {
		t.turn(next)
	}
	t.nextDirection = None[Direction]()

	t.pos = Project(t.pos, t.direction)

	if t.phase == PhaseUninitialized {
		t.lastKnownPosition = Some(startPos)
		t.lastKnownDirection = Some(startDir)
		t.phase = PhaseSteady
	}
}

// turn changes heading unless d would reverse the tank.
func (t *Tank) turn(d Direction) {
	if d != t.direction.Inverse() {
		t.direction = d
	}
}
