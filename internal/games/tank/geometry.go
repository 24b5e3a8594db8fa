package tank

import (
	"fmt"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// CellSize is the edge length, in pixels, of one grid unit.
const CellSize = 10

// Position is a grid coordinate (not pixels).
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Inverse returns the opposite heading.
func (d Direction) Inverse() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection resolves a heading by name.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.String() == s {
			return d, nil
		}
	}
	return DirUp, fmt.Errorf("tank: unknown heading %q", s)
}

// MarshalText encodes the heading by name.
func (d Direction) MarshalText() ([]byte, error) {
	if d < DirUp || d > DirRight {
		return nil, fmt.Errorf("tank: cannot encode heading %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a heading name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DirectionFromKey maps the four arrow-key actions to headings.
// Any other action is not a direction.
func DirectionFromKey(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirUp, false
}

// Project returns the position one step from p along d.
// The offsets are not symmetric: Left and Right move diagonally and Down
// moves along x.
func Project(p Position, d Direction) Position {
	switch d {
	case DirUp:
		return Position{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Position{X: p.X - 1, Y: p.Y}
	case DirLeft:
		return Position{X: p.X - 1, Y: p.Y - 1}
	default:
		return Position{X: p.X + 1, Y: p.Y + 1}
	}
}

// DrawRect returns the pixel rectangle that fills the grid cell at p.
func DrawRect(p Position) core.Rect {
	return core.NewRect(p.X*CellSize, p.Y*CellSize, CellSize, CellSize)
}
