package tank

import (
	"testing"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

func TestInverse(t *testing.T) {
	tests := []struct {
		d, expected Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tc := range tests {
		if got := tc.d.Inverse(); got != tc.expected {
			t.Errorf("%v.Inverse() = %v, expected %v", tc.d, got, tc.expected)
		}
		if got := tc.d.Inverse().Inverse(); got != tc.d {
			t.Errorf("double inverse of %v = %v", tc.d, got)
		}
	}
}

func TestProject(t *testing.T) {
	origin := Position{X: 10, Y: 10}
	tests := []struct {
		d        Direction
		expected Position
	}{
		{DirUp, Position{X: 10, Y: 9}},
		{DirDown, Position{X: 9, Y: 10}},
		{DirLeft, Position{X: 9, Y: 9}},
		{DirRight, Position{X: 11, Y: 11}},
	}

	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			got := Project(origin, tc.d)
			if got != tc.expected {
				t.Errorf("Project(%v, %v) = %v, expected %v", origin, tc.d, got, tc.expected)
			}
			if again := Project(origin, tc.d); again != got {
				t.Errorf("Project is not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestDrawRect(t *testing.T) {
	got := DrawRect(Position{X: 10, Y: 10})
	want := core.NewRect(100, 100, 10, 10)
	if got != want {
		t.Errorf("DrawRect((10, 10)) = %+v, expected %+v", got, want)
	}

	got = DrawRect(Position{X: -1, Y: 0})
	if got.X != -10 || got.Y != 0 {
		t.Errorf("DrawRect((-1, 0)) origin = (%d, %d), expected (-10, 0)", got.X, got.Y)
	}
}

func TestDirectionFromKey(t *testing.T) {
	tests := []struct {
		key      core.Action
		expected Direction
		ok       bool
	}{
		{core.ActionUp, DirUp, true},
		{core.ActionDown, DirDown, true},
		{core.ActionLeft, DirLeft, true},
		{core.ActionRight, DirRight, true},
		{core.ActionPause, DirUp, false},
		{core.ActionNone, DirUp, false},
	}

	for _, tc := range tests {
		d, ok := DirectionFromKey(tc.key)
		if ok != tc.ok {
			t.Errorf("DirectionFromKey(%v) ok = %v, expected %v", tc.key, ok, tc.ok)
			continue
		}
		if ok && d != tc.expected {
			t.Errorf("DirectionFromKey(%v) = %v, expected %v", tc.key, d, tc.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("ParseDirection should reject unknown headings")
	}
}

func TestOpt(t *testing.T) {
	o := None[Position]()
	if o.IsSome() {
		t.Error("None should be absent")
	}
	if o.String() != "-" {
		t.Errorf("None String() = %q, expected -", o.String())
	}

	o = Some(Position{X: 1, Y: 2})
	if !o.Is(Position{X: 1, Y: 2}) || o.Is(Position{}) {
		t.Error("Is() should compare the held value")
	}

	v, ok := o.Take()
	if !ok || v != (Position{X: 1, Y: 2}) {
		t.Errorf("Take() = %v, %v", v, ok)
	}
	if o.IsSome() {
		t.Error("Take() should leave the option empty")
	}
}
