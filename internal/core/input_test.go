package core

import "testing"

func TestInputFrameKeepsArrivalOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionNone)
	f.Set(ActionLeft)
	f.Set(ActionUp)

	got := f.Actions()
	want := []Action{ActionUp, ActionLeft, ActionUp}
	if len(got) != len(want) {
		t.Fatalf("Actions() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
	if !f.Has(ActionLeft) || f.Has(ActionDown) {
		t.Error("Has() disagrees with recorded actions")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	f.Clear()
	if f.Len() != 0 {
		t.Errorf("Len() after Clear = %d, expected 0", f.Len())
	}
	if f.Has(ActionPause) {
		t.Error("Has() should not report actions from before Clear")
	}

	f.Set(ActionUp)
	if got := f.Actions(); len(got) != 1 || got[0] != ActionUp {
		t.Errorf("Actions() after reuse = %v, expected [up]", got)
	}
}

func TestActionText(t *testing.T) {
	for a := ActionNone; a <= ActionPause; a++ {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", a, err)
		}
		var back Action
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != a {
			t.Errorf("round trip of %v gave %v", a, back)
		}
	}

	if _, err := ParseAction("jump"); err == nil {
		t.Error("ParseAction should reject unknown names")
	}
}
