package registry

import (
	"testing"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Draw(core.Canvas)                     {}
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Recording() (core.Recording, error)   { return core.Recording{GameID: g.id}, nil }
func (g *stubGame) DebugState() string                   { return "" }

func TestRegisterCreateList(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") || Exists("missing") {
		t.Fatal("Exists() reported the wrong registrations")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("Create() returned %q", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown games")
	}

	list := List()
	pos := map[string]int{}
	for i, info := range list {
		pos[info.ID] = i
		if info.Title != "Stub "+info.ID {
			t.Errorf("title for %s = %q", info.ID, info.Title)
		}
		if i > 0 && list[i-1].ID >= info.ID {
			t.Errorf("List() not sorted at %d: %s before %s", i, list[i-1].ID, info.ID)
		}
	}
	if _, ok := pos["stub-a"]; !ok {
		t.Error("List() is missing stub-a")
	}
	if _, ok := pos["stub-b"]; !ok {
		t.Error("List() is missing stub-b")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
