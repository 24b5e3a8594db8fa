package tank

import (
	"errors"
	"testing"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// playSession runs a fixed input script and returns the game.
func playSession(s Settings) *Game {
	script := map[int][]core.Action{
		2:  {core.ActionUp},
		3:  {core.ActionDown},
		5:  {core.ActionLeft, core.ActionDown},
		7:  {core.ActionPause},
		9:  {core.ActionRight},
		10: {core.ActionPause},
		12: {core.ActionRestart},
		14: {core.ActionDown, core.ActionLeft, core.ActionUp},
	}

	g := NewWithSettings(s)
	for i := 1; i <= 20; i++ {
		g.Step(frame(script[i]...))
	}
	return g
}

func TestReplayReproducesSession(t *testing.T) {
	g := playSession(DefaultSettings())
	rec := record(t, g)

	replayed, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if replayed.Snapshot() != g.Snapshot() {
		t.Errorf("snapshots differ:\noriginal %+v\nreplayed %+v", g.Snapshot(), replayed.Snapshot())
	}
}

func TestReplayUsesRecordedSettings(t *testing.T) {
	s := DefaultSettings()
	s.Start = Position{X: 40, Y: 5}
	s.Heading = DirLeft
	s.DriveOffset = Position{X: -3, Y: 2}
	s.BodyColor = core.ColorGreen
	rec := record(t, playSession(s))

	prev := CurrentSettings()
	t.Cleanup(func() { Configure(prev) })
	Configure(DefaultSettings())

	replayed, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if replayed.Settings() != s {
		t.Errorf("replay settings = %+v, expected %+v", replayed.Settings(), s)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	good := record(t, playSession(DefaultSettings()))

	extraTick := good
	extraTick.Ticks++
	if _, err := Verify(extraTick); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("extra tick: Verify error = %v, expected ErrReplayMismatch", err)
	}

	edited := good
	edited.Final = "Tick: 0\n"
	if _, err := Verify(edited); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("edited final: Verify error = %v, expected ErrReplayMismatch", err)
	}
}

func TestReplayRejectsBadRecordings(t *testing.T) {
	good := record(t, playSession(DefaultSettings()))

	tests := []struct {
		name   string
		mutate func(r *core.Recording)
	}{
		{"other game", func(r *core.Recording) { r.GameID = "snake" }},
		{"bad setup", func(r *core.Recording) { r.Setup = "heading: [" }},
		{"missing setup", func(r *core.Recording) { r.Setup = "" }},
		{"inputs past last tick", func(r *core.Recording) { r.Ticks = 1 }},
		{"inputs out of order", func(r *core.Recording) {
			r.Inputs = append([]core.InputEvent{{Tick: 9, Action: core.ActionUp}}, r.Inputs...)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := good
			rec.Inputs = append([]core.InputEvent(nil), good.Inputs...)
			tc.mutate(&rec)
			if _, err := Replay(rec); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRecordingFailsWhenSettingsCannotBeEncoded(t *testing.T) {
	s := DefaultSettings()
	s.Heading = Direction(9)
	g := NewWithSettings(s)
	g.Step(frame())

	if _, err := g.Recording(); err == nil {
		t.Error("expected an error for an unencodable heading")
	}
	if _, err := s.Encode(); err == nil {
		t.Error("Encode should reject an unknown heading")
	}
}

func TestSettingsEncodeDecode(t *testing.T) {
	s := DefaultSettings()
	s.Heading = DirDown
	s.BodyColor = core.ColorCyan

	setup, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeSettings(setup)
	if err != nil {
		t.Fatalf("DecodeSettings: %v", err)
	}
	if got != s {
		t.Errorf("decoded %+v, expected %+v", got, s)
	}
}
