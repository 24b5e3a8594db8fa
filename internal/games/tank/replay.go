package tank

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// ErrReplayMismatch is returned by Verify when a replay diverges.
var ErrReplayMismatch = errors.New("tank: replay diverged from recording")

// Replay re-simulates a recorded session and returns the resulting game.
// Inputs are fed back at the tick that originally consumed them.
func Replay(rec core.Recording) (*Game, error) {
	if rec.GameID != GameID {
		return nil, fmt.Errorf("tank: cannot replay %q recording", rec.GameID)
	}
	if rec.Setup == "" {
		return nil, errors.New("tank: recording has no setup")
	}
	settings, err := DecodeSettings(rec.Setup)
	if err != nil {
		return nil, err
	}

	g := NewWithSettings(settings)
	frame := core.NewInputFrame()
	next := 0
	for tick := uint64(1); tick <= rec.Ticks; tick++ {
		frame.Clear()
		for next < len(rec.Inputs) && rec.Inputs[next].Tick == tick {
			frame.Set(rec.Inputs[next].Action)
			next++
		}
		if next < len(rec.Inputs) && rec.Inputs[next].Tick < tick {
			return nil, fmt.Errorf("tank: recording inputs out of order at tick %d", rec.Inputs[next].Tick)
		}
		g.Step(frame)
	}
	if next != len(rec.Inputs) {
		return nil, fmt.Errorf("tank: %d inputs recorded after the last tick", len(rec.Inputs)-next)
	}
	return g, nil
}

// Verify replays rec and checks the final state matches what was recorded.
func Verify(rec core.Recording) (*Game, error) {
	g, err := Replay(rec)
	if err != nil {
		return nil, err
	}
	if got := g.DebugState(); got != rec.Final {
		return g, fmt.Errorf("%w:\nrecorded:\n%s\nreplayed:\n%s", ErrReplayMismatch, rec.Final, got)
	}
	return g, nil
}
