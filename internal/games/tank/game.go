// Package tank implements Pocket Tanks: a single tank driven across an
// implicit grid, turning on arrow-key input.
package tank

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/registry"
)

// GameID is the registry identifier.
const GameID = "tank"

// Terminal layout: two header rows, and each grid unit drawn as two columns
// by one row so the tank looks roughly square.
const (
	hudHeight    = 2
	pixelsPerCol = CellSize / 2
	pixelsPerRow = CellSize
)

// Game is one play session. It owns exactly one Tank.
type Game struct {
	settings Settings
	tank     *Tank

	tick   uint64
	moves  int
	paused bool

	journal  []core.InputEvent
	outcomes [4]int // Indexed by RequestOutcome
}

// New creates a game using the settings set by Configure.
func New() *Game {
	return NewWithSettings(CurrentSettings())
}

// NewWithSettings creates a game with explicit settings.
func NewWithSettings(s Settings) *Game {
	g := &Game{settings: s}
	g.Reset(core.DefaultConfig())
	return g
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pocket Tanks"
}

// Settings returns the settings the session runs with.
func (g *Game) Settings() Settings {
	return g.settings
}

// Tank exposes the session's tank for inspection.
func (g *Game) Tank() *Tank {
	return g.tank
}

// Reset starts a fresh session. The runtime config only affects hosts; the
// simulation is fully described by Settings.
func (g *Game) Reset(_ core.RuntimeConfig) {
	g.tank = NewTank(g.settings.Start, g.settings.Heading)
	g.tick = 0
	g.moves = 0
	g.paused = false
	g.journal = nil
	g.outcomes = [4]int{}
}

// restart replaces the tank but keeps the tick counter and journal running,
// so the session stays replayable.
func (g *Game) restart() {
	g.tank = NewTank(g.settings.Start, g.settings.Heading)
	g.moves = 0
	g.paused = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	for _, a := range in.Actions() {
		g.journal = append(g.journal, core.InputEvent{Tick: g.tick, Action: a})
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		if _, ok := DirectionFromKey(a); !ok {
			continue
		}
		g.outcomes[g.tank.RequestDirection(a)]++
	}

	// The driving force only pushes the tank while it is inside the arena.
	// Grid coordinates are compared against the pixel size.
	pos := g.tank.Pos()
	if pos.X < g.settings.ArenaW && pos.Y < g.settings.ArenaH {
		g.tank.Advance(pos.Add(g.settings.DriveOffset))
		g.moves++
	}

	return core.StepResult{State: g.State()}
}

// Draw issues the two fill commands for the tank: body, then turret.
func (g *Game) Draw(dst core.Canvas) {
	r := DrawRect(g.tank.Pos())
	dst.FillRect(r, g.settings.BodyColor)
	dst.FillRect(r, core.ColorDefault)
}

// Render draws the HUD and the tank into a terminal screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)
	g.Draw(core.NewCellCanvas(dst, pixelsPerCol, pixelsPerRow, hudHeight))

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Pocket Tanks | Tick: %d  Pos: %s  Heading: %s",
		g.tick, g.tank.Pos(), g.tank.Direction())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawHLine(boxX, boxY, boxW, '-')
	dst.DrawHLine(boxX, boxY+boxH-1, boxW, '-')
	for y := boxY + 1; y < boxY+boxH-1; y++ {
		dst.Set(boxX, y, '|')
		dst.Set(boxX+boxW-1, y, '|')
	}
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// State returns the current game state. Score counts ticks the tank moved.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.moves,
		Paused: g.paused,
	}
}

// Recording returns the session in replayable form. It fails when the
// settings cannot be encoded, since the session could not be replayed.
func (g *Game) Recording() (core.Recording, error) {
	setup, err := g.settings.Encode()
	if err != nil {
		return core.Recording{}, err
	}
	journal := make([]core.InputEvent, len(g.journal))
	copy(journal, g.journal)
	return core.Recording{
		GameID: GameID,
		Setup:  setup,
		Ticks:  g.tick,
		Score:  g.moves,
		Inputs: journal,
		Final:  g.DebugState(),
	}, nil
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	s := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Moves: %d, Paused: %v, Phase: %s\n", s.Tick, s.Moves, s.Paused, s.Phase)
	fmt.Fprintf(&b, "Pos: %s, Next: %s, LastKnown: %s\n", s.Pos, s.NextPos, s.LastKnownPosition)
	fmt.Fprintf(&b, "Heading: %s, Next: %s, LastKnown: %s\n", s.Direction, s.NextDirection, s.LastKnownDirection)
	fmt.Fprintf(&b, "Requests: staged=%d committed=%d dropped=%d ignored=%d\n",
		s.Staged, s.Committed, s.Dropped, s.Ignored)
	return b.String()
}
