// Package window runs the game in a desktop window using Ebitengine.
package window

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/registry"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

// Options configures the window host.
type Options struct {
	Title    string
	Width    int
	Height   int
	TickRate int // Game ticks per second
	// UpdateRate is how often keys are sampled, in updates per second.
	// Defaults to ebiten.DefaultTPS. Presses between ticks accumulate.
	UpdateRate int
	Store    *storage.Store
	Logger   *log.Logger
	Player   string
}

var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// palette maps game colors to RGBA. ColorDefault is black.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault: {A: 255},
	core.ColorRed:     {R: 255, A: 255},
	core.ColorGreen:   {G: 255, A: 255},
	core.ColorYellow:  {R: 255, G: 255, A: 255},
	core.ColorBlue:    {B: 255, A: 255},
	core.ColorMagenta: {R: 255, B: 255, A: 255},
	core.ColorCyan:    {G: 255, B: 255, A: 255},
	core.ColorWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:  {R: 255, G: 128, A: 255},
	core.ColorGray:    {R: 128, G: 128, B: 128, A: 255},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// keyActions maps the keys the window listens to. Only the arrows steer.
var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeyArrowUp:    core.ActionUp,
	ebiten.KeyArrowDown:  core.ActionDown,
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyP:          core.ActionPause,
	ebiten.KeyEscape:     core.ActionPause,
	ebiten.KeyR:          core.ActionRestart,
	ebiten.KeyQ:          core.ActionQuit,
}

// Host implements ebiten.Game around a registry game.
type Host struct {
	game   registry.Game
	opts   Options
	logger *log.Logger

	frame core.InputFrame
	keys  []ebiten.Key
	acc   int // Tick debt in units of 1/UpdateRate

	// justPressed is swapped out by tests.
	justPressed func([]ebiten.Key) []ebiten.Key
}

// NewHost wraps game. The game is expected to be freshly reset.
func NewHost(game registry.Game, opts Options) *Host {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.UpdateRate <= 0 {
		opts.UpdateRate = ebiten.DefaultTPS
	}
	if opts.UpdateRate < opts.TickRate {
		opts.UpdateRate = opts.TickRate
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		game:        game,
		opts:        opts,
		logger:      logger,
		frame:       core.NewInputFrame(),
		justPressed: inpututil.AppendJustPressedKeys,
	}
}

// Update samples this update's key presses into the pending frame and runs
// a game tick whenever one is due. Presses keep their arrival order across
// updates; within a single update ebiten reports them by key code.
func (h *Host) Update() error {
	h.keys = h.justPressed(h.keys[:0])
	for _, k := range h.keys {
		a, ok := keyActions[k]
		if !ok {
			continue
		}
		if a == core.ActionQuit {
			return ebiten.Termination
		}
		h.frame.Set(a)
	}

	h.acc += h.opts.TickRate
	if h.acc >= h.opts.UpdateRate {
		h.acc -= h.opts.UpdateRate
		h.game.Step(h.frame)
		h.frame.Clear()
	}
	return nil
}

// Draw clears to white and lets the game issue its fills.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	h.game.Draw(imageCanvas{dst: screen})
}

// Layout keeps a fixed logical resolution.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.opts.Width, h.opts.Height
}

// imageCanvas adapts an ebiten image to core.Canvas.
type imageCanvas struct {
	dst *ebiten.Image
}

func (c imageCanvas) FillRect(r core.Rect, col core.Color) {
	if r.Empty() {
		return
	}
	vector.FillRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), rgba(col), false)
}

// saveRecording stores the finished session, if there is anything to keep.
func (h *Host) saveRecording() {
	if h.opts.Store == nil {
		return
	}
	rec, err := h.game.Recording()
	if err != nil {
		h.logger.Error("session is not replayable, not saving", "error", err)
		return
	}
	if rec.Ticks == 0 {
		return
	}
	rec.Player = h.opts.Player
	id, err := h.opts.Store.SaveRecording(rec)
	if err != nil {
		h.logger.Error("could not save recording", "error", err)
		return
	}
	h.logger.Info("recording saved", "id", id, "ticks", rec.Ticks, "inputs", len(rec.Inputs))
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(game registry.Game, opts Options) error {
	h := NewHost(game, opts)

	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowResizable(false)
	ebiten.SetTPS(h.opts.UpdateRate)

	h.logger.Info("window opened", "title", h.opts.Title,
		"tick_rate", h.opts.TickRate, "update_rate", h.opts.UpdateRate)
	err := ebiten.RunGame(h)
	h.saveRecording()
	return err
}
