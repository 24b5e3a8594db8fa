package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-tanks/internal/config"
	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/registry"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

// DefaultScreenshotDir is where ctrl+s writes screen dumps.
const DefaultScreenshotDir = "~/.pockettanks/screenshots"

// statusTTL is how long a status message stays on the bottom row, in ticks.
const statusTTL = 16

// Options configures a Model. Every field is optional.
type Options struct {
	Store         *storage.Store
	Logger        *log.Logger
	Player        string          // Stored with the recording
	ScreenshotDir string          // Defaults to DefaultScreenshotDir
	Clipboard     bool            // Allow ctrl+y to copy the debug state
	Playback      *core.Recording // Feed recorded inputs instead of the keyboard
}

// session holds the parts of the model that must survive Bubble Tea's
// value-receiver copies.
type session struct {
	mu        sync.Mutex // Guards saved and savedID
	saved     bool
	savedID   int64
	playTick  uint64
	playNext  int
	status    string
	statusAge int
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	sess       *session
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = DefaultScreenshotDir
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		sess:       &session{},
	}
}

// Init starts the tick loop. The game is expected to be freshly reset.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "game", m.game.ID(), "player", m.opts.Player,
		"playback", m.opts.Playback != nil)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapCommand(msg) {
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	case CommandCopyState:
		m.copyState()
		return m, nil
	}

	if m.opts.Playback != nil {
		if _, isQuit := m.keys.MapKey(msg); isQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.saveRecording()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The simulation does not
// depend on the terminal size, so the session carries on.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.opts.Playback != nil {
		return m.playbackTick()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.ageStatus()

	return m, tickCmd(m.config.TickRate)
}

// playbackTick feeds the recorded actions of the next tick to the game.
func (m Model) playbackTick() (tea.Model, tea.Cmd) {
	rec := m.opts.Playback
	tick := m.sess.playTick + 1
	if tick > rec.Ticks {
		m.setStatus("playback finished, press q to exit")
		return m, nil
	}

	frame := core.NewInputFrame()
	for m.sess.playNext < len(rec.Inputs) && rec.Inputs[m.sess.playNext].Tick == tick {
		frame.Set(rec.Inputs[m.sess.playNext].Action)
		m.sess.playNext++
	}
	m.gameState = m.game.Step(frame).State
	m.sess.playTick = tick
	m.ageStatus()

	if tick == rec.Ticks {
		if m.game.DebugState() == rec.Final {
			m.setStatus("playback finished, state matches the recording")
		} else {
			m.setStatus("playback finished, state DIVERGED from the recording")
			m.logger.Warn("playback diverged", "game", rec.GameID)
		}
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRecording stores the session once. Sessions that never ticked are
// not worth keeping.
func (m *Model) saveRecording() {
	m.sess.mu.Lock()
	defer m.sess.mu.Unlock()
	if m.opts.Store == nil || m.sess.saved {
		return
	}
	rec, err := m.game.Recording()
	if err != nil {
		m.logger.Error("session is not replayable, not saving", "error", err)
		return
	}
	if rec.Ticks == 0 {
		return
	}
	rec.Player = m.opts.Player

	id, err := m.opts.Store.SaveRecording(rec)
	if err != nil {
		m.logger.Error("could not save recording", "error", err)
		return
	}
	m.sess.saved = true
	m.sess.savedID = id
	m.logger.Info("recording saved", "id", id, "ticks", rec.Ticks, "inputs", len(rec.Inputs))
}

// Finish saves the recording if the session ended without a clean quit.
func (m Model) Finish() {
	if m.opts.Playback == nil {
		m.saveRecording()
	}
}

// SavedRecordingID returns the ID of the stored recording, or 0.
func (m Model) SavedRecordingID() int64 {
	m.sess.mu.Lock()
	defer m.sess.mu.Unlock()
	return m.sess.savedID
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := config.ExpandHome(m.opts.ScreenshotDir)
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		m.logger.Warn("screenshot directory unavailable", "error", err)
		m.setStatus("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not write screenshot", "error", err)
		m.setStatus("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("screenshot saved")
}

// copyState puts the debug state on the system clipboard.
func (m *Model) copyState() {
	if !m.opts.Clipboard {
		m.setStatus("clipboard unavailable")
		return
	}
	if err := clipboard.WriteAll(m.game.DebugState()); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("state copied")
}

func (m *Model) setStatus(s string) {
	m.sess.status = s
	m.sess.statusAge = 0
}

func (m *Model) ageStatus() {
	if m.sess.status == "" {
		return
	}
	m.sess.statusAge++
	if m.sess.statusAge > statusTTL {
		m.sess.status = ""
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.sess.status != "" {
		m.screen.DrawText(1, m.screen.Height()-1, m.sess.status)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program and returns the stored recording ID,
// or 0 if nothing was saved.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (int64, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if fm, ok := final.(Model); ok {
		fm.Finish()
		return fm.SavedRecordingID(), nil
	}
	return 0, nil
}
