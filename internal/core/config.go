package core

// RuntimeConfig contains configuration passed to games at initialization.
// Hosts fill it from the loaded config and the current display size.
type RuntimeConfig struct {
	ScreenW  int // Display width (cells for the terminal, pixels for the window)
	ScreenH  int // Display height
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 8,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Game-defined progress counter
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Recording captures everything a host needs to persist a session and
// replay it later.
type Recording struct {
	GameID string
	Player string       // Who played (SSH user, or "local")
	Setup  string       // Game-specific setup, opaque to the platform
	Ticks  uint64       // Number of Step calls in the session
	Score  int          // GameState.Score at the end of the session
	Inputs []InputEvent // Every non-empty action, keyed by tick
	Final  string       // Game-specific final state, compared on replay
}
