package tank

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Moves  int
	Paused bool
	Phase  Phase

	Pos               Position
	NextPos           Opt[Position]
	LastKnownPosition Opt[Position]

	Direction          Direction
	NextDirection      Opt[Direction]
	LastKnownDirection Opt[Direction]

	Staged    int
	Committed int
	Dropped   int
	Ignored   int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	t := g.tank
	return Snapshot{
		Tick:   g.tick,
		Moves:  g.moves,
		Paused: g.paused,
		Phase:  t.phase,

		Pos:               t.pos,
		NextPos:           t.nextPos,
		LastKnownPosition: t.lastKnownPosition,

		Direction:          t.direction,
		NextDirection:      t.nextDirection,
		LastKnownDirection: t.lastKnownDirection,

		Staged:    g.outcomes[RequestStaged],
		Committed: g.outcomes[RequestCommitted],
		Dropped:   g.outcomes[RequestDropped],
		Ignored:   g.outcomes[RequestIgnored],
	}
}
