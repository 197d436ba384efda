package core

import "time"

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 30

// RuntimeConfig is what the platform hands a game on Reset: the screen it
// draws into, how often Step is called and the seed for its board stream.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Step calls per second
	Seed     int64 // 0 means the platform layer picks a seed
}

// DefaultConfig returns an 80x24 screen at DefaultTickRate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Rate returns TickRate, or DefaultTickRate when it is not positive.
func (c RuntimeConfig) Rate() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// Ticks converts a duration in seconds to simulation ticks.
func (c RuntimeConfig) Ticks(seconds int) int {
	return seconds * c.Rate()
}

// Interval is the wall-clock time between two Step calls.
func (c RuntimeConfig) Interval() time.Duration {
	return time.Second / time.Duration(c.Rate())
}

// GameState is the platform's view of a game, returned by Game.State.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Reason   string // Why the game ended, empty while running
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
