// Package registry keeps the set of playable games. Game packages register
// factories from init(); hosts list and create games by ID without
// importing the game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/triplejoy/internal/core"
)

// Game is what the terminal host drives. Implementations hold pure
// simulation state: no Bubble Tea, no storage, no clocks.
type Game interface {
	// ID is the stable key used on the command line and in the score table,
	// e.g. "gems_easy".
	ID() string

	// Title is the display name, e.g. "TripleJoy (Easy)".
	Title() string

	// Reset starts a fresh session for the screen size and seed in cfg.
	// Called at start and again after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed simulation tick with the input gathered since
	// the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, game over and pause.
	State() core.GameState
}

// Resizer is implemented by games that follow a terminal resize without a
// Reset.
type Resizer interface {
	Resize(w, h int)
}

// Controller is implemented by games that describe their key bindings.
type Controller interface {
	Controls() string
}

// Ranked is implemented by games that want a position in List other than
// alphabetical, e.g. difficulty order.
type Ranked interface {
	Rank() int
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	Rank  int
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. The factory is called once to read the
// title and rank. Panics on a duplicate id.
func Register(id string, f Factory) {
	probe := f()
	info := GameInfo{ID: id, Title: probe.Title()}
	if r, ok := probe.(Ranked); ok {
		info.Rank = r.Rank()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns every registered game ordered by rank, then ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Lookup returns the metadata registered under id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
