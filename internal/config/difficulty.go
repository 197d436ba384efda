package config

import (
	"strings"

	"github.com/vovakirdan/triplejoy/internal/match3"
)

// Preset describes one difficulty for menus and listings.
type Preset struct {
	Difficulty match3.Difficulty
	Name       string // Lowercase name accepted by match3.ParseDifficulty
	GridSize   int
	TimeLimit  int // Seconds
}

// Presets returns every difficulty in ascending order.
func Presets() []Preset {
	ds := match3.Difficulties()
	out := make([]Preset, len(ds))
	for i, d := range ds {
		out[i] = PresetFor(d)
	}
	return out
}

// PresetFor describes d.
func PresetFor(d match3.Difficulty) Preset {
	return Preset{
		Difficulty: d,
		Name:       strings.ToLower(d.String()),
		GridSize:   d.GridSize(),
		TimeLimit:  d.TimeLimit(),
	}
}

// DefaultDifficulty parses difficulty.default. An empty value means easy.
func (c GemsConfig) DefaultDifficulty() (match3.Difficulty, error) {
	if c.Difficulty.Default == "" {
		return match3.Easy, nil
	}
	return match3.ParseDifficulty(c.Difficulty.Default)
}
