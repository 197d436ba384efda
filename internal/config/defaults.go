package config

import (
	_ "embed"

	"github.com/vovakirdan/triplejoy/internal/match3"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gems configuration.
func DefaultGemsConfig() GemsConfig {
	r := match3.DefaultRules()
	return GemsConfig{
		Rules: RulesConfig{
			PointsPerGem:       r.PointsPerGem,
			Palette:            r.Palette,
			MaxCascades:        r.MaxCascades,
			GenerateAttempts:   r.GenerateAttempts,
			RequireOpeningMove: r.RequireOpeningMove,
		},
		Animation: AnimationConfig{
			StepTicks: 12,
		},
		Difficulty: DifficultyConfig{
			Default: "easy",
		},
	}
}
