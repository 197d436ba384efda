// Package config provides YAML-based configuration loading for the gems
// game: scoring rules, board generation limits, animation pacing and the
// default difficulty.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/triplejoy/internal/match3"
)

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RulesConfig mirrors match3.Rules.
type RulesConfig struct {
	PointsPerGem       int  `yaml:"points_per_gem"`
	Palette            int  `yaml:"palette"` // Token kinds in play, 3..6
	MaxCascades        int  `yaml:"max_cascades"`
	GenerateAttempts   int  `yaml:"generate_attempts"`
	RequireOpeningMove bool `yaml:"require_opening_move"`
}

// AnimationConfig controls how long the host shows each cascade step.
type AnimationConfig struct {
	StepTicks int `yaml:"step_ticks"` // Simulation ticks per cascade step, 0 disables animation
}

// DifficultyConfig selects the difficulty used when none is given.
type DifficultyConfig struct {
	Default string `yaml:"default"` // "easy", "medium" or "hard"
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid gems config")

// EngineRules converts the rules section to engine rules.
func (c GemsConfig) EngineRules() match3.Rules {
	return match3.Rules{
		PointsPerGem:       c.Rules.PointsPerGem,
		Palette:            c.Rules.Palette,
		MaxCascades:        c.Rules.MaxCascades,
		GenerateAttempts:   c.Rules.GenerateAttempts,
		RequireOpeningMove: c.Rules.RequireOpeningMove,
	}
}

// Validate rejects values the engine or the host cannot run with.
func (c GemsConfig) Validate() error {
	if err := c.EngineRules().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Animation.StepTicks < 0 {
		return fmt.Errorf("%w: animation.step_ticks %d", ErrInvalidConfig, c.Animation.StepTicks)
	}
	if _, err := c.DefaultDifficulty(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
