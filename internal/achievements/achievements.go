// Package achievements tracks long-term player progress across gems
// sessions. A Tracker observes engine events, keeps totals and unlocks
// achievements; progress lives in a Store.
package achievements

import "time"

// Kind says how an achievement's progress is measured.
type Kind int

const (
	KindLevels     Kind = iota // Levels completed in total
	KindTotalScore             // Score summed over every session
	KindCounter                // Incremented by specific events
)

// Titles of the built-in achievements.
const (
	FirstSteps      = "First Steps"
	ScoreMaster     = "Score Master"
	LevelHunter     = "Level Hunter"
	GemCollector    = "Gem Collector"
	SpeedDemon      = "Speed Demon"
	Perfectionist   = "Perfectionist"
	HighScorer      = "High Scorer"
	DedicatedPlayer = "Dedicated Player"
)

// Thresholds for the counter achievements.
const (
	SpeedDemonMaxSeconds = 60 // Inclusive: a level finished at exactly 60 s counts
	HighScorerPoints     = 500
)

// Definition describes an achievement.
type Definition struct {
	Title       string
	Description string
	Icon        rune
	Kind        Kind
	Target      int
}

// Definitions lists every achievement in display order.
var Definitions = []Definition{
	{FirstSteps, "Complete your first level", '★', KindLevels, 1},
	{ScoreMaster, "Reach 1000 points in total", '♛', KindTotalScore, 1000},
	{LevelHunter, "Complete 10 levels", '⚑', KindLevels, 10},
	{GemCollector, "Collect 100 gems in total", '◆', KindCounter, 100},
	{SpeedDemon, "Complete a level within 60 seconds", '⚡', KindCounter, 1},
	{Perfectionist, "Complete 5 levels without pausing", '✔', KindCounter, 5},
	{HighScorer, "Score 500 points in a single level", '♚', KindCounter, 1},
	{DedicatedPlayer, "Complete 25 levels", '✪', KindLevels, 25},
}

// Record is the stored state of one achievement.
type Record struct {
	Current    int
	Unlocked   bool
	UnlockedAt time.Time
}

// Progress is everything persisted for a player.
type Progress struct {
	TotalScore      int
	LevelsCompleted int
	Records         map[string]Record // By title
}

// Achievement is a definition joined with its progress.
type Achievement struct {
	Definition
	Record
}

// Fraction returns progress towards the target in [0, 1].
func (a Achievement) Fraction() float64 {
	if a.Unlocked || a.Target <= 0 {
		return 1
	}
	return min(1, float64(a.Current)/float64(a.Target))
}

// Store persists progress per player.
type Store interface {
	LoadProgress(player string) (Progress, error)
	SaveProgress(player string, p Progress) error
	ResetProgress(player string) error
}
