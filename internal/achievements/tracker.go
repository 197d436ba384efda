package achievements

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/triplejoy/internal/match3"
)

// Tracker implements match3.Observer. A level is a session that ends
// because no legal move is left; scores are added when any session ends.
//
// A Tracker is owned by one game loop and is not safe for concurrent use.
type Tracker struct {
	player   string
	store    Store
	logger   *log.Logger
	now      func() time.Time
	progress Progress
	unlocked []Achievement // Since the last Drain
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithStore loads and saves progress through s.
func WithStore(s Store) Option {
	return func(t *Tracker) {
		t.store = s
	}
}

// WithLogger sets the logger used for unlocks and store failures.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithClock overrides time.Now for unlock timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates a tracker for player and loads its progress.
// Without a store progress is kept in memory only.
func NewTracker(player string, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		player: player,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.Default()
	}

	t.progress = Progress{Records: make(map[string]Record)}
	if t.store != nil {
		p, err := t.store.LoadProgress(player)
		if err != nil {
			return nil, fmt.Errorf("achievements: load progress for %q: %w", player, err)
		}
		if p.Records == nil {
			p.Records = make(map[string]Record)
		}
		t.progress = p
	}
	return t, nil
}

// Observe updates progress from one engine event.
func (t *Tracker) Observe(e match3.Event) {
	switch ev := e.(type) {
	case match3.Matched:
		t.add(GemCollector, len(ev.Positions))

	case match3.LevelComplete:
		t.progress.LevelsCompleted++
		if ev.Elapsed <= SpeedDemonMaxSeconds {
			t.add(SpeedDemon, 1)
		}
		if ev.Pauses == 0 {
			t.add(Perfectionist, 1)
		}
		if ev.Score >= HighScorerPoints {
			t.add(HighScorer, 1)
		}

	case match3.GameOver:
		t.progress.TotalScore += ev.Score
		t.checkTotals()
		t.save()
	}
}

// add increments a counter achievement.
func (t *Tracker) add(title string, n int) {
	def, ok := definition(title)
	if !ok || n <= 0 {
		return
	}
	r := t.progress.Records[title]
	r.Current += n
	t.progress.Records[title] = r
	t.maybeUnlock(def)
}

// checkTotals refreshes the achievements measured from totals.
func (t *Tracker) checkTotals() {
	for _, def := range Definitions {
		var current int
		switch def.Kind {
		case KindLevels:
			current = t.progress.LevelsCompleted
		case KindTotalScore:
			current = t.progress.TotalScore
		default:
			continue
		}
		r := t.progress.Records[def.Title]
		r.Current = current
		t.progress.Records[def.Title] = r
		t.maybeUnlock(def)
	}
}

func (t *Tracker) maybeUnlock(def Definition) {
	r := t.progress.Records[def.Title]
	if r.Unlocked || r.Current < def.Target {
		return
	}
	r.Unlocked = true
	r.UnlockedAt = t.now()
	t.progress.Records[def.Title] = r

	t.unlocked = append(t.unlocked, Achievement{Definition: def, Record: r})
	t.logger.Info("achievement unlocked", "player", t.player, "title", def.Title)
}

func (t *Tracker) save() {
	if err := t.Save(); err != nil {
		t.logger.Warn("cannot save achievements", "player", t.player, "err", err)
	}
}

// Save writes progress to the store. It is a no-op without one.
func (t *Tracker) Save() error {
	if t.store == nil {
		return nil
	}
	if err := t.store.SaveProgress(t.player, t.progress); err != nil {
		return fmt.Errorf("achievements: save progress for %q: %w", t.player, err)
	}
	return nil
}

// ResetAll clears totals and every achievement.
func (t *Tracker) ResetAll() error {
	t.progress = Progress{Records: make(map[string]Record)}
	t.unlocked = nil
	if t.store == nil {
		return nil
	}
	if err := t.store.ResetProgress(t.player); err != nil {
		return fmt.Errorf("achievements: reset progress for %q: %w", t.player, err)
	}
	return nil
}

// Drain returns the achievements unlocked since the last call.
func (t *Tracker) Drain() []Achievement {
	out := t.unlocked
	t.unlocked = nil
	return out
}

// Player returns the tracked player name.
func (t *Tracker) Player() string {
	return t.player
}

// TotalScore returns the score summed over every finished session.
func (t *Tracker) TotalScore() int {
	return t.progress.TotalScore
}

// LevelsCompleted returns the number of completed levels.
func (t *Tracker) LevelsCompleted() int {
	return t.progress.LevelsCompleted
}

// Achievements returns every achievement in display order.
func (t *Tracker) Achievements() []Achievement {
	out := make([]Achievement, len(Definitions))
	for i, def := range Definitions {
		out[i] = Achievement{Definition: def, Record: t.progress.Records[def.Title]}
	}
	return out
}

// UnlockedCount returns how many achievements are unlocked.
func (t *Tracker) UnlockedCount() int {
	n := 0
	for _, def := range Definitions {
		if t.progress.Records[def.Title].Unlocked {
			n++
		}
	}
	return n
}

// TotalCount returns the number of achievements.
func (t *Tracker) TotalCount() int {
	return len(Definitions)
}

// Completion returns the unlocked fraction in [0, 1].
func (t *Tracker) Completion() float64 {
	if len(Definitions) == 0 {
		return 0
	}
	return float64(t.UnlockedCount()) / float64(len(Definitions))
}

func definition(title string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Title == title {
			return def, true
		}
	}
	return Definition{}, false
}
