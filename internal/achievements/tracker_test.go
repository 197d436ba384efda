package achievements

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/triplejoy/internal/match3"
)

type memStore struct {
	data    map[string]Progress
	saves   int
	resets  int
	failing bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]Progress)}
}

func (m *memStore) LoadProgress(player string) (Progress, error) {
	if m.failing {
		return Progress{}, errors.New("boom")
	}
	p := m.data[player]
	records := make(map[string]Record, len(p.Records))
	for k, v := range p.Records {
		records[k] = v
	}
	p.Records = records
	return p, nil
}

func (m *memStore) SaveProgress(player string, p Progress) error {
	if m.failing {
		return errors.New("boom")
	}
	m.saves++
	m.data[player] = p
	return nil
}

func (m *memStore) ResetProgress(player string) error {
	m.resets++
	delete(m.data, player)
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, store Store) *Tracker {
	t.Helper()
	opts := []Option{
		WithLogger(log.New(io.Discard)),
		WithClock(func() time.Time { return fixedNow }),
	}
	if store != nil {
		opts = append(opts, WithStore(store))
	}
	tr, err := NewTracker("alice", opts...)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

// completeLevel feeds the events of a session that ends with no moves left.
func completeLevel(tr *Tracker, score, elapsed, pauses int) {
	tr.Observe(match3.LevelComplete{Level: 1, Score: score, Elapsed: elapsed, Pauses: pauses})
	tr.Observe(match3.GameOver{Reason: match3.EndNoMoves, Score: score, Elapsed: elapsed})
}

func find(t *testing.T, tr *Tracker, title string) Achievement {
	t.Helper()
	for _, a := range tr.Achievements() {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("achievement %q not found", title)
	return Achievement{}
}

func TestDefinitions(t *testing.T) {
	if len(Definitions) != 8 {
		t.Fatalf("len(Definitions) = %d, want 8", len(Definitions))
	}

	seen := make(map[string]bool)
	for _, def := range Definitions {
		if seen[def.Title] {
			t.Errorf("duplicate title %q", def.Title)
		}
		seen[def.Title] = true
		if def.Target < 1 {
			t.Errorf("%s: target %d", def.Title, def.Target)
		}
	}
}

func TestFirstLevel(t *testing.T) {
	tr := newTestTracker(t, nil)

	completeLevel(tr, 120, 90, 1)

	if tr.LevelsCompleted() != 1 {
		t.Errorf("LevelsCompleted() = %d, want 1", tr.LevelsCompleted())
	}
	if tr.TotalScore() != 120 {
		t.Errorf("TotalScore() = %d, want 120", tr.TotalScore())
	}

	a := find(t, tr, FirstSteps)
	if !a.Unlocked || !a.UnlockedAt.Equal(fixedNow) {
		t.Errorf("First Steps = %+v, want unlocked at %v", a.Record, fixedNow)
	}
	if find(t, tr, SpeedDemon).Unlocked {
		t.Error("Speed Demon should need a level within 60 seconds")
	}
	if find(t, tr, Perfectionist).Current != 0 {
		t.Error("a paused level should not count for Perfectionist")
	}

	drained := tr.Drain()
	if len(drained) != 1 || drained[0].Title != FirstSteps {
		t.Errorf("Drain() = %v, want [First Steps]", drained)
	}
	if len(tr.Drain()) != 0 {
		t.Error("second Drain() should be empty")
	}
}

func TestSpeedDemonBoundary(t *testing.T) {
	tests := []struct {
		elapsed int
		want    bool
	}{
		{SpeedDemonMaxSeconds - 1, true},
		{SpeedDemonMaxSeconds, true},
		{SpeedDemonMaxSeconds + 1, false},
	}
	for _, tt := range tests {
		tr := newTestTracker(t, nil)
		completeLevel(tr, 30, tt.elapsed, 1)
		if got := find(t, tr, SpeedDemon).Unlocked; got != tt.want {
			t.Errorf("elapsed %d: Speed Demon unlocked = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestTimeoutIsNotALevel(t *testing.T) {
	tr := newTestTracker(t, nil)

	tr.Observe(match3.GameOver{Reason: match3.EndTimeout, Score: 300, Elapsed: 120})

	if tr.LevelsCompleted() != 0 {
		t.Errorf("LevelsCompleted() = %d, want 0", tr.LevelsCompleted())
	}
	if tr.TotalScore() != 300 {
		t.Errorf("TotalScore() = %d, want 300", tr.TotalScore())
	}
	if find(t, tr, FirstSteps).Unlocked {
		t.Error("a timed-out session should not unlock First Steps")
	}
}

func TestCounterAchievements(t *testing.T) {
	tr := newTestTracker(t, nil)

	completeLevel(tr, 600, 45, 0)

	for _, title := range []string{SpeedDemon, HighScorer} {
		if !find(t, tr, title).Unlocked {
			t.Errorf("%s should be unlocked", title)
		}
	}

	p := find(t, tr, Perfectionist)
	if p.Unlocked || p.Current != 1 {
		t.Errorf("Perfectionist = %+v, want 1/5 locked", p.Record)
	}
	if got := p.Fraction(); got != 0.2 {
		t.Errorf("Fraction() = %v, want 0.2", got)
	}

	for range 4 {
		completeLevel(tr, 10, 100, 0)
	}
	if !find(t, tr, Perfectionist).Unlocked {
		t.Error("Perfectionist should unlock after 5 unpaused levels")
	}
}

func TestGemCollector(t *testing.T) {
	tr := newTestTracker(t, nil)

	step := match3.Matched{Positions: make([]match3.Position, 3)}
	for range 33 {
		tr.Observe(step)
	}
	if find(t, tr, GemCollector).Unlocked {
		t.Fatal("99 gems should not unlock Gem Collector")
	}

	tr.Observe(step)
	a := find(t, tr, GemCollector)
	if !a.Unlocked || a.Current != 102 {
		t.Errorf("Gem Collector = %+v, want unlocked at 102", a.Record)
	}
}

func TestTotals(t *testing.T) {
	tr := newTestTracker(t, nil)

	for range 10 {
		completeLevel(tr, 100, 100, 1)
	}

	for _, title := range []string{FirstSteps, ScoreMaster, LevelHunter} {
		if !find(t, tr, title).Unlocked {
			t.Errorf("%s should be unlocked", title)
		}
	}
	d := find(t, tr, DedicatedPlayer)
	if d.Unlocked || d.Current != 10 {
		t.Errorf("Dedicated Player = %+v, want 10/25 locked", d.Record)
	}

	if tr.UnlockedCount() != 3 {
		t.Errorf("UnlockedCount() = %d, want 3", tr.UnlockedCount())
	}
	if got := tr.Completion(); got != 3.0/8.0 {
		t.Errorf("Completion() = %v, want 0.375", got)
	}
}

func TestUnlockOnlyOnce(t *testing.T) {
	tr := newTestTracker(t, nil)

	completeLevel(tr, 10, 100, 1)
	tr.Drain()
	completeLevel(tr, 10, 100, 1)

	for _, a := range tr.Drain() {
		if a.Title == FirstSteps {
			t.Error("First Steps unlocked twice")
		}
	}
}

func TestPersistence(t *testing.T) {
	store := newMemStore()
	tr := newTestTracker(t, store)

	completeLevel(tr, 250, 30, 0)
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1 per finished session", store.saves)
	}

	again := newTestTracker(t, store)
	if again.TotalScore() != 250 || again.LevelsCompleted() != 1 {
		t.Errorf("reloaded totals = %d/%d, want 250/1", again.TotalScore(), again.LevelsCompleted())
	}
	if !find(t, again, SpeedDemon).Unlocked {
		t.Error("reloaded tracker lost Speed Demon")
	}
}

func TestResetAll(t *testing.T) {
	store := newMemStore()
	tr := newTestTracker(t, store)
	completeLevel(tr, 700, 30, 0)

	if err := tr.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	if tr.TotalScore() != 0 || tr.LevelsCompleted() != 0 || tr.UnlockedCount() != 0 {
		t.Error("ResetAll should clear totals and achievements")
	}
	if store.resets != 1 {
		t.Errorf("resets = %d, want 1", store.resets)
	}
	if _, ok := store.data["alice"]; ok {
		t.Error("store still holds progress")
	}
}

func TestLoadFailure(t *testing.T) {
	store := newMemStore()
	store.failing = true

	_, err := NewTracker("bob", WithStore(store), WithLogger(log.New(io.Discard)))
	if err == nil {
		t.Error("NewTracker should report a failing store")
	}
}

func TestSaveFailureDoesNotStopTracking(t *testing.T) {
	store := newMemStore()
	tr := newTestTracker(t, store)
	store.failing = true

	completeLevel(tr, 50, 100, 1)

	if tr.LevelsCompleted() != 1 {
		t.Error("progress should be kept in memory when saving fails")
	}
	if err := tr.Save(); err == nil {
		t.Error("Save should report the store error")
	}
}
