package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/triplejoy/internal/achievements"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("gems_easy", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("gems_easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("Expected 42 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("gems_easy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("gems_hard", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("gems_easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].RunID == "" {
			t.Errorf("scores[%d] has no run ID", i)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}

	hard, err := store.TopScores("gems_hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 || hard[0].Score != 500 {
		t.Errorf("Expected one hard score of 500, got %+v", hard)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "gems_medium", Score: 90, Reason: "timeout", RunID: "run-1"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Same run saved again is ignored
	again, err := store.SaveRun(Run{GameID: "gems_medium", Score: 999, Reason: "timeout", RunID: "run-1"})
	if err != nil {
		t.Fatalf("second SaveRun() failed: %v", err)
	}
	if again != id {
		t.Errorf("Expected duplicate run to return ID %d, got %d", id, again)
	}

	all, err := store.AllScores("gems_medium")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(all))
	}
	if all[0].Score != 90 || all[0].Reason != "timeout" || all[0].RunID != "run-1" {
		t.Errorf("Unexpected entry: %+v", all[0])
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("gems_easy", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10}, // default
		{-1, 10},
		{50, 20},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("gems_easy", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) returned %d scores, want %d", tt.limit, len(scores), tt.want)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("gems_easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	store.SaveScore("gems_easy", 30)
	store.SaveScore("gems_easy", 120)
	store.SaveScore("gems_easy", 60)

	high, err = store.HighScore("gems_easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("Expected high score 120, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("gems_easy", 100)
	store.SaveScore("gems_hard", 200)

	if err := store.ClearScores("gems_easy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	easy, _ := store.TopScores("gems_easy", 10)
	if len(easy) != 0 {
		t.Errorf("Expected no easy scores after clear, got %d", len(easy))
	}
	hard, _ := store.TopScores("gems_hard", 10)
	if len(hard) != 1 {
		t.Errorf("Expected hard scores to survive, got %d", len(hard))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "gems_easy", Score: 100, Reason: "no-moves"})
	store.SaveRun(Run{GameID: "gems_easy", Score: 50, Reason: "timeout"})
	store.SaveRun(Run{GameID: "gems_hard", Score: 300, Reason: "timeout"})

	stats, err := store.GetGameStats("gems_easy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 100 {
		t.Errorf("HighScore = %d, want 100", stats.HighScore)
	}
	if stats.AvgScore != 75 {
		t.Errorf("AvgScore = %v, want 75", stats.AvgScore)
	}
	if stats.TotalScore != 150 {
		t.Errorf("TotalScore = %d, want 150", stats.TotalScore)
	}
	if stats.Completed != 1 {
		t.Errorf("Completed = %d, want 1", stats.Completed)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("gems_medium")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["gems_hard"].HighScore != 300 {
		t.Errorf("gems_hard high score = %d, want 300", all["gems_hard"].HighScore)
	}
}

func TestStoreProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if empty.TotalScore != 0 || len(empty.Records) != 0 {
		t.Errorf("Expected empty progress, got %+v", empty)
	}

	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	p := achievements.Progress{
		TotalScore:      1200,
		LevelsCompleted: 3,
		Records: map[string]achievements.Record{
			achievements.FirstSteps:   {Current: 3, Unlocked: true, UnlockedAt: at},
			achievements.GemCollector: {Current: 57},
		},
	}
	if err := store.SaveProgress("alice", p); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got.TotalScore != 1200 || got.LevelsCompleted != 3 {
		t.Errorf("Totals = %d/%d, want 1200/3", got.TotalScore, got.LevelsCompleted)
	}
	first := got.Records[achievements.FirstSteps]
	if !first.Unlocked || first.Current != 3 || !first.UnlockedAt.Equal(at) {
		t.Errorf("First Steps record = %+v", first)
	}
	gems := got.Records[achievements.GemCollector]
	if gems.Unlocked || gems.Current != 57 || !gems.UnlockedAt.IsZero() {
		t.Errorf("Gem Collector record = %+v", gems)
	}

	// Saving again updates in place
	p.TotalScore = 1500
	p.Records[achievements.GemCollector] = achievements.Record{Current: 100, Unlocked: true, UnlockedAt: at}
	if err := store.SaveProgress("alice", p); err != nil {
		t.Fatalf("SaveProgress() update failed: %v", err)
	}
	got, _ = store.LoadProgress("alice")
	if got.TotalScore != 1500 || !got.Records[achievements.GemCollector].Unlocked {
		t.Errorf("Update not applied: %+v", got)
	}

	// Other players are untouched
	bob, _ := store.LoadProgress("bob")
	if bob.TotalScore != 0 || len(bob.Records) != 0 {
		t.Errorf("Expected bob to have no progress, got %+v", bob)
	}

	players, err := store.Players()
	if err != nil {
		t.Fatalf("Players() failed: %v", err)
	}
	if len(players) != 1 || players[0] != "alice" {
		t.Errorf("Players() = %v, want [alice]", players)
	}
}

func TestStoreResetProgress(t *testing.T) {
	store := openTestStore(t)

	store.SaveProgress("alice", achievements.Progress{
		TotalScore: 10,
		Records:    map[string]achievements.Record{achievements.FirstSteps: {Current: 1, Unlocked: true}},
	})

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	got, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got.TotalScore != 0 || len(got.Records) != 0 {
		t.Errorf("Expected reset progress, got %+v", got)
	}
}

func TestStoreWithTracker(t *testing.T) {
	store := openTestStore(t)

	tr, err := achievements.NewTracker("alice", achievements.WithStore(store))
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	if err := tr.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	again, err := achievements.NewTracker("alice", achievements.WithStore(store))
	if err != nil {
		t.Fatalf("second NewTracker() failed: %v", err)
	}
	if again.TotalCount() != len(achievements.Definitions) {
		t.Errorf("TotalCount() = %d, want %d", again.TotalCount(), len(achievements.Definitions))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.triplejoy/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".triplejoy", "test.db")); err != nil {
		t.Errorf("Expected database under home: %v", err)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite string", "2026-01-02 03:04:05", want},
		{"rfc3339", "2026-01-02T03:04:05Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTime(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
