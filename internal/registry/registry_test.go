package registry

import (
	"testing"

	"github.com/vovakirdan/triplejoy/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

type rankedStub struct {
	stubGame
	rank int
}

func (g rankedStub) Rank() int { return g.rank }

// indexOf returns the position of id in List, or -1.
func indexOf(id string) int {
	for i, info := range List() {
		if info.ID == id {
			return i
		}
	}
	return -1
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q, want stub_b", g.ID())
	}

	info, ok := Lookup("stub_a")
	if !ok || info.Title != "Stub stub_a" || info.Rank != 0 {
		t.Errorf("Lookup(stub_a) = %+v, %v", info, ok)
	}

	if a, b := indexOf("stub_a"), indexOf("stub_b"); a < 0 || b < 0 || a > b {
		t.Errorf("List() positions a=%d b=%d, want a before b", a, b)
	}
}

func TestListOrdersByRank(t *testing.T) {
	Register("ranked_z", func() Game { return rankedStub{stubGame{"ranked_z"}, -2} })
	Register("ranked_y", func() Game { return rankedStub{stubGame{"ranked_y"}, -1} })
	Register("ranked_x", func() Game { return rankedStub{stubGame{"ranked_x"}, 0} })

	z, y, x := indexOf("ranked_z"), indexOf("ranked_y"), indexOf("ranked_x")
	if !(z < y && y < x) {
		t.Errorf("positions z=%d y=%d x=%d, want rank order", z, y, x)
	}

	info, _ := Lookup("ranked_z")
	if info.Rank != -2 {
		t.Errorf("Rank = %d, want -2", info.Rank)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create of an unknown ID should fail")
	}
	if _, ok := Lookup("no_such_game"); ok {
		t.Error("Lookup of an unknown ID should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })
}
