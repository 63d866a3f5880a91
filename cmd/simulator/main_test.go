package main

import (
	"testing"

	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/model"
)

func TestBuildMutualAdvanceScenarioSeedsTwoOpposingSquads(t *testing.T) {
	state := buildMutualAdvanceScenario(config.Default())

	if len(state.Soldiers()) != 12 {
		t.Fatalf("soldier count = %d, want 12", len(state.Soldiers()))
	}

	redLeader, ok := state.Soldier(1)
	if !ok {
		t.Fatalf("expected soldier 1 to exist")
	}
	if redLeader.Order.Kind != model.OrderMoveTo {
		t.Fatalf("red leader order = %v, want MoveTo", redLeader.Order.Kind)
	}

	blueLeader, ok := state.Soldier(7)
	if !ok {
		t.Fatalf("expected soldier 7 to exist")
	}
	if blueLeader.Order.Kind != model.OrderMoveTo {
		t.Fatalf("blue leader order = %v, want MoveTo", blueLeader.Order.Kind)
	}
}

func TestSurvivorCountingSplitsAliveAndTotalBySide(t *testing.T) {
	state := buildMutualAdvanceScenario(config.Default())
	// Kill one red soldier to exercise the alive/total split.
	if s, ok := state.Soldier(2); ok {
		s.Status = model.StatusDead
	}

	redAlive, blueAlive, redTotal, blueTotal := 0, 0, 0, 0
	for _, s := range state.Soldiers() {
		switch s.Side {
		case model.SideRed:
			redTotal++
			if s.IsAlive() {
				redAlive++
			}
		case model.SideBlue:
			blueTotal++
			if s.IsAlive() {
				blueAlive++
			}
		}
	}

	if redTotal != 6 || blueTotal != 6 {
		t.Fatalf("totals = red:%d blue:%d, want 6/6", redTotal, blueTotal)
	}
	if redAlive != 5 {
		t.Fatalf("redAlive = %d, want 5", redAlive)
	}
	if blueAlive != 6 {
		t.Fatalf("blueAlive = %d, want 6", blueAlive)
	}
}
