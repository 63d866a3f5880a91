package runner

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/protocol"
)

func newTestSoldier(id model.SoldierID, squad model.SquadID, side model.Side) *model.Soldier {
	return &model.Soldier{ID: id, Side: side, Squad: squad, Status: model.StatusAlive, Health: 100}
}

func newTestRunner(t *testing.T, state *battle.BattleState) (*Runner, chan []protocol.InputMessage, chan []protocol.OutputMessage) {
	t.Helper()
	grid := geo.NewGrid(20, 20, 16, geo.TileShortGrass)
	input := make(chan []protocol.InputMessage, 4)
	output := make(chan []protocol.OutputMessage, 4)
	r := New(config.Default(), state, grid, rand.New(rand.NewSource(1)), zap.NewNop(), input, output)
	return r, input, output
}

func TestSleepDurationZeroWhenAlreadyLate(t *testing.T) {
	r, _, _ := newTestRunner(t, battle.New())
	r.last = time.Now().Add(-time.Second)
	if got := r.sleepDuration(); got != 0 {
		t.Fatalf("sleepDuration = %v, want 0", got)
	}
}

func TestSleepDurationWaitsRemainderOfCycle(t *testing.T) {
	r, _, _ := newTestRunner(t, battle.New())
	r.last = time.Now()
	got := r.sleepDuration()
	if got <= 0 || got > time.Duration(targetCycleMicros)*time.Microsecond {
		t.Fatalf("sleepDuration = %v, want in (0, %v]", got, time.Duration(targetCycleMicros)*time.Microsecond)
	}
}

func TestDrainInputReturnsClosedError(t *testing.T) {
	r, input, _ := newTestRunner(t, battle.New())
	close(input)
	if _, err := r.drainInput(); err != ErrInputChannelClosed {
		t.Fatalf("err = %v, want ErrInputChannelClosed", err)
	}
}

func TestDrainInputCollectsQueuedBatches(t *testing.T) {
	r, input, _ := newTestRunner(t, battle.New())
	input <- []protocol.InputMessage{protocol.RequireCompleteSync()}
	input <- []protocol.InputMessage{protocol.RequireCompleteSync()}
	got, err := r.drainInput()
	if err != nil {
		t.Fatalf("drainInput: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("drained %d messages, want 2", len(got))
	}
}

func TestTickAppliesASoldierOrderMessageAndOutputsIt(t *testing.T) {
	state := battle.New()
	s := newTestSoldier(1, 1, model.SideBlue)
	state.AddSoldier(s)
	r, input, output := newTestRunner(t, state)

	order := model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 32, Y: 0}}))
	input <- []protocol.InputMessage{
		protocol.InputBattleStateMessage(battle.Soldier(1, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: order})),
	}

	if err := r.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}

	got, _ := state.Soldier(1)
	if got.Order.Kind != model.OrderMoveTo {
		t.Fatalf("order kind = %v, want MoveTo", got.Order.Kind)
	}

	select {
	case batch := <-output:
		if len(batch) == 0 {
			t.Fatalf("expected a non-empty outbound batch")
		}
	default:
		t.Fatalf("expected an outbound batch to have been sent")
	}
}

func TestTickAnswersRequireCompleteSyncWithLoadFromCopy(t *testing.T) {
	state := battle.New()
	r, input, output := newTestRunner(t, state)
	input <- []protocol.InputMessage{protocol.RequireCompleteSync()}

	if err := r.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}

	batch := <-output
	found := false
	for _, msg := range batch {
		if msg.Kind == protocol.OutputLoadFromCopy {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an OutputLoadFromCopy message in %+v", batch)
	}
}

func TestResolveSoldierToleratesSoldierAbsentFromState(t *testing.T) {
	state := battle.New()
	r, _, _ := newTestRunner(t, state)

	// A soldier with a MoveTo order but no paths set on its behavior can
	// legitimately be computed without panicking; to exercise the recover
	// boundary itself we call resolveSoldier on a soldier absent from the
	// battle state's own bookkeeping, which tactics.Resolve tolerates by
	// simply finding no opponent/squad — this asserts the boundary is safe
	// to call even in a degenerate case, not that it always recovers.
	s := newTestSoldier(99, 0, model.SideRed)
	if out := r.resolveSoldier(s); out == nil {
		// nil is an acceptable "nothing to do" result for an idle soldier.
		return
	}
}

func TestApplySideEffectSquadLeaderChangedDoesNotPanic(t *testing.T) {
	r, _, _ := newTestRunner(t, battle.New())
	r.applySideEffect(battle.SideEffect{Kind: battle.SideEffectSquadLeaderChanged, Squad: 1, Soldier: 2})
	r.applySideEffect(battle.SideEffect{Kind: battle.SideEffectRefreshEntityAnimation, Soldier: 2})
	r.applySideEffect(battle.SideEffect{Kind: battle.SideEffectSoldierFinishedBehavior, Soldier: 2})
}
