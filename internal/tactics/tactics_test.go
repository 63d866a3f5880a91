package tactics

import (
	"testing"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

func newBattleWithOneSoldier(order model.Order) (*battle.BattleState, *model.Soldier) {
	b := battle.New()
	s := &model.Soldier{ID: 1, Side: model.SideBlue, Squad: 1, Status: model.StatusAlive, Health: 100, Order: order, Behavior: model.IdleBehavior(model.Body{})}
	b.AddSoldier(s)
	b.AddSquad(model.NewSquad(1, model.SideBlue, []model.SoldierID{1}))
	return b, s
}

func TestComputeBehaviorIdleWithNoThreat(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	b, s := newBattleWithOneSoldier(model.IdleOrder())
	got := ComputeBehavior(b, cfg, m, s)
	if got.Kind != model.BehaviorIdle {
		t.Fatalf("behavior = %v, want Idle", got.Kind)
	}
}

func TestComputeBehaviorIdleGoesHideUnderFire(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	b, s := newBattleWithOneSoldier(model.IdleOrder())
	s.UnderFire.Add(5, 100)
	got := ComputeBehavior(b, cfg, m, s)
	if got.Kind != model.BehaviorHide {
		t.Fatalf("behavior = %v, want Hide", got.Kind)
	}
}

func TestComputeBehaviorMoveSwitchesToSneakUnderFire(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	path := model.NewWorldPath([]model.WorldPoint{{X: 100, Y: 0}})
	b, s := newBattleWithOneSoldier(model.MoveToOrder(path))
	s.UnderFire.Add(cfg.UnderFireWarning, cfg.UnderFireMax)
	got := ComputeBehavior(b, cfg, m, s)
	if got.Kind != model.BehaviorSneakTo {
		t.Fatalf("behavior = %v, want SneakTo", got.Kind)
	}
}

func TestMovementUpdateStepsTowardWaypoint(t *testing.T) {
	cfg := config.Default()
	b, s := newBattleWithOneSoldier(model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 100, Y: 0}})))
	s.Behavior = model.MoveToBehavior(model.NewWorldPath([]model.WorldPoint{{X: 100, Y: 0}}))
	msgs := MovementUpdate(b, cfg, s)
	if len(msgs) != 1 || msgs[0].Soldier.Kind != battle.SoldierSetWorldPosition {
		t.Fatalf("expected a single SetWorldPosition message, got %+v", msgs)
	}
	if msgs[0].Soldier.Point.X <= 0 || msgs[0].Soldier.Point.X >= 100 {
		t.Fatalf("expected partial step, got %v", msgs[0].Soldier.Point)
	}
}

func TestMovementUpdateFinishesAndResetsToIdle(t *testing.T) {
	cfg := config.Default()
	b, s := newBattleWithOneSoldier(model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 1, Y: 0}})))
	s.Behavior = model.MoveToBehavior(model.NewWorldPath([]model.WorldPoint{{X: 1, Y: 0}}))
	msgs := MovementUpdate(b, cfg, s)
	if len(msgs) != 2 {
		t.Fatalf("expected SetBehavior+SetOrder on finish, got %d messages", len(msgs))
	}
	if msgs[0].Soldier.Behavior.Kind != model.BehaviorIdle {
		t.Fatalf("behavior = %v, want Idle", msgs[0].Soldier.Behavior.Kind)
	}
	if msgs[1].Soldier.Order.Kind != model.OrderIdle {
		t.Fatalf("order = %v, want Idle", msgs[1].Soldier.Order.Kind)
	}
}

func TestMovementUpdateChainsThenOrder(t *testing.T) {
	cfg := config.Default()
	then := model.DefendOrder(0)
	order := model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 1, Y: 0}})).WithThen(then)
	b, s := newBattleWithOneSoldier(order)
	s.Behavior = model.MoveToBehavior(model.NewWorldPath([]model.WorldPoint{{X: 1, Y: 0}}))
	msgs := MovementUpdate(b, cfg, s)
	if msgs[0].Soldier.Behavior.Kind != model.BehaviorDefend {
		t.Fatalf("behavior = %v, want Defend (chained)", msgs[0].Soldier.Behavior.Kind)
	}
	if msgs[1].Soldier.Order.Kind != model.OrderDefend {
		t.Fatalf("order = %v, want Defend (chained)", msgs[1].Soldier.Order.Kind)
	}
}

func TestComputeBehaviorMoveSwitchesToDriveToWhenDriving(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	path := model.NewWorldPath([]model.WorldPoint{{X: 100, Y: 0}})
	b, s := newBattleWithOneSoldier(model.MoveToOrder(path))

	v := &model.Vehicle{ID: 1, Side: model.SideBlue, Places: []model.Place{{Kind: model.PlaceDriver, Occupant: s.ID, Occupied: true}}}
	b.AddVehicle(v)

	got := ComputeBehavior(b, cfg, m, s)
	if got.Kind != model.BehaviorDriveTo {
		t.Fatalf("behavior = %v, want DriveTo", got.Kind)
	}
}

func TestComputeBehaviorMoveStaysOnFootForNonDriverOccupant(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	path := model.NewWorldPath([]model.WorldPoint{{X: 100, Y: 0}})
	b, s := newBattleWithOneSoldier(model.MoveToOrder(path))

	v := &model.Vehicle{ID: 1, Side: model.SideBlue, Places: []model.Place{{Kind: model.PlaceGunner, Occupant: s.ID, Occupied: true}}}
	b.AddVehicle(v)

	got := ComputeBehavior(b, cfg, m, s)
	if got.Kind != model.BehaviorMoveTo {
		t.Fatalf("behavior = %v, want MoveTo (gunner seat isn't the driver)", got.Kind)
	}
}

func TestResolvePropagatesMoveOrderToSubordinate(t *testing.T) {
	cfg := config.Default()
	m := geo.NewGrid(40, 40, 16, geo.TileShortGrass)
	b := battle.New()
	leader := &model.Soldier{ID: 1, Side: model.SideBlue, Squad: 1, Status: model.StatusAlive, Health: 100}
	sub := &model.Soldier{ID: 2, Side: model.SideBlue, Squad: 1, Status: model.StatusAlive, Health: 100, Position: model.WorldPoint{X: 8, Y: 8}}
	b.AddSoldier(leader)
	b.AddSoldier(sub)
	b.AddSquad(model.NewSquad(1, model.SideBlue, []model.SoldierID{1, 2}))

	dest := model.WorldPoint{X: 300, Y: 8}
	leader.Order = model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{dest}))

	msgs := Resolve(b, cfg, m, leader)
	foundSubOrder := false
	for _, msg := range msgs {
		if msg.SoldierID == 2 && msg.Soldier.Kind == battle.SoldierSetOrder {
			foundSubOrder = true
		}
	}
	if !foundSubOrder {
		t.Fatalf("expected a propagated order for subordinate, got %+v", msgs)
	}
}
