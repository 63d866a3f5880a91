package battle

import (
	"math"
	"testing"

	"github.com/tacsim/battlecore/internal/model"
)

func newTestSoldier(id model.SoldierID, squad model.SquadID, side model.Side) *model.Soldier {
	return &model.Soldier{ID: id, Side: side, Squad: squad, Status: model.StatusAlive, Health: 100}
}

func TestReactSetBehaviorAndOrder(t *testing.T) {
	b := New()
	s := newTestSoldier(1, 1, model.SideBlue)
	b.AddSoldier(s)

	path := model.NewWorldPath([]model.WorldPoint{{X: 10, Y: 0}})
	b.React(Soldier(1, SoldierMessage{Kind: SoldierSetOrder, Order: model.MoveToOrder(path)}), 0)
	b.React(Soldier(1, SoldierMessage{Kind: SoldierSetBehavior, Behavior: model.MoveToBehavior(path)}), 0)

	got, _ := b.Soldier(1)
	if got.Order.Kind != model.OrderMoveTo {
		t.Fatalf("order kind = %v, want MoveTo", got.Order.Kind)
	}
	if got.Behavior.Kind != model.BehaviorMoveTo {
		t.Fatalf("behavior kind = %v, want MoveTo", got.Behavior.Kind)
	}
}

func TestReactReachBehaviorStepAdvancesPathWithoutSnappingPosition(t *testing.T) {
	b := New()
	s := newTestSoldier(1, 1, model.SideBlue)
	s.Position = model.WorldPoint{X: 9, Y: 0}
	s.Facing = model.Angle(math.Pi)
	path := model.NewWorldPath([]model.WorldPoint{{X: 10, Y: 0}, {X: 20, Y: 0}})
	s.Behavior = model.MoveToBehavior(path)
	b.AddSoldier(s)

	b.React(Soldier(1, SoldierMessage{Kind: SoldierReachBehaviorStep}), 1)

	got, _ := b.Soldier(1)
	if got.Position != (model.WorldPoint{X: 9, Y: 0}) {
		t.Fatalf("position = %v, want unchanged (9,0)", got.Position)
	}
	if got.Facing != model.Angle(math.Pi) {
		t.Fatalf("facing = %v, want unchanged", got.Facing)
	}
	if got.Behavior.Paths.Len() != 1 {
		t.Fatalf("remaining path len = %d, want 1", got.Behavior.Paths.Len())
	}
}

func TestApplyDamageKillsAndTransfersLeadership(t *testing.T) {
	b := New()
	leader := newTestSoldier(1, 10, model.SideRed)
	sub := newTestSoldier(2, 10, model.SideRed)
	b.AddSoldier(leader)
	b.AddSoldier(sub)
	sq := model.NewSquad(10, model.SideRed, []model.SoldierID{1, 2})
	b.AddSquad(sq)

	effects := b.React(Soldier(1, SoldierMessage{Kind: SoldierApplyDamage, Amount: 1000}), 5)

	got, _ := b.Soldier(1)
	if got.Status != model.StatusDead {
		t.Fatalf("status = %v, want Dead", got.Status)
	}
	if got.Behavior.Kind != model.BehaviorDead {
		t.Fatalf("behavior = %v, want Dead", got.Behavior.Kind)
	}

	newSq, _ := b.Squad(10)
	if newSq.LeaderID != 2 {
		t.Fatalf("leader = %v, want 2 after succession", newSq.LeaderID)
	}

	foundLeaderChange := false
	for _, e := range effects {
		if e.Kind == SideEffectSquadLeaderChanged && e.Soldier == 2 {
			foundLeaderChange = true
		}
	}
	if !foundLeaderChange {
		t.Fatalf("expected SideEffectSquadLeaderChanged, got %+v", effects)
	}
}

func TestApplyDamageNonLethalLeavesSquadIntact(t *testing.T) {
	b := New()
	s := newTestSoldier(1, 10, model.SideBlue)
	b.AddSoldier(s)
	sq := model.NewSquad(10, model.SideBlue, []model.SoldierID{1})
	b.AddSquad(sq)

	effects := b.React(Soldier(1, SoldierMessage{Kind: SoldierApplyDamage, Amount: 10}), 1)
	got, _ := b.Soldier(1)
	if got.Status != model.StatusAlive {
		t.Fatalf("status = %v, want Alive", got.Status)
	}
	if got.Health != 90 {
		t.Fatalf("health = %v, want 90", got.Health)
	}
	if len(effects) != 0 {
		t.Fatalf("expected no side effects for a non-lethal hit, got %+v", effects)
	}
}

func TestCopyRestoreRoundTrip(t *testing.T) {
	b := New()
	b.AddSoldier(newTestSoldier(1, 10, model.SideBlue))
	b.AddSquad(model.NewSquad(10, model.SideBlue, []model.SoldierID{1}))
	b.FrameI = 42
	b.Phase = model.PhaseBattle
	b.React(AddExplosion(model.Explosion{Center: model.WorldPoint{X: 1, Y: 2}, StartTick: 40, EndTick: 50}), 42)
	b.React(AddProjectile(model.Projectile{From: model.WorldPoint{X: 0, Y: 0}, To: model.WorldPoint{X: 10, Y: 0}, StartTick: 42, EndTick: 44}), 42)

	snap := b.Copy()

	restored := New()
	restored.Restore(snap)
	if restored.FrameI != 42 || restored.Phase != model.PhaseBattle {
		t.Fatalf("restored frame/phase mismatch: %d %v", restored.FrameI, restored.Phase)
	}
	if _, ok := restored.Soldier(1); !ok {
		t.Fatalf("expected soldier 1 after restore")
	}
	if len(restored.Explosions()) != 1 {
		t.Fatalf("expected the in-flight explosion to survive the round trip, got %v", restored.Explosions())
	}
	if len(restored.Projectiles()) != 1 {
		t.Fatalf("expected the in-flight projectile to survive the round trip, got %v", restored.Projectiles())
	}
}

func TestReactRemoveExplosionDropsItByID(t *testing.T) {
	b := New()
	b.React(AddExplosion(model.Explosion{Center: model.WorldPoint{X: 1, Y: 1}, StartTick: 0, EndTick: 5}), 0)
	b.React(AddExplosion(model.Explosion{Center: model.WorldPoint{X: 2, Y: 2}, StartTick: 0, EndTick: 5}), 0)
	if len(b.Explosions()) != 2 {
		t.Fatalf("expected 2 explosions before removal, got %d", len(b.Explosions()))
	}

	first := b.Explosions()[0]
	b.React(RemoveExplosion(first.ID), 6)

	if len(b.Explosions()) != 1 {
		t.Fatalf("expected 1 explosion after removal, got %d", len(b.Explosions()))
	}
	if b.Explosions()[0].ID == first.ID {
		t.Fatalf("expected the removed explosion's ID to be gone")
	}
}

func TestReactRemoveProjectileDropsItByID(t *testing.T) {
	b := New()
	b.React(AddProjectile(model.Projectile{StartTick: 0, EndTick: 2}), 0)
	id := b.Projectiles()[0].ID

	b.React(RemoveProjectile(id), 3)

	if len(b.Projectiles()) != 0 {
		t.Fatalf("expected projectile to be removed, got %v", b.Projectiles())
	}
}
