package tactics

import (
	"math"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/model"
)

// MovementUpdate advances a soldier one tick along its current behavior's
// path, a direct port of runner/movement.rs's movement_updates: step
// toward the next waypoint at the behavior's configured velocity; if the
// waypoint is reached and it's the path's last point, finish the
// behavior (chaining to the order's `then` continuation if any, else
// resetting to Idle); if reached but not last, advance past it; otherwise
// move closer.
func MovementUpdate(b *battle.BattleState, cfg config.Config, s *model.Soldier) []battle.BattleStateMessage {
	if !s.Behavior.IsMovement() {
		return nil
	}
	next, ok := s.Behavior.Paths.PeekNext()
	if !ok {
		return nil
	}

	velocity, ok := cfg.Velocity(s.Behavior.Kind)
	if !ok {
		return nil
	}

	toNext := next.Sub(s.Position)
	dist := toNext.Length()

	if dist <= velocity || math.IsNaN(dist) {
		if s.Behavior.Paths.IsLast() {
			return finishBehavior(s)
		}
		return []battle.BattleStateMessage{
			battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierReachBehaviorStep}),
		}
	}

	step := toNext.Normalized().Scale(velocity)
	newPoint := s.Position.Add(step)
	return []battle.BattleStateMessage{
		battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierSetWorldPosition, Point: newPoint}),
	}
}

// finishBehavior resolves the soldier's next state once its last waypoint
// is reached: chain to the order's `then` continuation, or reset to Idle.
func finishBehavior(s *model.Soldier) []battle.BattleStateMessage {
	var newBehavior model.Behavior
	var newOrder model.Order
	if s.Order.Then != nil {
		newOrder = *s.Order.Then
		newBehavior = model.FromOrder(newOrder, model.Body{Angle: s.Facing})
	} else {
		newOrder = model.IdleOrder()
		newBehavior = model.IdleBehavior(model.Body{Angle: s.Facing})
	}
	return []battle.BattleStateMessage{
		battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierSetBehavior, Behavior: newBehavior}),
		battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: newOrder}),
	}
}
