package tactics

import (
	"math"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/pathfind"
)

// Resolve computes a soldier's new behavior and returns the
// BattleStateMessages needed to apply it — both the soldier's own
// SetBehavior and, if the soldier leads its squad, any subordinate orders
// its behavior propagates. Mirrors soldier_behavior's full control flow
// (behavior/mod.rs), including its two propagation checks: Regularly
// propagation fires every tick regardless of whether the behavior changed;
// OnChange propagation fires only on an actual transition.
func Resolve(b *battle.BattleState, cfg config.Config, m geo.Map, s *model.Soldier) []battle.BattleStateMessage {
	var messages []battle.BattleStateMessage

	newBehavior := ComputeBehavior(b, cfg, m, s)
	isLeader := b.IsSquadLeader(s.ID)

	if isLeader && newBehavior.Propagation() == model.PropagationRegularly {
		messages = append(messages, PropagateBehavior(b, cfg, m, s, newBehavior)...)
	}

	if !newBehavior.Equal(s.Behavior) {
		if isLeader && newBehavior.Propagation() == model.PropagationOnChange {
			messages = append(messages, PropagateBehavior(b, cfg, m, s, newBehavior)...)
		}
		messages = append(messages, battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierSetBehavior, Behavior: newBehavior}))
	}

	return messages
}

// PropagateBehavior computes the fresh orders a squad leader's behavior
// pushes down to its subordinates, suppressing any order that equals the
// subordinate's current one (spec 4.E). Mirrors propagate_behavior's
// per-BehaviorKind dispatch.
func PropagateBehavior(b *battle.BattleState, cfg config.Config, m geo.Map, leader *model.Soldier, behavior model.Behavior) []battle.BattleStateMessage {
	sq, ok := b.Squad(leader.Squad)
	if !ok {
		return nil
	}

	var orders map[model.SoldierID]model.Order
	switch behavior.Kind {
	case model.BehaviorMoveTo, model.BehaviorMoveFastTo, model.BehaviorSneakTo, model.BehaviorDriveTo:
		orders = propagateMove(b, m, sq, leader, behavior, cfg.FormationSlotSpacing)
	case model.BehaviorDefend, model.BehaviorHide:
		orders = propagateStationary(sq, behavior)
	case model.BehaviorSuppressFire:
		orders = propagateSuppressFire(sq, behavior)
	case model.BehaviorEngageSoldier:
		orders = propagateEngage(b, sq, behavior)
	default:
		return nil
	}

	var messages []battle.BattleStateMessage
	for id, order := range orders {
		sub, ok := b.Soldier(id)
		if !ok || sub.Order.Equal(order) {
			continue
		}
		messages = append(messages, battle.Soldier(id, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: order}))
	}
	return messages
}

// formationOffsets returns local (forward, right) offsets for each slot in
// a formation of count members (slot 0 is the leader, no offset),
// generalized from the teacher's pixel-space formation.go table to world
// units via config.FormationSlotSpacing.
func formationOffsets(ft model.FormationType, count int, spacing float64) []model.WorldPoint {
	offsets := make([]model.WorldPoint, count)
	if count == 0 {
		return offsets
	}
	switch ft {
	case model.FormationLine:
		for i := 1; i < count; i++ {
			side := float64((i+1)/2) * spacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = model.WorldPoint{X: 0, Y: side}
		}
	case model.FormationWedge:
		for i := 1; i < count; i++ {
			depth := float64((i+1)/2) * spacing
			side := float64((i+1)/2) * spacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = model.WorldPoint{X: -depth, Y: side}
		}
	case model.FormationColumn:
		for i := 1; i < count; i++ {
			offsets[i] = model.WorldPoint{X: -float64(i) * spacing, Y: 0}
		}
	case model.FormationEchelon:
		for i := 1; i < count; i++ {
			offsets[i] = model.WorldPoint{X: -float64(i) * spacing * 0.7, Y: float64(i) * spacing * 0.7}
		}
	}
	return offsets
}

// slotWorld converts a local (forward, right) offset to a world position
// given the leader's position and heading (teacher's SlotWorld,
// formation.go).
func slotWorld(leader model.WorldPoint, heading model.Angle, offset model.WorldPoint) model.WorldPoint {
	fx, fy := math.Cos(float64(heading)), math.Sin(float64(heading))
	rx, ry := -fy, fx
	return model.WorldPoint{
		X: leader.X + fx*offset.X + rx*offset.Y,
		Y: leader.Y + fy*offset.X + ry*offset.Y,
	}
}

func propagateMove(b *battle.BattleState, m geo.Map, sq *model.Squad, leader *model.Soldier, behavior model.Behavior, spacing float64) map[model.SoldierID]model.Order {
	dest, ok := behavior.Paths.PeekNext()
	if !ok {
		dest = leader.Position
	}
	heading := model.HeadingTo(leader.Position, dest)
	mode := pathfind.ModePedestrian
	if behavior.Kind == model.BehaviorDriveTo {
		mode = pathfind.ModeVehicle
	}

	offsets := formationOffsets(sq.Formation, len(sq.Members), spacing)
	orders := make(map[model.SoldierID]model.Order)
	for _, id := range sq.Subordinates() {
		slot := sq.SlotIndex(id)
		if slot < 0 || slot >= len(offsets) {
			continue
		}
		target := slotWorld(dest, heading, offsets[slot])
		path := pathfind.FindPath(m, leader.Position, target, mode)
		if path.Len() == 0 {
			continue
		}
		switch behavior.Kind {
		case model.BehaviorMoveFastTo:
			orders[id] = model.MoveFastToOrder(path)
		case model.BehaviorSneakTo:
			orders[id] = model.SneakToOrder(path)
		default:
			orders[id] = model.MoveToOrder(path)
		}
	}
	return orders
}

func propagateStationary(sq *model.Squad, behavior model.Behavior) map[model.SoldierID]model.Order {
	orders := make(map[model.SoldierID]model.Order)
	for _, id := range sq.Subordinates() {
		if behavior.Kind == model.BehaviorHide {
			orders[id] = model.HideOrder(behavior.Angle)
		} else {
			orders[id] = model.DefendOrder(behavior.Angle)
		}
	}
	return orders
}

func propagateSuppressFire(sq *model.Squad, behavior model.Behavior) map[model.SoldierID]model.Order {
	orders := make(map[model.SoldierID]model.Order)
	for _, id := range sq.Subordinates() {
		orders[id] = model.SuppressFireOrder(behavior.Point)
	}
	return orders
}

func propagateEngage(b *battle.BattleState, sq *model.Squad, behavior model.Behavior) map[model.SoldierID]model.Order {
	target, ok := b.Soldier(behavior.Target)
	if !ok {
		return nil
	}
	orders := make(map[model.SoldierID]model.Order)
	for _, id := range sq.Subordinates() {
		orders[id] = model.EngageSquadOrder(target.Squad)
	}
	return orders
}
