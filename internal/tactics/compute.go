package tactics

import (
	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

// ComputeBehavior derives a soldier's current behavior from its order and
// live battlefield state (visible opponents, under-fire level), mirroring
// the exhaustive Order-kind switch in soldier_behavior (behavior/mod.rs).
func ComputeBehavior(b *battle.BattleState, cfg config.Config, m geo.Map, s *model.Soldier) model.Behavior {
	switch s.Order.Kind {
	case model.OrderIdle:
		return idleBehavior(b, cfg, m, s)
	case model.OrderMoveTo:
		return moveBehavior(b, cfg, m, s, s.Order.Paths)
	case model.OrderMoveFastTo:
		return moveFastBehavior(b, cfg, s, s.Order.Paths)
	case model.OrderSneakTo:
		return model.SneakToBehavior(s.Order.Paths)
	case model.OrderDefend:
		return model.DefendBehavior(s.Order.Angle)
	case model.OrderHide:
		return model.HideBehavior(s.Order.Angle)
	case model.OrderEngageSquad:
		return engageBehavior(b, cfg, m, s, s.Order.Squad)
	case model.OrderSuppressFire:
		return model.SuppressFireBehavior(s.Order.Point)
	default:
		return s.Behavior
	}
}

func idleBehavior(b *battle.BattleState, cfg config.Config, m geo.Map, s *model.Soldier) model.Behavior {
	if opp, ok := GetSoldierOpponent(b, cfg, m, s, nil); ok {
		return model.EngageSoldierBehavior(opp.ID)
	}
	if s.UnderFire.Exist() {
		return model.HideBehavior(s.Facing)
	}
	return model.IdleBehavior(model.Body{Angle: s.Facing})
}

// moveBehavior resolves a MoveTo order, checking (in order) for a visible
// opponent to engage, whether the soldier is driving a vehicle, and
// whether it's taking enough fire to warrant sneaking, before falling back
// to a plain MoveTo (spec 4.E's MoveTo resolution table).
func moveBehavior(b *battle.BattleState, cfg config.Config, m geo.Map, s *model.Soldier, path model.WorldPath) model.Behavior {
	if opp, ok := GetSoldierOpponent(b, cfg, m, s, nil); ok {
		return model.EngageSoldierBehavior(opp.ID)
	}
	if b.SoldierBehaviorMode(s.ID) == model.BehaviorModeVehicle {
		return model.DriveToBehavior(path)
	}
	if s.UnderFire.AtLeast(cfg.UnderFireWarning) {
		return model.SneakToBehavior(path)
	}
	return model.MoveToBehavior(path)
}

func moveFastBehavior(b *battle.BattleState, cfg config.Config, s *model.Soldier, path model.WorldPath) model.Behavior {
	if b.SoldierBehaviorMode(s.ID) == model.BehaviorModeVehicle {
		return model.DriveToBehavior(path)
	}
	if s.UnderFire.AtLeast(cfg.UnderFireDanger) {
		return model.SneakToBehavior(path)
	}
	return model.MoveFastToBehavior(path)
}

func engageBehavior(b *battle.BattleState, cfg config.Config, m geo.Map, s *model.Soldier, squad model.SquadID) model.Behavior {
	if opp, ok := GetSoldierOpponent(b, cfg, m, s, &squad); ok {
		return model.EngageSoldierBehavior(opp.ID)
	}
	return model.IdleBehavior(model.Body{Angle: s.Facing})
}
