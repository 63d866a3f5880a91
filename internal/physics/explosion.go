// Package physics implements spec component F: the explosion blast
// probability cascade and bullet fire/damage resolution. Grounded on
// runner/physics/explosion.rs (tick_explosions, explosion_effects) and the
// teacher's combat.go range/damage-falloff functions. All randomness is
// taken through an injected *rand.Rand so tests get deterministic rolls —
// the source's rand::thread_rng() calls are exactly what this replaces.
package physics

import (
	"math/rand"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/model"
)

// TickExplosions evaluates every explosion effective at frame and returns
// the BattleStateMessages its blast produces, a direct port of
// tick_explosions/explosion_effects.
func TickExplosions(b *battle.BattleState, cfg config.Config, frame int, rng *rand.Rand) []battle.BattleStateMessage {
	var messages []battle.BattleStateMessage
	for _, explosion := range b.Explosions() {
		if explosion.Effective(frame) {
			messages = append(messages, explosionEffects(b, cfg, explosion, rng)...)
		}
	}
	return messages
}

func explosionEffects(b *battle.BattleState, cfg config.Config, explosion model.Explosion, rng *rand.Rand) []battle.BattleStateMessage {
	var messages []battle.BattleStateMessage
	radii, ok := cfg.ExplosiveRadii[explosion.Kind]
	if !ok {
		return nil
	}

	for _, s := range b.Soldiers() {
		if !s.IsAlive() {
			continue
		}
		if _, inVehicle := b.VehiclePlaceOf(s.ID); inVehicle {
			continue
		}

		dist := model.Distance(s.Position, explosion.Center)

		switch {
		case dist < radii.DirectDeath:
			messages = append(messages, killingBlast(s))

		case dist <= radii.RegressiveDeath || dist <= radii.RegressiveInjured:
			percent := 1.0 - dist/radii.RegressiveDeath
			if rng.Float64() <= percent {
				messages = append(messages, killingBlast(s))
				continue
			}
			percent = 1.0 - dist/radii.RegressiveInjured
			if rng.Float64() <= percent {
				messages = append(messages, stunningBlast(s))
			} else {
				messages = append(messages, proximityBlast(s, dist, cfg))
			}

		case dist < 100:
			messages = append(messages, proximityBlast(s, dist, cfg))
		}
	}

	for _, v := range b.Vehicles() {
		if v.ChassisShape.Contains(explosion.Center) {
			// Vehicle occupants take the vehicle's own damage resolution;
			// spec 4.F scopes per-soldier vehicle damage as a non-goal for
			// this pass (no vehicle chassis HP model is specified), so the
			// impact itself is recorded only as an under-fire spike for
			// every occupant.
			for _, pl := range v.Places {
				if !pl.Occupied {
					continue
				}
				messages = append(messages, battle.Soldier(pl.Occupant, battle.SoldierMessage{
					Kind: battle.SoldierAddUnderFire, Amount: cfg.UnderFireBlastGain, Max: cfg.UnderFireMax,
				}))
			}
		}
	}

	return messages
}

func killingBlast(s *model.Soldier) battle.BattleStateMessage {
	return battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierApplyDamage, Amount: s.Health + 1})
}

func stunningBlast(s *model.Soldier) battle.BattleStateMessage {
	return battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierSetStatus, Status: model.StatusUnconscious})
}

func proximityBlast(s *model.Soldier, dist float64, cfg config.Config) battle.BattleStateMessage {
	_ = dist
	return battle.Soldier(s.ID, battle.SoldierMessage{Kind: battle.SoldierAddUnderFire, Amount: cfg.UnderFireBlastGain, Max: cfg.UnderFireMax})
}
