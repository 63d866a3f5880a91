package physics

import (
	"math/rand"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/model"
)

// rangeAccuracy returns the hit chance for a shot at dist meters, given the
// weapon's stats: full BaseAccuracy up to half the max range, then linear
// falloff by RangeFalloffRate per meter beyond that, generalized from the
// teacher's shotRangePenalty (combat.go) close-range-bonus/long-range-
// penalty curve into a single accuracy value rather than a penalty term.
func rangeAccuracy(stats config.WeaponStats, dist float64) float64 {
	near := stats.MaxRangeMeters * 0.5
	if dist <= near {
		return stats.BaseAccuracy
	}
	over := dist - near
	acc := stats.BaseAccuracy - over*stats.RangeFalloffRate
	if acc < 0.02 {
		acc = 0.02
	}
	return acc
}

// FireBullet resolves one shot from attacker to defender: a single
// accuracy roll decides hit or miss, and a hit deals the weapon's
// BaseDamage scaled by a close-range multiplier (no damage roll), grounded
// on combat.go's cqbDamageMul close-range bonus generalized into a
// continuous range-based multiplier. Returns the BattleStateMessages the shot produces — a
// Projectile registration for observer tracer rendering, plus either
// ApplyDamage or an under-fire near-miss bump.
func FireBullet(cfg config.Config, attacker, defender *model.Soldier, weapon model.WeaponKind, frame int, rng *rand.Rand) []battle.BattleStateMessage {
	stats, ok := cfg.WeaponStats[weapon]
	if !ok {
		return nil
	}
	dist := model.Distance(attacker.Position, defender.Position)
	if dist > stats.MaxRangeMeters {
		return nil
	}

	messages := []battle.BattleStateMessage{
		battle.AddProjectile(model.Projectile{
			From: attacker.Position, To: defender.Position, Side: attacker.Side,
			StartTick: frame, EndTick: frame + 2,
		}),
	}

	accuracy := rangeAccuracy(stats, dist)
	if rng.Float64() > accuracy {
		messages = append(messages, battle.Soldier(defender.ID, battle.SoldierMessage{
			Kind: battle.SoldierAddUnderFire, Amount: cfg.UnderFireBlastGain * 0.5, Max: cfg.UnderFireMax,
		}))
		return messages
	}

	damage := stats.BaseDamage * closeRangeDamageMul(stats.MaxRangeMeters, dist)
	messages = append(messages, battle.Soldier(defender.ID, battle.SoldierMessage{
		Kind: battle.SoldierApplyDamage, Amount: damage,
	}))
	return messages
}

// closeRangeDamageMul ramps damage up to 1.8x at point-blank and back to
// 1.0x by a quarter of max range, mirroring cqbDamageMul's smooth fuzzy
// ramp (combat.go).
func closeRangeDamageMul(maxRange, dist float64) float64 {
	cqbRange := maxRange * 0.25
	if dist >= cqbRange {
		return 1.0
	}
	t := 1.0 - dist/cqbRange
	return 1.0 + 0.8*t
}
