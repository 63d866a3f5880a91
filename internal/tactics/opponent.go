// Package tactics implements spec component E: translating a soldier's
// Order into its current Behavior each tick, propagating a squad leader's
// behavior down to subordinates as fresh orders, and applying movement
// behaviors to soldier position. Grounded throughout on
// battle_server/src/runner/behavior/mod.rs (soldier_behavior,
// propagate_behavior, and the per-order *_behavior functions) and
// runner/movement.rs (movement_updates).
package tactics

import (
	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/visibility"
)

// GetSoldierOpponent returns the nearest living, visible opposite-side
// soldier, optionally restricted to one squad (used by EngageSquad
// orders). Grounded on the teacher's nearest-threat scan in soldier.go,
// generalized to use internal/visibility's graded opacity test instead of
// a flat sight radius.
func GetSoldierOpponent(b *battle.BattleState, cfg config.Config, m geo.Map, soldier *model.Soldier, squad *model.SquadID) (*model.Soldier, bool) {
	var best *model.Soldier
	bestDist := 0.0

	for _, opp := range b.OpponentsOf(soldier) {
		if squad != nil && opp.Squad != *squad {
			continue
		}
		if !visibility.Visible(m, soldier.Position, opp.Position, cfg.VisibilityStepWorld, cfg.VisibilityDecay, cfg.VisibilityThreshold) {
			continue
		}
		d := model.Distance(soldier.Position, opp.Position)
		if best == nil || d < bestDist {
			best, bestDist = opp, d
		}
	}
	return best, best != nil
}
