package battle

import "github.com/tacsim/battlecore/internal/model"

// SoldierMessageKind is the closed set of fine-grained per-soldier
// mutations, grounded on the SoldierMessage variants referenced by the
// original runner's movement/react code (SetBehavior, SetOrder,
// SetWorldPosition, ReachBehaviorStep) and extended with the
// damage/under-fire/status mutations the spec's combat and physics
// components require.
type SoldierMessageKind int

const (
	SoldierSetBehavior SoldierMessageKind = iota
	SoldierSetOrder
	SoldierSetWorldPosition
	SoldierSetFacing
	SoldierReachBehaviorStep
	SoldierAddUnderFire
	SoldierDecayUnderFire
	SoldierSetHealth
	SoldierApplyDamage
	SoldierSetStatus
)

// SoldierMessage is a closed discriminated union of per-soldier mutations.
type SoldierMessage struct {
	Kind SoldierMessageKind

	Behavior model.Behavior   // SetBehavior
	Order    model.Order      // SetOrder
	Point    model.WorldPoint // SetWorldPosition
	Angle    model.Angle      // SetFacing
	Amount   float64          // AddUnderFire, DecayUnderFire, SetHealth, ApplyDamage
	Max      float64          // AddUnderFire cap
	Status   model.Status     // SetStatus
}

// BattleStateMessageKind is the closed set of BattleState-level mutations.
type BattleStateMessageKind int

const (
	MessageSoldier BattleStateMessageKind = iota
	MessageAddExplosion
	MessageAddProjectile
	MessageRemoveExplosion
	MessageRemoveProjectile
	MessageSetMarker
	MessageRemoveMarker
	MessageSetPhase
)

// BattleStateMessage is the single-entrypoint mutation message React
// consumes, mirroring the source's BattleStateMessage enum (spec 4.D/4.H).
type BattleStateMessage struct {
	Kind BattleStateMessageKind

	SoldierID    model.SoldierID
	Soldier      SoldierMessage
	Explosion    model.Explosion
	Projectile   model.Projectile
	ExplosionID  model.ExplosionID  // RemoveExplosion
	ProjectileID model.ProjectileID // RemoveProjectile
	Marker       model.OrderMarker
	MarkerIndex  model.OrderMarkerIndex
	Phase        model.BattlePhase
}

// Soldier builds a BattleStateMessage targeting one soldier's sub-message.
func Soldier(id model.SoldierID, msg SoldierMessage) BattleStateMessage {
	return BattleStateMessage{Kind: MessageSoldier, SoldierID: id, Soldier: msg}
}

// AddExplosion builds a BattleStateMessage registering a new explosion.
func AddExplosion(e model.Explosion) BattleStateMessage {
	return BattleStateMessage{Kind: MessageAddExplosion, Explosion: e}
}

// AddProjectile builds a BattleStateMessage registering a new projectile.
func AddProjectile(p model.Projectile) BattleStateMessage {
	return BattleStateMessage{Kind: MessageAddProjectile, Projectile: p}
}

// RemoveExplosion builds a BattleStateMessage deleting an expired
// explosion, the garbage-collection half of spec 3's "live until their
// end-tick, then are garbage-collected at tick boundary."
func RemoveExplosion(id model.ExplosionID) BattleStateMessage {
	return BattleStateMessage{Kind: MessageRemoveExplosion, ExplosionID: id}
}

// RemoveProjectile builds a BattleStateMessage deleting an expired
// projectile.
func RemoveProjectile(id model.ProjectileID) BattleStateMessage {
	return BattleStateMessage{Kind: MessageRemoveProjectile, ProjectileID: id}
}

// SetMarker builds a BattleStateMessage upserting an order marker.
func SetMarker(m model.OrderMarker) BattleStateMessage {
	return BattleStateMessage{Kind: MessageSetMarker, Marker: m}
}

// RemoveMarker builds a BattleStateMessage deleting an order marker.
func RemoveMarker(idx model.OrderMarkerIndex) BattleStateMessage {
	return BattleStateMessage{Kind: MessageRemoveMarker, MarkerIndex: idx}
}

// SetPhase builds a BattleStateMessage transitioning the battle phase.
func SetPhase(p model.BattlePhase) BattleStateMessage {
	return BattleStateMessage{Kind: MessageSetPhase, Phase: p}
}

// SideEffectKind is the closed set of effects React reports back to the
// caller after applying a message, grounded on runner/react.rs's
// SideEffect enum (SoldierFinishHisBehavior, RefreshEntityAnimation).
type SideEffectKind int

const (
	SideEffectSoldierFinishedBehavior SideEffectKind = iota
	SideEffectRefreshEntityAnimation
	SideEffectSquadLeaderChanged
)

// SideEffect is a fact produced while applying a BattleStateMessage that
// the caller (internal/runner) handles outside of React itself — the
// runner logs SquadLeaderChanged and ignores the other kinds.
type SideEffect struct {
	Kind     SideEffectKind
	Soldier  model.SoldierID
	Squad    model.SquadID
}
