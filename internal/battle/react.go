package battle

import "github.com/tacsim/battlecore/internal/model"

// React is BattleState's single mutation entrypoint (spec 4.D): every
// change to the battle passes through here as one BattleStateMessage, and
// any facts the caller needs to act on afterward come back as SideEffects
// applied within the same tick — no mutation happens outside this
// function, and no locking is needed since one BattleState is never
// shared across goroutines.
//
// Mirrors runner/react.rs's Runner::react, generalized from a
// loop-over-many-messages driver into the per-message core it delegates
// to; internal/runner owns the loop and applies the returned side effects,
// exactly as the source's react() does with Runner::side_effect.
func (b *BattleState) React(msg BattleStateMessage, frame int) []SideEffect {
	b.FrameI = frame

	switch msg.Kind {
	case MessageSoldier:
		return b.reactSoldier(msg.SoldierID, msg.Soldier)
	case MessageAddExplosion:
		e := msg.Explosion
		b.nextExplosionID++
		e.ID = b.nextExplosionID
		b.explosions = append(b.explosions, e)
		return nil
	case MessageAddProjectile:
		p := msg.Projectile
		b.nextProjectileID++
		p.ID = b.nextProjectileID
		b.projectiles = append(b.projectiles, p)
		return nil
	case MessageRemoveExplosion:
		b.removeExplosion(msg.ExplosionID)
		return nil
	case MessageRemoveProjectile:
		b.removeProjectile(msg.ProjectileID)
		return nil
	case MessageSetMarker:
		m := msg.Marker
		if m.Index == 0 {
			b.nextMarkerIndex++
			m.Index = b.nextMarkerIndex
		}
		b.markers[m.Index] = m
		return nil
	case MessageRemoveMarker:
		delete(b.markers, msg.MarkerIndex)
		return nil
	case MessageSetPhase:
		b.Phase = msg.Phase
		return nil
	default:
		return nil
	}
}

func (b *BattleState) reactSoldier(id model.SoldierID, msg SoldierMessage) []SideEffect {
	s, ok := b.soldiers[id]
	if !ok {
		return nil
	}

	switch msg.Kind {
	case SoldierSetBehavior:
		s.Behavior = msg.Behavior
		return nil

	case SoldierSetOrder:
		s.Order = msg.Order
		return nil

	case SoldierSetWorldPosition:
		from := s.Position
		s.Position = msg.Point
		if heading, ok := headingForMovement(from, msg.Point); ok {
			s.Facing = heading
		}
		return nil

	case SoldierSetFacing:
		s.Facing = msg.Angle
		return nil

	case SoldierReachBehaviorStep:
		// Position is left wherever the last SetWorldPosition step put it;
		// the original runner's equivalent message carries no coordinate and
		// doesn't snap the soldier onto the waypoint (movement.rs).
		s.Behavior.Paths.PopNext()
		return nil

	case SoldierAddUnderFire:
		s.UnderFire.Add(msg.Amount, msg.Max)
		return nil

	case SoldierDecayUnderFire:
		s.UnderFire.Decay(msg.Amount)
		return nil

	case SoldierSetHealth:
		s.Health = msg.Amount
		return nil

	case SoldierApplyDamage:
		return b.applyDamage(s, msg.Amount)

	case SoldierSetStatus:
		return b.setStatus(s, msg.Status)

	default:
		return nil
	}
}

func headingForMovement(from, to model.WorldPoint) (model.Angle, bool) {
	if from == to {
		return 0, false
	}
	return model.HeadingTo(from, to), true
}

// applyDamage reduces health and, crossing zero, kills the soldier — same
// consequence chain as the source's soldier_die: behavior/order reset to
// Dead/Idle, plus leader succession if the casualty led its squad (spec
// invariant 2, absent from the teacher and implemented fresh here).
func (b *BattleState) applyDamage(s *model.Soldier, amount float64) []SideEffect {
	if s.Status == model.StatusDead {
		return nil
	}
	s.Health -= amount
	if s.Health > 0 {
		return nil
	}
	s.Health = 0
	s.Status = model.StatusDead
	s.Behavior = model.DeadBehavior()
	s.Order = model.IdleOrder()

	effects := []SideEffect{{Kind: SideEffectRefreshEntityAnimation, Soldier: s.ID}}
	if sq, ok := b.squads[s.Squad]; ok {
		if sq.EnsureLeader(b.soldierAlive) {
			effects = append(effects, SideEffect{Kind: SideEffectSquadLeaderChanged, Squad: sq.ID, Soldier: sq.LeaderID})
		}
	}
	return effects
}

func (b *BattleState) setStatus(s *model.Soldier, status model.Status) []SideEffect {
	s.Status = status
	if status != model.StatusDead {
		return nil
	}
	s.Behavior = model.DeadBehavior()
	s.Order = model.IdleOrder()

	effects := []SideEffect{{Kind: SideEffectRefreshEntityAnimation, Soldier: s.ID}}
	if sq, ok := b.squads[s.Squad]; ok {
		if sq.EnsureLeader(b.soldierAlive) {
			effects = append(effects, SideEffect{Kind: SideEffectSquadLeaderChanged, Squad: sq.ID, Soldier: sq.LeaderID})
		}
	}
	return effects
}

func (b *BattleState) soldierAlive(id model.SoldierID) bool {
	s, ok := b.soldiers[id]
	return ok && s.IsAlive()
}

// removeExplosion drops an expired explosion by ID, preserving the
// remaining slice's relative order.
func (b *BattleState) removeExplosion(id model.ExplosionID) {
	for i, e := range b.explosions {
		if e.ID == id {
			b.explosions = append(b.explosions[:i], b.explosions[i+1:]...)
			return
		}
	}
}

// removeProjectile drops an expired projectile by ID.
func (b *BattleState) removeProjectile(id model.ProjectileID) {
	for i, p := range b.projectiles {
		if p.ID == id {
			b.projectiles = append(b.projectiles[:i], b.projectiles[i+1:]...)
			return
		}
	}
}
