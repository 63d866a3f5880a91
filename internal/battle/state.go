// Package battle implements spec component D: the BattleState aggregate
// and its single mutation entrypoint, React. BattleState owns every
// soldier, squad, vehicle, explosion, projectile, and order marker for one
// running battle; nothing outside this package mutates those records
// directly, mirroring the source's state/battle module and the teacher's
// single-owner Game struct (game.go).
package battle

import (
	"sort"

	"github.com/tacsim/battlecore/internal/model"
)

// BattleState is the authoritative, single-threaded simulation state.
// Nothing here needs locking: the runner and the observer never share one
// BattleState across goroutines (spec 4.D, "React and locking").
type BattleState struct {
	FrameI int
	Phase  model.BattlePhase

	soldiers  map[model.SoldierID]*model.Soldier
	squads    map[model.SquadID]*model.Squad
	vehicles  map[model.VehicleID]*model.Vehicle
	explosions []model.Explosion
	projectiles []model.Projectile
	markers   map[model.OrderMarkerIndex]model.OrderMarker

	nextExplosionID  model.ExplosionID
	nextProjectileID model.ProjectileID
	nextMarkerIndex  model.OrderMarkerIndex
}

// New builds an empty BattleState in the Placement phase.
func New() *BattleState {
	return &BattleState{
		Phase:    model.PhasePlacement,
		soldiers: make(map[model.SoldierID]*model.Soldier),
		squads:   make(map[model.SquadID]*model.Squad),
		vehicles: make(map[model.VehicleID]*model.Vehicle),
		markers:  make(map[model.OrderMarkerIndex]model.OrderMarker),
	}
}

// AddSoldier registers a soldier, overwriting any prior record with the
// same ID. Intended for battle setup, not runtime mutation.
func (b *BattleState) AddSoldier(s *model.Soldier) { b.soldiers[s.ID] = s }

// AddSquad registers a squad.
func (b *BattleState) AddSquad(sq *model.Squad) { b.squads[sq.ID] = sq }

// AddVehicle registers a vehicle.
func (b *BattleState) AddVehicle(v *model.Vehicle) { b.vehicles[v.ID] = v }

// Soldier returns the soldier record for id, if present.
func (b *BattleState) Soldier(id model.SoldierID) (*model.Soldier, bool) {
	s, ok := b.soldiers[id]
	return s, ok
}

// Squad returns the squad record for id, if present.
func (b *BattleState) Squad(id model.SquadID) (*model.Squad, bool) {
	sq, ok := b.squads[id]
	return sq, ok
}

// Vehicle returns the vehicle record for id, if present.
func (b *BattleState) Vehicle(id model.VehicleID) (*model.Vehicle, bool) {
	v, ok := b.vehicles[id]
	return v, ok
}

// Soldiers returns every soldier record, ordered by ID for deterministic
// iteration (tick processing order matters per spec invariant 7).
func (b *BattleState) Soldiers() []*model.Soldier {
	out := make([]*model.Soldier, 0, len(b.soldiers))
	for _, s := range b.soldiers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Squads returns every squad record, ordered by ID.
func (b *BattleState) Squads() []*model.Squad {
	out := make([]*model.Squad, 0, len(b.squads))
	for _, sq := range b.squads {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Vehicles returns every vehicle record, ordered by ID.
func (b *BattleState) Vehicles() []*model.Vehicle {
	out := make([]*model.Vehicle, 0, len(b.vehicles))
	for _, v := range b.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Explosions returns every explosion registered and not yet removed by a
// RemoveExplosion message (callers filter by Effective(frame)).
func (b *BattleState) Explosions() []model.Explosion { return b.explosions }

// Projectiles returns every projectile registered and not yet removed by a
// RemoveProjectile message.
func (b *BattleState) Projectiles() []model.Projectile { return b.projectiles }

// Markers returns every current order marker.
func (b *BattleState) Markers() map[model.OrderMarkerIndex]model.OrderMarker {
	return b.markers
}

// IsSquadLeader reports whether soldier id currently leads its squad.
func (b *BattleState) IsSquadLeader(id model.SoldierID) bool {
	s, ok := b.soldiers[id]
	if !ok {
		return false
	}
	sq, ok := b.squads[s.Squad]
	if !ok {
		return false
	}
	return sq.LeaderID == id
}

// VehiclePlaceOf returns the vehicle a soldier currently occupies, if any.
func (b *BattleState) VehiclePlaceOf(id model.SoldierID) (*model.Vehicle, bool) {
	for _, v := range b.vehicles {
		if _, ok := v.PlaceOf(id); ok {
			return v, true
		}
	}
	return nil, false
}

// SoldierVehiclePlace returns the named seat a soldier occupies inside any
// vehicle, if any (spec 4.D's soldier_vehicle_place).
func (b *BattleState) SoldierVehiclePlace(id model.SoldierID) (model.Place, bool) {
	if v, ok := b.VehiclePlaceOf(id); ok {
		return v.PlaceOf(id)
	}
	return model.Place{}, false
}

// SoldierBehaviorMode reports whether a soldier is currently driving a
// vehicle or moving on foot (spec 4.D's soldier_behavior_mode). A soldier
// only counts as Vehicle mode while seated as the driver; a gunner or
// passenger still moves on foot for order-resolution purposes.
func (b *BattleState) SoldierBehaviorMode(id model.SoldierID) model.BehaviorMode {
	if place, ok := b.SoldierVehiclePlace(id); ok && place.Kind == model.PlaceDriver {
		return model.BehaviorModeVehicle
	}
	return model.BehaviorModeGround
}

// OpponentsOf returns every alive soldier on the opposite side of s.
func (b *BattleState) OpponentsOf(s *model.Soldier) []*model.Soldier {
	out := make([]*model.Soldier, 0)
	for _, o := range b.Soldiers() {
		if o.Side != s.Side && o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}
