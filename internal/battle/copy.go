package battle

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/tacsim/battlecore/internal/model"
)

// BattleStateCopy is a serializable snapshot of a BattleState, mirroring
// the source's sync::BattleStateCopy (sent as OutputMessage::LoadFromCopy
// for late-joining observers, spec 4.H). The teacher declares
// github.com/atotto/clipboard but never calls it; here it backs the
// actual save/export workflow an observer's debug panel exposes.
type BattleStateCopy struct {
	FrameI      int                                          `json:"frame_i"`
	Phase       model.BattlePhase                            `json:"phase"`
	Soldiers    []model.Soldier                               `json:"soldiers"`
	Squads      []model.Squad                                 `json:"squads"`
	Vehicles    []model.Vehicle                               `json:"vehicles"`
	Explosions  []model.Explosion                             `json:"explosions"`
	Projectiles []model.Projectile                            `json:"projectiles"`
	Markers     map[model.OrderMarkerIndex]model.OrderMarker  `json:"markers"`
}

// Copy snapshots the current battle state by value.
func (b *BattleState) Copy() BattleStateCopy {
	c := BattleStateCopy{
		FrameI:  b.FrameI,
		Phase:   b.Phase,
		Markers: make(map[model.OrderMarkerIndex]model.OrderMarker, len(b.markers)),
	}
	for _, s := range b.Soldiers() {
		c.Soldiers = append(c.Soldiers, *s)
	}
	for _, sq := range b.Squads() {
		c.Squads = append(c.Squads, *sq)
	}
	for _, v := range b.Vehicles() {
		c.Vehicles = append(c.Vehicles, *v)
	}
	c.Explosions = append(c.Explosions, b.explosions...)
	c.Projectiles = append(c.Projectiles, b.projectiles...)
	for k, m := range b.markers {
		c.Markers[k] = m
	}
	return c
}

// Restore replaces the receiver's contents with a previously taken copy.
func (b *BattleState) Restore(c BattleStateCopy) {
	b.FrameI = c.FrameI
	b.Phase = c.Phase
	b.soldiers = make(map[model.SoldierID]*model.Soldier, len(c.Soldiers))
	for i := range c.Soldiers {
		s := c.Soldiers[i]
		b.soldiers[s.ID] = &s
	}
	b.squads = make(map[model.SquadID]*model.Squad, len(c.Squads))
	for i := range c.Squads {
		sq := c.Squads[i]
		b.squads[sq.ID] = &sq
	}
	b.vehicles = make(map[model.VehicleID]*model.Vehicle, len(c.Vehicles))
	for i := range c.Vehicles {
		v := c.Vehicles[i]
		b.vehicles[v.ID] = &v
	}
	b.explosions = append([]model.Explosion(nil), c.Explosions...)
	b.projectiles = append([]model.Projectile(nil), c.Projectiles...)
	b.markers = make(map[model.OrderMarkerIndex]model.OrderMarker, len(c.Markers))
	for k, m := range c.Markers {
		b.markers[k] = m
	}
}

// CopyToClipboard JSON-encodes a snapshot and places it on the system
// clipboard, so a developer can paste a battle's exact state into a bug
// report (spec 7, "debug export").
func (b *BattleState) CopyToClipboard() error {
	data, err := json.Marshal(b.Copy())
	if err != nil {
		return fmt.Errorf("battle: marshal state copy: %w", err)
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("battle: write clipboard: %w", err)
	}
	return nil
}

// LoadFromClipboardCopy reads a JSON-encoded BattleStateCopy off the
// system clipboard and restores it into the receiver.
func (b *BattleState) LoadFromClipboardCopy() error {
	data, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("battle: read clipboard: %w", err)
	}
	var c BattleStateCopy
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return fmt.Errorf("battle: unmarshal state copy: %w", err)
	}
	b.Restore(c)
	return nil
}
