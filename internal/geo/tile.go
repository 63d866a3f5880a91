// Package geo implements spec component A: grid/world point conversions,
// tile lookup, and terrain opacity/cost queries over an already-parsed map
// value. Map file parsing itself is out of scope (spec 1) — geo only
// defines the queryable contract a parsed map must satisfy.
package geo

import "fmt"

// TileKind is the closed set of terrain tile kinds (spec Glossary).
type TileKind int

const (
	TileShortGrass TileKind = iota
	TileMiddleGrass
	TileHighGrass
	TileDirt
	TileMud
	TileConcrete
	TileBrickWall
	TileTrunk
	TileWater
	TileDeepWater
	TileUnderbrush
	TileLightUnderbrush
	TileMiddleWoodLogs
	TileHedge
	TileMiddleRock
)

func (k TileKind) String() string {
	switch k {
	case TileShortGrass:
		return "ShortGrass"
	case TileMiddleGrass:
		return "MiddleGrass"
	case TileHighGrass:
		return "HighGrass"
	case TileDirt:
		return "Dirt"
	case TileMud:
		return "Mud"
	case TileConcrete:
		return "Concrete"
	case TileBrickWall:
		return "BrickWall"
	case TileTrunk:
		return "Trunk"
	case TileWater:
		return "Water"
	case TileDeepWater:
		return "DeepWater"
	case TileUnderbrush:
		return "Underbrush"
	case TileLightUnderbrush:
		return "LightUnderbrush"
	case TileMiddleWoodLogs:
		return "MiddleWoodLogs"
	case TileHedge:
		return "Hedge"
	case TileMiddleRock:
		return "MiddleRock"
	default:
		return "Unknown"
	}
}

// TerrainTile carries the fixed (kind -> cost, blocks_vehicle) attributes
// for one tile (spec 4.A / Glossary).
type TerrainTile struct {
	Kind             TileKind
	PedestrianCost   int
	BlocksVehicleVal bool
	// OpacityVal is how much this tile's kind contributes to a visibility
	// ray passing through it (spec 4.C); tall/dense kinds are more opaque.
	OpacityVal float64
}

// ErrUnknownTerrain is returned by ParseTileKind for an unrecognized id,
// fatal at map load per spec 7 (recoverable only if the caller supplies a
// default kind).
type ErrUnknownTerrain struct {
	ID string
}

func (e *ErrUnknownTerrain) Error() string {
	return fmt.Sprintf("geo: unknown terrain id %q", e.ID)
}

// tileTable is the fixed kind -> (cost, blocks_vehicle) table from the
// spec's Glossary, itself grounded on battle_core/src/map/terrain.rs.
//
// MiddleRock does not reproduce the upstream construction bug: the original
// builds a MiddleRock tile with TileType::MiddleGrass as its discriminant
// while still assigning the MiddleRock cost/blocking values. Spec's Open
// Questions section records this as "likely a bug" but directs that
// MiddleRock stay its own kind with the MiddleRock branch's numbers — which
// is exactly what this table already does, since Go's table is keyed by
// the (correct) TileMiddleRock constant rather than by the mistaken
// discriminant the original re-used at construction time.
var tileTable = map[TileKind]TerrainTile{
	TileShortGrass:      {Kind: TileShortGrass, PedestrianCost: 10, BlocksVehicleVal: false, OpacityVal: 0.05},
	TileMiddleGrass:     {Kind: TileMiddleGrass, PedestrianCost: 10, BlocksVehicleVal: false, OpacityVal: 0.10},
	TileHighGrass:       {Kind: TileHighGrass, PedestrianCost: 10, BlocksVehicleVal: false, OpacityVal: 0.25},
	TileDirt:            {Kind: TileDirt, PedestrianCost: 11, BlocksVehicleVal: false, OpacityVal: 0.0},
	TileMud:             {Kind: TileMud, PedestrianCost: 11, BlocksVehicleVal: false, OpacityVal: 0.0},
	TileConcrete:        {Kind: TileConcrete, PedestrianCost: 50, BlocksVehicleVal: true, OpacityVal: 1.0},
	TileBrickWall:       {Kind: TileBrickWall, PedestrianCost: 50, BlocksVehicleVal: true, OpacityVal: 1.0},
	TileTrunk:           {Kind: TileTrunk, PedestrianCost: 50, BlocksVehicleVal: true, OpacityVal: 0.9},
	TileWater:           {Kind: TileWater, PedestrianCost: 18, BlocksVehicleVal: true, OpacityVal: 0.0},
	TileDeepWater:       {Kind: TileDeepWater, PedestrianCost: 50, BlocksVehicleVal: true, OpacityVal: 0.0},
	TileUnderbrush:      {Kind: TileUnderbrush, PedestrianCost: 12, BlocksVehicleVal: true, OpacityVal: 0.45},
	TileLightUnderbrush: {Kind: TileLightUnderbrush, PedestrianCost: 11, BlocksVehicleVal: true, OpacityVal: 0.25},
	TileMiddleWoodLogs:  {Kind: TileMiddleWoodLogs, PedestrianCost: 30, BlocksVehicleVal: true, OpacityVal: 0.6},
	TileHedge:           {Kind: TileHedge, PedestrianCost: 20, BlocksVehicleVal: true, OpacityVal: 0.7},
	TileMiddleRock:      {Kind: TileMiddleRock, PedestrianCost: 25, BlocksVehicleVal: true, OpacityVal: 0.85},
}

// ParseTileKind resolves a map-format tile id string to a TileKind.
func ParseTileKind(id string) (TileKind, error) {
	for k := range tileTable {
		if k.String() == id {
			return k, nil
		}
	}
	return 0, &ErrUnknownTerrain{ID: id}
}

// Lookup returns the fixed terrain attributes for a tile kind.
func Lookup(kind TileKind) TerrainTile {
	t, ok := tileTable[kind]
	if !ok {
		return TerrainTile{Kind: kind}
	}
	return t
}

// Cost returns the tile's movement cost for ground behaviors.
func (t TerrainTile) Cost() int { return t.PedestrianCost }

// Blocks reports whether the tile blocks vehicle movement.
func (t TerrainTile) Blocks() bool { return t.BlocksVehicleVal }
