package geo

import (
	"fmt"

	"github.com/tacsim/battlecore/internal/model"
)

// Map is the queryable contract an already-parsed map value must satisfy.
// Map loading/parsing is out of scope (spec 1); Grid is the reference
// implementation callers construct however they obtain tile data from.
type Map interface {
	Width() int
	Height() int
	CellSize() int
	Tile(g model.GridPoint) (TerrainTile, bool)
}

// Grid is a dense rectangular terrain map, grounded on the teacher's
// navmesh.go grid storage (a flat []cellKind slice addressed by WorldToCell).
type Grid struct {
	width, height int
	cellSize      int
	tiles         []TileKind
}

// NewGrid builds a Grid of width*height cells, all initialized to kind.
func NewGrid(width, height, cellSize int, kind TileKind) *Grid {
	tiles := make([]TileKind, width*height)
	for i := range tiles {
		tiles[i] = kind
	}
	return &Grid{width: width, height: height, cellSize: cellSize, tiles: tiles}
}

func (g *Grid) Width() int    { return g.width }
func (g *Grid) Height() int   { return g.height }
func (g *Grid) CellSize() int { return g.cellSize }

func (g *Grid) inBounds(p model.GridPoint) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Tile returns the terrain tile at the given grid cell.
func (g *Grid) Tile(p model.GridPoint) (TerrainTile, bool) {
	if !g.inBounds(p) {
		return TerrainTile{}, false
	}
	return Lookup(g.tiles[p.Y*g.width+p.X]), true
}

// Set assigns a tile kind at the given grid cell; used by map construction
// code (test fixtures, or a future loader), not by simulation logic.
func (g *Grid) Set(p model.GridPoint, kind TileKind) error {
	if !g.inBounds(p) {
		return fmt.Errorf("geo: cell %v out of bounds (%dx%d)", p, g.width, g.height)
	}
	g.tiles[p.Y*g.width+p.X] = kind
	return nil
}

// TileAt resolves the tile under a world-space point.
func TileAt(m Map, world model.WorldPoint) (TerrainTile, bool) {
	return m.Tile(GridOf(world, m.CellSize()))
}

// PedestrianCost returns the movement cost of the tile under world, or -1
// if world falls outside the map.
func PedestrianCost(m Map, world model.WorldPoint) int {
	t, ok := TileAt(m, world)
	if !ok {
		return -1
	}
	return t.PedestrianCost
}

// BlocksVehicle reports whether the tile under world blocks vehicles. A
// point outside the map is treated as blocking.
func BlocksVehicle(m Map, world model.WorldPoint) bool {
	t, ok := TileAt(m, world)
	if !ok {
		return true
	}
	return t.BlocksVehicleVal
}

// OpacityAt returns the tile's contribution to a visibility ray's
// accumulated opacity, 0 outside the map.
func OpacityAt(m Map, world model.WorldPoint) float64 {
	t, ok := TileAt(m, world)
	if !ok {
		return 0
	}
	return t.OpacityVal
}
