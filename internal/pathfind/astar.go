// Package pathfind implements spec component B: grid-based A* path search
// over an internal/geo.Map, grounded on the teacher's NavGrid.FindPath
// (navmesh.go) and generalized from a binary walkability grid to weighted
// terrain cost plus a vehicle/pedestrian movement-class distinction.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

// direction is one of the 8 compass moves, walked in a fixed order so that
// FindPath is deterministic when multiple candidate paths tie on cost —
// spec invariant: "path-finding ties break in a fixed, deterministic
// direction order: N, NE, E, SE, S, SW, W, NW."
type direction struct {
	dx, dy int
	cost   float64
}

var directions = []direction{
	{0, -1, 1},        // N
	{1, -1, math.Sqrt2}, // NE
	{1, 0, 1},         // E
	{1, 1, math.Sqrt2},  // SE
	{0, 1, 1},         // S
	{-1, 1, math.Sqrt2}, // SW
	{-1, 0, 1},        // W
	{-1, -1, math.Sqrt2}, // NW
}

type node struct {
	cell   model.GridPoint
	g, h   float64
	parent *node
	index  int
}

type openList []*node

func (ol openList) Len() int          { return len(ol) }
func (ol openList) Less(i, j int) bool {
	fi, fj := ol[i].g+ol[i].h, ol[j].g+ol[j].h
	if fi != fj {
		return fi < fj
	}
	// Ties fall back to the nodes' current heap positions: deterministic for
	// a given push sequence, though not the order nodes were discovered in.
	return ol[i].index < ol[j].index
}
func (ol openList) Swap(i, j int) { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x any) {
	n := x.(*node)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// Mode selects which movement class's blocking/cost rules apply.
type Mode int

const (
	ModePedestrian Mode = iota
	ModeVehicle
)

func blocked(m geo.Map, mode Mode, cell model.GridPoint) bool {
	tile, ok := m.Tile(cell)
	if !ok {
		return true
	}
	if mode == ModeVehicle {
		return tile.Blocks()
	}
	return false
}

func stepCost(m geo.Map, mode Mode, cell model.GridPoint, dirCost float64) float64 {
	if mode == ModeVehicle {
		return dirCost
	}
	tile, ok := m.Tile(cell)
	if !ok {
		return math.Inf(1)
	}
	return dirCost * float64(tile.Cost()) / 10.0
}

func heuristic(a, b model.GridPoint) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// FindPath searches from -> to over m using mode's blocking/cost rules.
// Returns the world-space waypoint sequence, or an empty WorldPath
// (Len() == 0) if no path exists.
// Vehicles use only the map's bounds/blocking (spec 4.B: "vehicles use
// only the map's bounds and blocking; terrain cost does not apply to
// vehicles"); pedestrians pay the tile's PedestrianCost per step.
func FindPath(m geo.Map, from, to model.WorldPoint, mode Mode) model.WorldPath {
	start := geo.GridOf(from, m.CellSize())
	goal := geo.GridOf(to, m.CellSize())

	if blocked(m, mode, start) || blocked(m, mode, goal) {
		return model.WorldPath{}
	}
	if start == goal {
		return model.NewWorldPath([]model.WorldPoint{to})
	}

	key := func(p model.GridPoint) int64 { return int64(p.Y)*int64(m.Width()) + int64(p.X) }

	startNode := &node{cell: start, g: 0, h: heuristic(start, goal)}
	ol := &openList{startNode}
	heap.Init(ol)

	closed := make(map[int64]bool)
	best := make(map[int64]*node)
	best[key(start)] = startNode

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*node)
		if cur.cell == goal {
			return buildWorldPath(cur, m.CellSize(), to)
		}
		k := key(cur.cell)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range directions {
			next := model.GridPoint{X: cur.cell.X + d.dx, Y: cur.cell.Y + d.dy}
			if blocked(m, mode, next) {
				continue
			}
			// Prevent diagonal corner-cutting through blocked cells.
			if d.dx != 0 && d.dy != 0 {
				side1 := model.GridPoint{X: cur.cell.X + d.dx, Y: cur.cell.Y}
				side2 := model.GridPoint{X: cur.cell.X, Y: cur.cell.Y + d.dy}
				if blocked(m, mode, side1) || blocked(m, mode, side2) {
					continue
				}
			}
			nk := key(next)
			if closed[nk] {
				continue
			}
			g := cur.g + stepCost(m, mode, next, d.cost)
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			n := &node{cell: next, g: g, h: heuristic(next, goal), parent: cur}
			best[nk] = n
			heap.Push(ol, n)
		}
	}
	return model.WorldPath{}
}

func buildWorldPath(end *node, cellSize int, finalWorld model.WorldPoint) model.WorldPath {
	var cells []model.GridPoint
	for n := end; n != nil; n = n.parent {
		cells = append(cells, n.cell)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	points := make([]model.WorldPoint, len(cells))
	for i, c := range cells {
		points[i] = geo.WorldOf(c, cellSize)
	}
	// The final waypoint is the exact requested destination, not the cell
	// center, so soldiers stop precisely where ordered.
	if len(points) > 0 {
		points[len(points)-1] = finalWorld
	}
	return model.NewWorldPath(points)
}
