package geo

import (
	"math"

	"github.com/tacsim/battlecore/internal/model"
)

// GridOf converts a world-space point to its containing cell, generalizing
// the teacher's WorldToCell (navmesh.go) from a hardcoded tile size to a
// configurable cellSize.
func GridOf(world model.WorldPoint, cellSize int) model.GridPoint {
	if cellSize <= 0 {
		cellSize = 1
	}
	return model.GridPoint{
		X: int(math.Floor(world.X / float64(cellSize))),
		Y: int(math.Floor(world.Y / float64(cellSize))),
	}
}

// WorldOf returns the world-space center of a grid cell, the inverse of
// GridOf (teacher's CellToWorld, navmesh.go).
func WorldOf(grid model.GridPoint, cellSize int) model.WorldPoint {
	half := float64(cellSize) / 2
	return model.WorldPoint{
		X: float64(grid.X*cellSize) + half,
		Y: float64(grid.Y*cellSize) + half,
	}
}
