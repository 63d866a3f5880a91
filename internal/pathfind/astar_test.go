package pathfind

import (
	"testing"

	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

func TestFindPathStraightLine(t *testing.T) {
	g := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	from := model.WorldPoint{X: 8, Y: 8}
	to := model.WorldPoint{X: 8, Y: 8 + 16*5}
	path := FindPath(g, from, to, ModePedestrian)
	if path.Len() == 0 {
		t.Fatalf("expected a path")
	}
	last, _ := path.PeekNext()
	for path.Len() > 1 {
		last, _ = path.PopNext()
	}
	if last.Y == 0 {
		t.Fatalf("path should move toward destination")
	}
}

func TestFindPathBlockedByWallIsDeflected(t *testing.T) {
	g := geo.NewGrid(10, 10, 16, geo.TileShortGrass)
	for y := 0; y < 10; y++ {
		if y == 5 {
			continue
		}
		if err := g.Set(model.GridPoint{X: 5, Y: y}, geo.TileBrickWall); err != nil {
			t.Fatal(err)
		}
	}
	from := model.WorldPoint{X: 8, Y: 8}
	to := model.WorldPoint{X: 8 + 16*8, Y: 8}
	// Brick walls block vehicles only; pedestrians pay their cost instead.
	path := FindPath(g, from, to, ModeVehicle)
	if path.Len() == 0 {
		t.Fatalf("expected path through the gap")
	}
}

func TestFindPathUnreachableReturnsEmpty(t *testing.T) {
	g := geo.NewGrid(4, 4, 16, geo.TileShortGrass)
	for y := 0; y < 4; y++ {
		if err := g.Set(model.GridPoint{X: 2, Y: y}, geo.TileBrickWall); err != nil {
			t.Fatal(err)
		}
	}
	from := model.WorldPoint{X: 8, Y: 8}
	to := model.WorldPoint{X: 8 + 16*3, Y: 8}
	path := FindPath(g, from, to, ModePedestrian)
	if path.Len() != 0 {
		t.Fatalf("expected no path, got one with %d points", path.Len())
	}
}

func TestFindPathVehicleCrossesNonBlockingHighGrass(t *testing.T) {
	g := geo.NewGrid(10, 10, 16, geo.TileHighGrass) // does not block vehicles
	from := model.WorldPoint{X: 8, Y: 8}
	to := model.WorldPoint{X: 8 + 16*5, Y: 8}
	path := FindPath(g, from, to, ModeVehicle)
	if path.Len() == 0 {
		t.Fatalf("expected vehicle path over non-blocking high grass")
	}
}

func TestFindPathNoCornerCutting(t *testing.T) {
	g := geo.NewGrid(5, 5, 16, geo.TileShortGrass)
	if err := g.Set(model.GridPoint{X: 2, Y: 1}, geo.TileBrickWall); err != nil {
		t.Fatal(err)
	}
	if err := g.Set(model.GridPoint{X: 1, Y: 2}, geo.TileBrickWall); err != nil {
		t.Fatal(err)
	}
	from := geo.WorldOf(model.GridPoint{X: 1, Y: 1}, 16)
	to := geo.WorldOf(model.GridPoint{X: 2, Y: 2}, 16)
	path := FindPath(g, from, to, ModeVehicle)
	if path.Len() == 0 {
		t.Fatalf("expected a detour around the blocked corner, got no path")
	}
	if path.Len() == 2 {
		t.Fatalf("expected diagonal corner-cut to be blocked, got direct step %v", path.Points())
	}
}
