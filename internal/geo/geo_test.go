package geo

import (
	"testing"

	"github.com/tacsim/battlecore/internal/model"
)

func TestGridWorldRoundTrip(t *testing.T) {
	cases := []struct {
		world model.WorldPoint
		cell  int
		want  model.GridPoint
	}{
		{model.WorldPoint{X: 0, Y: 0}, 16, model.GridPoint{X: 0, Y: 0}},
		{model.WorldPoint{X: 15.9, Y: 15.9}, 16, model.GridPoint{X: 0, Y: 0}},
		{model.WorldPoint{X: 16, Y: 31.9}, 16, model.GridPoint{X: 1, Y: 1}},
		{model.WorldPoint{X: -0.1, Y: 0}, 16, model.GridPoint{X: -1, Y: 0}},
	}
	for _, c := range cases {
		got := GridOf(c.world, c.cell)
		if got != c.want {
			t.Errorf("GridOf(%v, %d) = %v, want %v", c.world, c.cell, got, c.want)
		}
	}
}

func TestWorldOfIsCellCenter(t *testing.T) {
	got := WorldOf(model.GridPoint{X: 2, Y: 3}, 16)
	want := model.WorldPoint{X: 40, Y: 56}
	if got != want {
		t.Fatalf("WorldOf = %v, want %v", got, want)
	}
}

func TestMiddleRockRetainsOwnCostDespiteUpstreamBug(t *testing.T) {
	rock := Lookup(TileMiddleRock)
	grass := Lookup(TileMiddleGrass)
	if rock.Cost() == grass.Cost() {
		t.Fatalf("MiddleRock cost %d should differ from MiddleGrass cost %d", rock.Cost(), grass.Cost())
	}
	if !rock.Blocks() {
		t.Fatalf("MiddleRock must block vehicles")
	}
	if grass.Blocks() {
		t.Fatalf("MiddleGrass must not block vehicles")
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid(4, 4, 16, TileShortGrass)
	if _, ok := g.Tile(model.GridPoint{X: 10, Y: 10}); ok {
		t.Fatalf("expected out-of-bounds lookup to fail")
	}
	if !BlocksVehicle(g, model.WorldPoint{X: 1000, Y: 1000}) {
		t.Fatalf("out-of-map world point should be treated as blocking")
	}
}

func TestTileAtAndCosts(t *testing.T) {
	g := NewGrid(4, 4, 16, TileShortGrass)
	if err := g.Set(model.GridPoint{X: 1, Y: 1}, TileConcrete); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got := PedestrianCost(g, model.WorldPoint{X: 20, Y: 20})
	want := Lookup(TileConcrete).PedestrianCost
	if got != want {
		t.Fatalf("PedestrianCost = %d, want %d", got, want)
	}
}

func TestParseTileKindUnknown(t *testing.T) {
	if _, err := ParseTileKind("NotARealTile"); err == nil {
		t.Fatalf("expected error for unknown tile id")
	}
}
