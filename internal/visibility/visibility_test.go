package visibility

import (
	"testing"

	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

func TestVisibleOverOpenGround(t *testing.T) {
	m := geo.NewGrid(20, 20, 16, geo.TileDirt)
	observer := model.WorldPoint{X: 8, Y: 8}
	target := model.WorldPoint{X: 8, Y: 200}
	if !Visible(m, observer, target, 2, 0.01, 1.0) {
		t.Fatalf("expected visibility over open dirt ground")
	}
}

func TestHiddenThroughDenseUnderbrush(t *testing.T) {
	m := geo.NewGrid(40, 2, 16, geo.TileUnderbrush)
	observer := model.WorldPoint{X: 8, Y: 8}
	target := model.WorldPoint{X: 600, Y: 8}
	if Visible(m, observer, target, 2, 0.0, 1.0) {
		t.Fatalf("expected dense underbrush to occlude at long range")
	}
}

func TestCloserOccludersWeighMoreThanDistant(t *testing.T) {
	// A short patch of high grass right next to the observer should
	// accumulate more than the same patch far from the observer, because
	// decay reduces the contribution of distant samples.
	near := geo.NewGrid(50, 2, 16, geo.TileDirt)
	for x := 0; x < 4; x++ {
		if err := near.Set(model.GridPoint{X: x, Y: 0}, geo.TileHighGrass); err != nil {
			t.Fatal(err)
		}
	}
	far := geo.NewGrid(50, 2, 16, geo.TileDirt)
	for x := 40; x < 44; x++ {
		if err := far.Set(model.GridPoint{X: x, Y: 0}, geo.TileHighGrass); err != nil {
			t.Fatal(err)
		}
	}
	observer := model.WorldPoint{X: 8, Y: 8}
	target := model.WorldPoint{X: 700, Y: 8}

	nearAccum := Accumulate(near, observer, target, 2, 0.02)
	farAccum := Accumulate(far, observer, target, 2, 0.02)
	if nearAccum <= farAccum {
		t.Fatalf("near occluder accum %v should exceed far occluder accum %v", nearAccum, farAccum)
	}
}

func TestBuildingAlwaysBlocksRegardlessOfTerrain(t *testing.T) {
	m := geo.NewGrid(40, 2, 16, geo.TileDirt)
	observer := model.WorldPoint{X: 8, Y: 8}
	target := model.WorldPoint{X: 600, Y: 8}
	buildings := []Building{{MinX: 300, MinY: 0, MaxX: 320, MaxY: 16}}
	if Test(m, observer, target, buildings, 2, 0.01, 1.0) {
		t.Fatalf("expected building to block sight even over open terrain")
	}
}
