// Package visibility implements spec component C: a segmented-opacity
// visibility test between two world points. It generalizes the teacher's
// binary ray-vs-AABB LOS test (los.go) and ray-marching sightline scorer
// (sightlines.go) into a single graded accumulation: the ray is sampled at
// a fixed world-space step, each sample's terrain opacity is added in with
// decay toward the observer, and the target is visible while the
// accumulated total stays under a threshold.
package visibility

import (
	"math"

	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
)

// Accumulate samples the ray from observer to target at step world units,
// summing each sample's tile opacity with exponential decay toward the
// observer (closer occluders count more, grounded on the teacher's
// sightlines.go weighting samples nearer the looking soldier more heavily).
// decay is the per-sample falloff rate in [0,1]; smaller decays more
// slowly, and 0 weighs every sample equally.
func Accumulate(m geo.Map, observer, target model.WorldPoint, step, decay float64) float64 {
	if step <= 0 {
		step = 1
	}
	delta := target.Sub(observer)
	dist := delta.Length()
	if dist < 1e-9 {
		return 0
	}
	dir := delta.Normalized()

	total := 0.0
	weight := 1.0
	for d := step; d < dist; d += step {
		sample := observer.Add(dir.Scale(d))
		total += geo.OpacityAt(m, sample) * weight
		weight *= 1 - decay
	}
	return total
}

// Visible reports whether target is visible from observer: the accumulated
// opacity along the ray stays strictly under threshold.
func Visible(m geo.Map, observer, target model.WorldPoint, step, decay, threshold float64) bool {
	return Accumulate(m, observer, target, step, decay) < threshold
}

// rayAABBHitT returns the entry parameter t in [0,1] where the segment
// observer->target first enters the axis-aligned box, grounded verbatim on
// the teacher's slab test (los.go rayAABBHitT), kept as the fast binary
// check buildings use ahead of the full opacity accumulation.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin, tMax := 0.0, 1.0

	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1, t2 := (minX-ox)*invD, (maxX-ox)*invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1, t2 := (minY-oy)*invD, (maxY-oy)*invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	if tMin > 1 {
		return 0, false
	}
	return tMin, true
}

// Building is an axis-aligned opaque footprint that fully blocks sight
// regardless of terrain opacity (spec 4.C: "a building interior polygon
// always fully blocks, independent of the graded terrain accumulation").
type Building struct {
	MinX, MinY, MaxX, MaxY float64
}

// BlockedByBuilding reports whether any building fully interrupts the
// observer->target segment.
func BlockedByBuilding(observer, target model.WorldPoint, buildings []Building) bool {
	for _, b := range buildings {
		if _, hit := rayAABBHitT(observer.X, observer.Y, target.X, target.Y, b.MinX, b.MinY, b.MaxX, b.MaxY); hit {
			return true
		}
	}
	return false
}

// Test is the full spec 4.C visibility check: a building hit is an
// immediate fail; otherwise the graded terrain accumulation decides.
func Test(m geo.Map, observer, target model.WorldPoint, buildings []Building, step, decay, threshold float64) bool {
	if BlockedByBuilding(observer, target, buildings) {
		return false
	}
	return Visible(m, observer, target, step, decay, threshold)
}
