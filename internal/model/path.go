package model

// WorldPath is an ordered, non-empty sequence of waypoints a soldier walks
// through. It corresponds to the spec's WorldPath/WorldPaths: the original
// source's WorldPaths is this same queue-of-points shape, kept under one
// name here since Go has no separate singular/plural wrapper convention.
//
// Invariant: while a movement Behavior holds a WorldPath, it has at least
// one remaining point (the last point is never popped: once it is reached,
// tactics.finishBehavior replaces the movement behavior).
type WorldPath struct {
	points []WorldPoint
	index  int
}

// NewWorldPath builds a path from an ordered, non-empty list of waypoints.
func NewWorldPath(points []WorldPoint) WorldPath {
	return WorldPath{points: points}
}

// Len returns the number of points remaining, including the next one.
func (p WorldPath) Len() int {
	return len(p.points) - p.index
}

// PeekNext returns the next waypoint without consuming it.
func (p WorldPath) PeekNext() (WorldPoint, bool) {
	if p.index >= len(p.points) {
		return WorldPoint{}, false
	}
	return p.points[p.index], true
}

// PopNext advances past the next waypoint, returning it.
func (p *WorldPath) PopNext() (WorldPoint, bool) {
	pt, ok := p.PeekNext()
	if !ok {
		return WorldPoint{}, false
	}
	p.index++
	return pt, true
}

// IsLast reports whether the next waypoint (if any) is the final one.
func (p WorldPath) IsLast() bool {
	return p.index == len(p.points)-1
}

// Points returns the remaining waypoints, for serialization/debug display.
func (p WorldPath) Points() []WorldPoint {
	return append([]WorldPoint(nil), p.points[p.index:]...)
}

// Equal reports whether two paths have the same remaining waypoints.
func (p WorldPath) Equal(o WorldPath) bool {
	a, b := p.Points(), o.Points()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
