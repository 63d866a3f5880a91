// Package observer implements spec component I: the connected client's
// local presentation state and the pure functions that fold a UIEvent into
// it, producing the InputMessages (if any) owed to the simulator — grounded
// on battle_gui/src/engine/input.rs's Engine::collect_* handlers, with the
// GGEZ/ebiten windowing glue stripped out so the fold itself has no I/O.
package observer

import (
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/model"
)

// Control is which layer currently owns mouse/keyboard input, mirroring
// battle_gui's Control enum.
type Control int

const (
	ControlSoldiers Control = iota
	ControlMap
	ControlPhysics
)

func (c Control) String() string {
	switch c {
	case ControlSoldiers:
		return "soldiers"
	case ControlMap:
		return "map"
	case ControlPhysics:
		return "physics"
	default:
		return "unknown"
	}
}

// WindowPoint is a position in screen/window pixel space, distinct from
// model.WorldPoint (simulation space) — input arrives in window space and
// is only converted to world space on demand via WorldPointFromWindow.
type WindowPoint struct {
	X, Y float64
}

// PendingOrder is an order under construction by the observer: the squad
// being redirected, the marker it replaces (if dragging an existing
// marker rather than starting fresh), the order kind selected so far, and
// (for path orders) the waypoints clicked in so far — grounded on
// create_pending_order_from_order_marker (input.rs) and spec 3's
// description of PendingOrder as carrying cached waypoints. Each left
// click appends to Waypoints; the order only commits on a right click or
// second confirmation (spec 4.I).
type PendingOrder struct {
	Squad     model.SquadID
	LeaderID  model.SoldierID
	Kind      model.OrderKind
	Marker    *model.OrderMarkerIndex
	From      model.WorldPoint // leader's position when the order was opened
	Fast      bool             // MoveTo only: modifier held on the most recent click
	Waypoints []model.WorldPoint
}

// GuiState is one observer's local, presentation-only view of the battle:
// camera, cursor, zoom, and in-progress order construction. It owns no
// simulation truth — every field here is reconstructed from InputMessage
// traffic and local mouse/keyboard polling, never mutated by the
// simulator directly.
type GuiState struct {
	FrameI              int
	LastCursorMoveFrame int

	Side model.Side

	CursorWindow WindowPoint
	CursorInHud  bool
	SceneOffset  model.Offset
	ZoomIndex    int
	Control      Control
	DisplayDebug bool

	LeftClickDown       *WindowPoint
	BeginClickOnSoldier *model.SoldierID
	DraggedSquad        *model.SquadID
	PendingOrder        *PendingOrder
}

// NewGuiState returns the zero-value starting state for a side, with the
// zoom index at the configured default (the middle-most level, matching
// the source's Zoom::default being a mid-range factor).
func NewGuiState(side model.Side, cfg config.Config) GuiState {
	idx := 0
	if n := len(cfg.ZoomLevels); n > 0 {
		idx = n / 2
	}
	return GuiState{Side: side, ZoomIndex: idx}
}

// ZoomFactor returns the current zoom level's scale factor, clamped into
// range if ZoomIndex has drifted out of bounds.
func (g GuiState) ZoomFactor(cfg config.Config) float64 {
	if len(cfg.ZoomLevels) == 0 {
		return 1
	}
	i := g.ZoomIndex
	if i < 0 {
		i = 0
	}
	if i >= len(cfg.ZoomLevels) {
		i = len(cfg.ZoomLevels) - 1
	}
	return cfg.ZoomLevels[i]
}

// WorldPointFromWindow converts a window-space point to world space given
// the current camera offset and zoom, mirroring
// GuiState::world_point_from_window_point.
func (g GuiState) WorldPointFromWindow(cfg config.Config, p WindowPoint) model.WorldPoint {
	f := g.ZoomFactor(cfg)
	if f == 0 {
		f = 1
	}
	return model.WorldPoint{
		X: (p.X - g.SceneOffset.X) / f,
		Y: (p.Y - g.SceneOffset.Y) / f,
	}
}
