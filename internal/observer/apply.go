package observer

import (
	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/pathfind"
	"github.com/tacsim/battlecore/internal/protocol"
)

// Apply folds one UIEvent into state, returning the updated state and any
// InputMessages owed to the simulator as a result — the observer-side
// analogue of BattleState.React, except nothing here is authoritative: a
// dropped connection just means the observer rebuilds GuiState from
// scratch and resyncs with RequireCompleteSync.
//
// m is the (static, locally-held) map used to preview a dropped order's
// path before the simulator has had a chance to react to it — the
// simulator independently recomputes subordinate paths in
// internal/tactics's propagation step, so a divergent client-side preview
// is cosmetic only.
func Apply(state GuiState, cfg config.Config, m geo.Map, event UIEvent) (GuiState, []protocol.InputMessage) {
	switch event.Kind {
	case EventCursorMove:
		return applyCursorMove(state, event)

	case EventKeyPan:
		state.SceneOffset.X += event.PanOffset.X
		state.SceneOffset.Y += event.PanOffset.Y
		return state, nil

	case EventMouseWheel:
		return applyMouseWheel(state, cfg, event), nil

	case EventLeftMouseDown:
		p := event.Point
		state.LeftClickDown = &p
		return state, nil

	case EventLeftMouseUp:
		return applyLeftMouseUp(state, cfg, event)

	case EventRightMouseUp:
		return applyRightMouseUp(state, cfg, m)

	case EventToggleDebugGui:
		state.DisplayDebug = !state.DisplayDebug
		return state, nil

	case EventSetControl:
		state.Control = event.Control
		return state, nil

	case EventOpenPendingOrder:
		state.PendingOrder = &PendingOrder{
			Squad: event.Squad, LeaderID: event.LeaderID, Kind: event.OrderKind,
			Marker: event.Marker, From: event.From,
		}
		return state, nil

	case EventCancelPendingOrder:
		state.PendingOrder = nil
		return state, nil

	default:
		return state, nil
	}
}

func applyCursorMove(state GuiState, event UIEvent) (GuiState, []protocol.InputMessage) {
	prev := state.CursorWindow
	state.CursorWindow = event.Point
	state.LastCursorMoveFrame = state.FrameI

	if state.LeftClickDown != nil && *state.LeftClickDown != event.Point && state.Control == ControlMap {
		state.SceneOffset.X += event.Point.X - prev.X
		state.SceneOffset.Y += event.Point.Y - prev.Y
	}
	return state, nil
}

func applyMouseWheel(state GuiState, cfg config.Config, event UIEvent) GuiState {
	if state.CursorInHud || len(cfg.ZoomLevels) == 0 {
		return state
	}
	worldUnderCenter := state.WorldPointFromWindow(cfg, event.ScreenCenter)

	if event.WheelUp {
		state.ZoomIndex++
		if state.ZoomIndex >= len(cfg.ZoomLevels) {
			state.ZoomIndex = len(cfg.ZoomLevels) - 1
		}
	} else {
		state.ZoomIndex--
		if state.ZoomIndex < 0 {
			state.ZoomIndex = 0
		}
	}

	f := state.ZoomFactor(cfg)
	state.SceneOffset.X = -(worldUnderCenter.X * f) + event.ScreenCenter.X
	state.SceneOffset.Y = -(worldUnderCenter.Y * f) + event.ScreenCenter.Y
	return state
}

// applyLeftMouseUp accumulates one more waypoint onto a pending path order
// (spec 4.I: "each left click appends a waypoint"), or commits immediately
// for single-point order kinds (Defend/Hide/SuppressFire) that have no
// path to accumulate.
func applyLeftMouseUp(state GuiState, cfg config.Config, event UIEvent) (GuiState, []protocol.InputMessage) {
	state.LeftClickDown = nil
	state.DraggedSquad = nil
	state.BeginClickOnSoldier = nil

	if state.PendingOrder == nil {
		return state, nil
	}

	dest := state.WorldPointFromWindow(cfg, event.Point)
	if state.PendingOrder.Kind.ExpectsPathFinding() {
		state.PendingOrder.Waypoints = append(state.PendingOrder.Waypoints, dest)
		state.PendingOrder.Fast = event.Fast
		return state, nil
	}

	order := buildSinglePointOrder(state.PendingOrder.Kind, event.From, dest)
	out := []protocol.InputMessage{protocol.InputBattleStateMessage(
		battle.Soldier(state.PendingOrder.LeaderID, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: order}),
	)}
	state.PendingOrder = nil
	return state, out
}

// applyRightMouseUp commits a pending path order over its accumulated
// waypoints, or — if no waypoint was ever clicked — simply cancels it
// (spec 4.I: "commits only on right click or second confirmation").
func applyRightMouseUp(state GuiState, cfg config.Config, m geo.Map) (GuiState, []protocol.InputMessage) {
	pending := state.PendingOrder
	state.PendingOrder = nil
	state.DraggedSquad = nil

	if pending == nil || len(pending.Waypoints) == 0 {
		return state, nil
	}

	order := buildPathOrder(m, pending.Kind, pending.From, pending.Waypoints, pending.Fast)
	out := []protocol.InputMessage{protocol.InputBattleStateMessage(
		battle.Soldier(pending.LeaderID, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: order}),
	)}
	return state, out
}

// buildPathOrder chains pathfinding across every accumulated waypoint in
// turn (leader position -> wp[0] -> wp[1] -> ...) and wraps the
// concatenated path in the order kind selected when the order was opened.
func buildPathOrder(m geo.Map, kind model.OrderKind, from model.WorldPoint, waypoints []model.WorldPoint, fast bool) model.Order {
	var points []model.WorldPoint
	leg := pathfind.FindPath(m, from, waypoints[0], pathfind.ModePedestrian)
	points = append(points, leg.Points()...)
	for i := 1; i < len(waypoints); i++ {
		leg := pathfind.FindPath(m, waypoints[i-1], waypoints[i], pathfind.ModePedestrian)
		points = append(points, leg.Points()...)
	}
	path := model.NewWorldPath(points)

	switch kind {
	case model.OrderMoveFastTo:
		return model.MoveFastToOrder(path)
	case model.OrderSneakTo:
		return model.SneakToOrder(path)
	default:
		if fast {
			return model.MoveFastToOrder(path)
		}
		return model.MoveToOrder(path)
	}
}

// buildSinglePointOrder turns a one-click gesture into a concrete
// single-point Order, grounded on how the source's order markers
// (defend/hide/suppress-fire icons) are each tied to one order kind via
// MarkerForOrder's inverse.
func buildSinglePointOrder(kind model.OrderKind, from, to model.WorldPoint) model.Order {
	switch kind {
	case model.OrderDefend:
		return model.DefendOrder(model.HeadingTo(from, to))
	case model.OrderHide:
		return model.HideOrder(model.HeadingTo(from, to))
	case model.OrderSuppressFire:
		return model.SuppressFireOrder(to)
	default:
		return model.IdleOrder()
	}
}
