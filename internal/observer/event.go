package observer

import "github.com/tacsim/battlecore/internal/model"

// UIEventKind is the closed set of input-driven events the observer's GUI
// state folds over, grounded on the EngineMessage::GuiState(GuiStateMessage)
// and UIEvent variants actually produced by input.rs's collect_* methods.
type UIEventKind int

const (
	EventCursorMove UIEventKind = iota
	EventKeyPan
	EventMouseWheel
	EventLeftMouseDown
	EventLeftMouseUp
	EventRightMouseUp
	EventToggleDebugGui
	EventSetControl
	EventOpenPendingOrder
	EventCancelPendingOrder
)

// UIEvent is a single polled-input fact fed into Apply. Only the fields
// relevant to Kind are meaningful. Fields that require simulation
// knowledge the observer's GuiState doesn't itself hold (which soldier is
// a squad's leader, that soldier's current position) are resolved by the
// caller against its latest BattleStateCopy before the event is built,
// keeping Apply itself a pure fold with no battle-state dependency.
type UIEvent struct {
	Kind UIEventKind

	Point WindowPoint // CursorMove, LeftMouseDown/Up, RightMouseUp

	PanOffset model.Offset // KeyPan

	WheelUp      bool        // MouseWheel: scroll direction
	ScreenCenter WindowPoint // MouseWheel: point to keep fixed while zooming

	Control Control // SetControl

	Squad    model.SquadID    // OpenPendingOrder, drop-to-order finalization
	LeaderID model.SoldierID  // OpenPendingOrder, drop-to-order finalization
	From     model.WorldPoint // drop-to-order finalization: leader's current position
	Marker   *model.OrderMarkerIndex
	OrderKind model.OrderKind // OpenPendingOrder: which order kind is being built
	Fast      bool            // LeftMouseUp finalization: modifier held (MoveFastTo vs MoveTo)
}
