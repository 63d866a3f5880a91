// Package protocol implements spec component H: the three message
// namespaces carried between observer and simulator (InputMessage,
// OutputMessage) and internally within the simulator (RunnerMessage),
// grounded on battle_core/src/message/mod.rs.
package protocol

import (
	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/model"
)

// DebugPoint is a transient diagnostic marker carried to observers by a
// ClientPushDebugPoint message, never consumed by simulation logic itself
// (spec 7, supplemented feature). No code in the simulator emits one.
type DebugPoint struct {
	Point model.WorldPoint
	Label string
}

// ClientStateMessageKind is the closed set of observer-only presentation
// messages; none of them feed back into authoritative state.
type ClientStateMessageKind int

const (
	ClientPushDebugPoint ClientStateMessageKind = iota
)

// ClientStateMessage is a tagged sum of observer-presentation-only events.
type ClientStateMessage struct {
	Kind       ClientStateMessageKind
	DebugPoint DebugPoint
}

// InputMessageKind is the closed set of observer -> simulator messages.
type InputMessageKind int

const (
	InputRequireCompleteSync InputMessageKind = iota
	InputBattleState
)

// InputMessage carries one observer -> simulator message.
type InputMessage struct {
	Kind        InputMessageKind
	BattleState battle.BattleStateMessage
}

// RequireCompleteSync requests a full LoadFromCopy reply.
func RequireCompleteSync() InputMessage { return InputMessage{Kind: InputRequireCompleteSync} }

// InputBattleStateMessage wraps a state mutation as observer input.
func InputBattleStateMessage(msg battle.BattleStateMessage) InputMessage {
	return InputMessage{Kind: InputBattleState, BattleState: msg}
}

// OutputMessageKind is the closed set of simulator -> observer messages.
type OutputMessageKind int

const (
	OutputLoadFromCopy OutputMessageKind = iota
	OutputBattleState
	OutputClientState
)

// OutputMessage carries one simulator -> observer message.
type OutputMessage struct {
	Kind        OutputMessageKind
	Copy        battle.BattleStateCopy
	BattleState battle.BattleStateMessage
	Client      ClientStateMessage
}

// LoadFromCopy builds a full-state-replace output message.
func LoadFromCopy(c battle.BattleStateCopy) OutputMessage {
	return OutputMessage{Kind: OutputLoadFromCopy, Copy: c}
}

// OutputBattleStateMessage wraps a state mutation as simulator output.
func OutputBattleStateMessage(msg battle.BattleStateMessage) OutputMessage {
	return OutputMessage{Kind: OutputBattleState, BattleState: msg}
}

// OutputClientStateMessage wraps a presentation-only event as simulator output.
func OutputClientStateMessage(msg ClientStateMessage) OutputMessage {
	return OutputMessage{Kind: OutputClientState, Client: msg}
}

// RunnerMessageKind is the closed set of simulator-internal messages
// produced while resolving a tick, before they're split into outbound
// ClientState/ClientsState traffic and BattleState-kind reactions.
type RunnerMessageKind int

const (
	RunnerBattleState RunnerMessageKind = iota
	RunnerClientsState
	RunnerClientState
)

// RunnerMessage carries one simulator-internal message.
type RunnerMessage struct {
	Kind        RunnerMessageKind
	BattleState battle.BattleStateMessage
	ClientState ClientStateMessage
	Observer    model.ObserverID // meaningful only for RunnerClientState
}

// RunnerBattleStateMessage wraps a state mutation as an internal runner message.
func RunnerBattleStateMessage(msg battle.BattleStateMessage) RunnerMessage {
	return RunnerMessage{Kind: RunnerBattleState, BattleState: msg}
}

// RunnerClientsStateMessage wraps a broadcast presentation event.
func RunnerClientsStateMessage(msg ClientStateMessage) RunnerMessage {
	return RunnerMessage{Kind: RunnerClientsState, ClientState: msg}
}

// RunnerClientStateMessage wraps a presentation event destined for one observer.
func RunnerClientStateMessage(observer model.ObserverID, msg ClientStateMessage) RunnerMessage {
	return RunnerMessage{Kind: RunnerClientState, Observer: observer, ClientState: msg}
}
