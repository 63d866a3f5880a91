// Package runner implements spec component G: the fixed-rate tick loop
// that drains observer input, resolves per-soldier behavior and movement,
// ticks explosion physics, reacts those mutations into BattleState, and
// forwards the tick's outbound messages — grounded on
// battle_server/src/runner/mod.rs and the teacher's single-threaded
// Game.Update tick shape (game.go).
package runner

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/physics"
	"github.com/tacsim/battlecore/internal/protocol"
	"github.com/tacsim/battlecore/internal/tactics"
)

// targetCycleMicros is the default fixed tick period (~60Hz), mirroring
// TARGET_CYCLE_DURATION_US in runner/mod.rs. Config.TargetCycleMicros
// overrides it per instance.
const targetCycleMicros = 16_666

// Runner is the authoritative simulator's tick-loop driver.
type Runner struct {
	cfg   config.Config
	state *battle.BattleState
	m     geo.Map
	rng   *rand.Rand
	log   *zap.Logger

	input  <-chan []protocol.InputMessage
	output chan<- []protocol.OutputMessage

	last time.Time
}

// New builds a Runner over an existing BattleState and map.
func New(cfg config.Config, state *battle.BattleState, m geo.Map, rng *rand.Rand, log *zap.Logger,
	input <-chan []protocol.InputMessage, output chan<- []protocol.OutputMessage) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, state: state, m: m, rng: rng, log: log, input: input, output: output, last: time.Now()}
}

// Run executes the tick loop until a fatal error occurs (input channel
// closed, or an output send onto a closed channel) — steps 1-8 of spec
// 4.G, one call to tick() per iteration.
func (r *Runner) Run() error {
	for {
		time.Sleep(r.sleepDuration())
		r.last = time.Now()
		if err := r.tick(); err != nil {
			return err
		}
		r.state.FrameI++
	}
}

// RunTicks advances the simulation exactly n ticks back-to-back, with no
// cadence sleep between them — the bounded, deterministic counterpart to
// Run used by headless batch tools, grounded on the teacher's own
// TestSim.RunTicks (test_harness.go).
func (r *Runner) RunTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := r.tick(); err != nil {
			return err
		}
		r.state.FrameI++
	}
	return nil
}

// sleepDuration returns how long to wait so the next cycle starts at
// least TargetCycleMicros after the last one began — zero if already
// late, mirroring sleep_duration (runner/mod.rs).
func (r *Runner) sleepDuration() time.Duration {
	target := time.Duration(targetCycleMicros) * time.Microsecond
	if r.cfg.TargetCycleMicros > 0 {
		target = time.Duration(r.cfg.TargetCycleMicros) * time.Microsecond
	}
	elapsed := time.Since(r.last)
	if elapsed >= target {
		return 0
	}
	return target - elapsed
}

// tick runs one full cycle: steps 2-7 of spec 4.G.
func (r *Runner) tick() error {
	frame := r.state.FrameI

	inputs, err := r.drainInput()
	if err != nil {
		return err
	}

	var runnerMessages []protocol.RunnerMessage
	runnerMessages = append(runnerMessages, translateInputs(inputs)...)
	runnerMessages = append(runnerMessages, r.soldierMessages(frame)...)
	runnerMessages = append(runnerMessages, r.physicsMessages(frame)...)
	runnerMessages = append(runnerMessages, r.expiredEffectMessages(frame)...)

	outbound := r.apply(runnerMessages, frame)
	outbound = append(outbound, r.fullSyncs(inputs)...)

	return r.send(outbound)
}

// drainInput performs a non-blocking drain of every batch currently
// queued on the input channel (spec 4.G step 2). A closed channel is
// fatal per spec ("An input channel closed is fatal").
func (r *Runner) drainInput() ([]protocol.InputMessage, error) {
	var all []protocol.InputMessage
	for {
		select {
		case batch, ok := <-r.input:
			if !ok {
				return nil, ErrInputChannelClosed
			}
			all = append(all, batch...)
		default:
			return all, nil
		}
	}
}

// fullSyncs answers every RequireCompleteSync input with a full-state
// snapshot (spec 4.H: OutputMessage::LoadFromCopy), bypassing the
// RunnerMessage/React pipeline entirely since it carries no mutation.
func (r *Runner) fullSyncs(inputs []protocol.InputMessage) []protocol.OutputMessage {
	var out []protocol.OutputMessage
	for _, in := range inputs {
		if in.Kind == protocol.InputRequireCompleteSync {
			out = append(out, protocol.LoadFromCopy(r.state.Copy()))
		}
	}
	return out
}

func translateInputs(inputs []protocol.InputMessage) []protocol.RunnerMessage {
	var out []protocol.RunnerMessage
	for _, in := range inputs {
		switch in.Kind {
		case protocol.InputBattleState:
			out = append(out, protocol.RunnerBattleStateMessage(in.BattleState))
		case protocol.InputRequireCompleteSync:
			// Answered by fullSyncs with a dedicated full-sync output, not
			// threaded through BattleState reaction.
		}
	}
	return out
}

// soldierMessages computes, for every living soldier, the under-fire decay
// (when under fire), behavior resolution and movement update messages for
// this tick (spec 4.G step 4), containing any per-soldier panic so one soldier's failure never
// aborts the tick (spec 7, "per-soldier failure logs and is skipped").
func (r *Runner) soldierMessages(frame int) []protocol.RunnerMessage {
	var out []protocol.RunnerMessage
	for _, s := range r.state.Soldiers() {
		if !s.IsAlive() {
			continue
		}
		if s.UnderFire.Exist() {
			out = append(out, protocol.RunnerBattleStateMessage(battle.Soldier(s.ID, battle.SoldierMessage{
				Kind: battle.SoldierDecayUnderFire, Amount: r.cfg.UnderFireDecayPerTick,
			})))
		}
		out = append(out, r.resolveSoldier(s)...)
	}
	return out
}

// resolveSoldier computes one soldier's behavior-resolution and movement
// messages, recovering any panic so it logs and is skipped rather than
// aborting the tick (spec 7).
func (r *Runner) resolveSoldier(s *model.Soldier) (out []protocol.RunnerMessage) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("soldier update panicked", zap.Int("soldier", int(s.ID)), zap.Any("recover", rec))
			out = nil
		}
	}()
	for _, msg := range tactics.Resolve(r.state, r.cfg, r.m, s) {
		out = append(out, protocol.RunnerBattleStateMessage(msg))
	}
	for _, msg := range tactics.MovementUpdate(r.state, r.cfg, s) {
		out = append(out, protocol.RunnerBattleStateMessage(msg))
	}
	return out
}

// physicsMessages ticks every effective explosion (spec 4.G step 5).
func (r *Runner) physicsMessages(frame int) []protocol.RunnerMessage {
	var out []protocol.RunnerMessage
	for _, msg := range physics.TickExplosions(r.state, r.cfg, frame, r.rng) {
		out = append(out, protocol.RunnerBattleStateMessage(msg))
	}
	return out
}

// expiredEffectMessages garbage-collects every explosion and projectile
// whose end-tick has passed, so BattleState's explosions/projectiles
// slices don't grow unboundedly over a long-running battle (spec 3: "live
// until their end-tick, then are garbage-collected at tick boundary").
func (r *Runner) expiredEffectMessages(frame int) []protocol.RunnerMessage {
	var out []protocol.RunnerMessage
	for _, e := range r.state.Explosions() {
		if frame > e.EndTick {
			out = append(out, protocol.RunnerBattleStateMessage(battle.RemoveExplosion(e.ID)))
		}
	}
	for _, p := range r.state.Projectiles() {
		if frame > p.EndTick {
			out = append(out, protocol.RunnerBattleStateMessage(battle.RemoveProjectile(p.ID)))
		}
	}
	return out
}

// apply reacts every BattleState-kind message into authoritative state,
// applies the resulting side effects, and assembles the tick's outbound
// message batch (spec 4.G step 6-7), mirroring Runner::react/side_effect
// (react.rs) generalized across a batch instead of one message at a time.
func (r *Runner) apply(messages []protocol.RunnerMessage, frame int) []protocol.OutputMessage {
	var outbound []protocol.OutputMessage
	var sideEffects []battle.SideEffect

	for _, msg := range messages {
		switch msg.Kind {
		case protocol.RunnerBattleState:
			sideEffects = append(sideEffects, r.state.React(msg.BattleState, frame)...)
			outbound = append(outbound, protocol.OutputBattleStateMessage(msg.BattleState))
		case protocol.RunnerClientsState:
			outbound = append(outbound, protocol.OutputClientStateMessage(msg.ClientState))
		case protocol.RunnerClientState:
			outbound = append(outbound, protocol.OutputClientStateMessage(msg.ClientState))
		}
	}

	for _, effect := range sideEffects {
		r.applySideEffect(effect)
	}

	return outbound
}

func (r *Runner) applySideEffect(effect battle.SideEffect) {
	switch effect.Kind {
	case battle.SideEffectSquadLeaderChanged:
		r.log.Info("squad leadership transferred", zap.Int("squad", int(effect.Squad)), zap.Int("new_leader", int(effect.Soldier)))
	case battle.SideEffectRefreshEntityAnimation:
		// Observer-only presentation concern; the simulator ignores it,
		// mirroring react.rs's "Server ignore this side effect".
	case battle.SideEffectSoldierFinishedBehavior:
		// Not emitted by this module's movement path: tactics.finishBehavior
		// emits SetBehavior/SetOrder directly instead.
	}
}

// send forwards outbound to the output channel, translating a send onto a
// closed channel into ErrOutputChannelClosed (spec 4.G: "a send to the
// output channel that fails with channel-closed is fatal").
func (r *Runner) send(outbound []protocol.OutputMessage) (err error) {
	if len(outbound) == 0 {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Join(ErrOutputChannelClosed, errors.New("send panicked"))
		}
	}()
	r.output <- outbound
	return nil
}
