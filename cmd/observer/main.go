// Command observer is the connected client's input-facing half: it polls
// mouse/keyboard state every frame with ebiten, folds it through
// internal/observer's pure GuiState machine, and forwards the resulting
// InputMessages toward a simulator. It never touches ebiten's drawing,
// audio, or asset-loading APIs — rendering the battle is out of scope
// here (spec Non-goals) and belongs to a presentation layer this binary
// doesn't implement.
package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/observer"
	"github.com/tacsim/battlecore/internal/protocol"
)

// ErrQuit cleanly exits the program, mirroring the teacher's
// game.ErrQuit sentinel-error control-flow style (game.go).
var ErrQuit = errors.New("quit observer")

// client drives one connected observer's input loop: polled ebiten state
// folds through observer.Apply, and any resulting InputMessages are
// queued for the simulator side of the wire.
type client struct {
	cfg   config.Config
	m     geo.Map
	state observer.GuiState

	// localBattle is the observer's own last-synced copy of the battle,
	// consulted only to resolve squad-leader lookups and drag targets
	// before constructing a UIEvent — never mutated directly by input.
	localBattle *battle.BattleState

	outbound []protocol.InputMessage

	prevLeft, prevRight bool
}

func newClient(side model.Side, cfg config.Config, m geo.Map) *client {
	return &client{
		cfg:         cfg,
		m:           m,
		state:       observer.NewGuiState(side, cfg),
		localBattle: battle.New(),
	}
}

func (c *client) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	c.state.FrameI++

	c.pollKeyboardPan()
	c.pollCursor()
	c.pollWheel()
	c.pollMouseButtons()

	return nil
}

func (c *client) pollKeyboardPan() {
	const normal, fast = 2.0, 15.0
	speed := normal
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed = fast
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= speed
	}
	if dx == 0 && dy == 0 {
		return
	}
	c.apply(observer.UIEvent{Kind: observer.EventKeyPan, PanOffset: model.Offset{X: dx, Y: dy}})
}

func (c *client) pollCursor() {
	x, y := ebiten.CursorPosition()
	c.apply(observer.UIEvent{Kind: observer.EventCursorMove, Point: observer.WindowPoint{X: float64(x), Y: float64(y)}})
}

func (c *client) pollWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	x, y := ebiten.CursorPosition()
	c.apply(observer.UIEvent{
		Kind: observer.EventMouseWheel, WheelUp: wy > 0,
		ScreenCenter: observer.WindowPoint{X: float64(x), Y: float64(y)},
	})
}

func (c *client) pollMouseButtons() {
	x, y := ebiten.CursorPosition()
	point := observer.WindowPoint{X: float64(x), Y: float64(y)}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !c.prevLeft {
		c.apply(observer.UIEvent{Kind: observer.EventLeftMouseDown, Point: point})
	}
	if !left && c.prevLeft {
		event := observer.UIEvent{Kind: observer.EventLeftMouseUp, Point: point, Fast: ebiten.IsKeyPressed(ebiten.KeyShift)}
		if c.state.PendingOrder != nil {
			if s, ok := c.localBattle.Soldier(c.state.PendingOrder.LeaderID); ok {
				event.From = s.Position
			}
		}
		c.apply(event)
	}
	c.prevLeft = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !right && c.prevRight {
		c.apply(observer.UIEvent{Kind: observer.EventRightMouseUp, Point: point})
	}
	c.prevRight = right
}

func (c *client) apply(event observer.UIEvent) {
	var out []protocol.InputMessage
	c.state, out = observer.Apply(c.state, c.cfg, c.m, event)
	c.outbound = append(c.outbound, out...)
}

// Draw is required by ebiten.Game but intentionally does nothing: this
// binary is an input source, not a renderer.
func (c *client) Draw(*ebiten.Image) {}

// Layout uses the outside window size as the logical size; no scene is
// ever drawn into it.
func (c *client) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	cfg := config.Default()
	m := geo.NewGrid(64, 64, cfg.CellSize, geo.TileShortGrass)
	c := newClient(model.SideBlue, cfg, m)

	ebiten.SetWindowTitle("Tactical Observer — input only")
	if err := ebiten.RunGame(c); err != nil && !errors.Is(err, ErrQuit) {
		log.Fatal(err)
	}
}
