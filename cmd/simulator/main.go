// Command simulator runs the authoritative tactical simulator headlessly
// for a fixed number of ticks and prints a summary, grounded on the
// teacher's cmd/headless-report batch-runner style (flag-driven, plain
// stdout report, no windowing).
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/tacsim/battlecore/internal/battle"
	"github.com/tacsim/battlecore/internal/config"
	"github.com/tacsim/battlecore/internal/geo"
	"github.com/tacsim/battlecore/internal/model"
	"github.com/tacsim/battlecore/internal/protocol"
	"github.com/tacsim/battlecore/internal/runner"
)

func main() {
	var ticks int
	var seed int64
	var mapWidth, mapHeight, cellSize int
	var verbose bool

	flag.IntVar(&ticks, "ticks", 1800, "number of ticks to simulate")
	flag.Int64Var(&seed, "seed", 42, "RNG seed for explosion/bullet rolls")
	flag.IntVar(&mapWidth, "map-width", 64, "map width in cells")
	flag.IntVar(&mapHeight, "map-height", 64, "map height in cells")
	flag.IntVar(&cellSize, "cell-size", 16, "cell edge length in world units")
	flag.BoolVar(&verbose, "verbose", false, "log every squad-leadership change")
	flag.Parse()

	cfg := config.Default()
	cfg.CellSize = cellSize

	m := geo.NewGrid(mapWidth, mapHeight, cellSize, geo.TileShortGrass)
	state := buildMutualAdvanceScenario(cfg)

	logLevel := zap.WarnLevel
	if verbose {
		logLevel = zap.InfoLevel
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(logLevel)
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Printf("error: building logger: %v\n", err)
		return
	}
	defer logger.Sync()

	input := make(chan []protocol.InputMessage, 1)
	output := make(chan []protocol.OutputMessage, 64)
	rng := rand.New(rand.NewSource(seed))
	r := runner.New(cfg, state, m, rng, logger, input, output)

	fmt.Printf("=== Headless Battle Simulation ===\n")
	fmt.Printf("ticks=%d seed=%d map=%dx%d cell_size=%d\n\n", ticks, seed, mapWidth, mapHeight, cellSize)

	if err := r.RunTicks(ticks); err != nil {
		fmt.Printf("error: simulation aborted: %v\n", err)
		return
	}

	printSummary(state)
}

// buildMutualAdvanceScenario seeds two six-soldier squads facing each
// other, mirroring the teacher's WithRedSoldier/WithBlueSoldier mutual
// advance fixture (headless-report/main.go's runScenarioMutualAdvance),
// generalized onto this repository's own Soldier/Squad/Order shapes.
func buildMutualAdvanceScenario(cfg config.Config) *battle.BattleState {
	state := battle.New()

	redIDs := []model.SoldierID{1, 2, 3, 4, 5, 6}
	blueIDs := []model.SoldierID{7, 8, 9, 10, 11, 12}

	for i, id := range redIDs {
		s := &model.Soldier{
			ID: id, Side: model.SideRed, Squad: 100, Status: model.StatusAlive, Health: 100,
			Position: model.WorldPoint{X: 50, Y: 300 + float64(i-2)*28},
			Weapons:  []model.Weapon{{Kind: model.WeaponRifle, Name: "rifle"}},
		}
		state.AddSoldier(s)
	}
	for i, id := range blueIDs {
		s := &model.Soldier{
			ID: id, Side: model.SideBlue, Squad: 200, Status: model.StatusAlive, Health: 100,
			Position: model.WorldPoint{X: 950, Y: 300 + float64(i-2)*28},
			Weapons:  []model.Weapon{{Kind: model.WeaponRifle, Name: "rifle"}},
		}
		state.AddSoldier(s)
	}

	state.AddSquad(model.NewSquad(100, model.SideRed, redIDs))
	state.AddSquad(model.NewSquad(200, model.SideBlue, blueIDs))

	advance := model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 950, Y: 300}}))
	state.React(battle.Soldier(1, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: advance}), 0)
	counterAdvance := model.MoveToOrder(model.NewWorldPath([]model.WorldPoint{{X: 50, Y: 300}}))
	state.React(battle.Soldier(7, battle.SoldierMessage{Kind: battle.SoldierSetOrder, Order: counterAdvance}), 0)

	return state
}

func printSummary(state *battle.BattleState) {
	redAlive, blueAlive, redTotal, blueTotal := 0, 0, 0, 0
	for _, s := range state.Soldiers() {
		switch s.Side {
		case model.SideRed:
			redTotal++
			if s.IsAlive() {
				redAlive++
			}
		case model.SideBlue:
			blueTotal++
			if s.IsAlive() {
				blueAlive++
			}
		}
	}
	fmt.Printf("final_frame=%d\n", state.FrameI)
	fmt.Printf("survivors: red=%d/%d blue=%d/%d\n", redAlive, redTotal, blueAlive, blueTotal)
	fmt.Printf("explosions=%d projectiles=%d\n", len(state.Explosions()), len(state.Projectiles()))
}
