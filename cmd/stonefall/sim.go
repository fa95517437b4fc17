package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stonefall/internal/config"
	platformcore "github.com/vovakirdan/stonefall/internal/core"
	"github.com/vovakirdan/stonefall/internal/games/breaker"
	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

var (
	flagSimLevel   int
	flagSimTicks   int
	flagSimWidth   int
	flagSimHeight  int
	flagSimConfig  string
	flagSimDiff    string
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a level headless with an autopilot",
	Long: `Play one level without a terminal UI. The autopilot keeps the
cart under the lowest stone and fires constantly. Useful for checking
a config's balance or reproducing a seed.

Examples:
  stonefall sim
  stonefall sim --level 8 --seed 42
  stonefall sim --config ./my-breaker.yaml --difficulty hard -v`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level to play")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Give up after this many ticks")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Field width in columns")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Screen height in rows")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every destroyed stone")
}

// simResult summarizes a headless level.
type simResult struct {
	Level     int
	Phase     core.Phase
	Ticks     int
	Destroyed int
	Completed int
	Total     int
	Coins     int
}

func runSim(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagSimDiff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadBreaker(flagSimConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyBreakerPreset(&cfg, preset)

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	settings := breaker.SettingsFromConfig(cfg, platformcore.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
	})

	res := simulate(settings, flagSimLevel, seed, flagSimTicks, logger)

	fmt.Printf("Level %d: %s after %d ticks (%.1fs)\n",
		res.Level, res.Phase, res.Ticks, float64(res.Ticks)/float64(settings.TickRate))
	fmt.Printf("  seed:      %d\n", seed)
	fmt.Printf("  destroyed: %d\n", res.Destroyed)
	fmt.Printf("  progress:  %d/%d\n", res.Completed, res.Total)
	fmt.Printf("  coins:     %d\n", res.Coins)
}

// simulate plays level with the autopilot until it ends or maxTicks pass.
func simulate(settings core.Settings, level int, seed int64, maxTicks int, logger *log.Logger) simResult {
	profile := core.NewMemoryProfile()
	profile.SetCurrentLevel(level)

	w := core.NewWorld(settings, profile, seed, logger)
	defer w.Close()

	w.Lifecycle().Changed.Connect(func(p core.Phase) {
		logger.Info("phase changed", "phase", p, "tick", w.Tick())
	})
	w.StoneDestroyed.Connect(func(e core.StoneEvent) {
		logger.Debug("stone destroyed", "id", e.ID, "tier", e.Tier, "tick", w.Tick())
	})

	w.Start()
	dt := 1 / float64(settings.TickRate)
	for w.Tick() < maxTicks && !w.Phase().Terminal() {
		w.Step(dt, autopilot(w))
	}

	return simResult{
		Level:     w.Level(),
		Phase:     w.Phase(),
		Ticks:     w.Tick(),
		Destroyed: w.Destroyed(),
		Completed: w.Progress().Completed(),
		Total:     w.Progress().Total(),
		Coins:     w.Wallet().Coins(),
	}
}

// autopilot steers the cart under the lowest stone inside the field.
func autopilot(w *core.World) core.Controls {
	ctl := core.Controls{Fire: true}
	cfg := w.Settings()

	var lowest *core.Stone
	for _, s := range w.Stones() {
		if s.IsDestroyed() || s.Pos.X < 0 || s.Pos.X > cfg.Width {
			continue
		}
		if lowest == nil || s.Pos.Y > lowest.Pos.Y {
			lowest = s
		}
	}
	if lowest == nil {
		return ctl
	}

	dx := lowest.Pos.X - w.Cart().Target()
	if math.Abs(dx) > cfg.Cart.NudgeStep/2 {
		ctl.Nudge = math.Copysign(1, dx)
	}
	return ctl
}
