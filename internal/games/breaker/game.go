// Package breaker adapts the stone breaker simulation to the game platform:
// it maps actions to controls, manages level progression and draws the field.
package breaker

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stonefall/internal/config"
	platformcore "github.com/vovakirdan/stonefall/internal/core"
	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
	"github.com/vovakirdan/stonefall/internal/registry"
)

// Glyphs
const (
	StoneChar      = '█'
	FrozenChar     = '▓'
	CartChar       = '▀'
	TurretChar     = '▲'
	ProjectileChar = '|'
	SeparatorChar  = '─'
)

const (
	hudRows    = 2
	minScreenW = 40
	minScreenH = 16
)

// Mode selects how the game moves between levels.
type Mode int

const (
	ModeCampaign Mode = iota // Wait for the player after a passed level
	ModeEndless              // Advance to the next level automatically
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements registry.Game on top of core.World.
type Game struct {
	mode    Mode
	runtime platformcore.RuntimeConfig
	cfg     config.BreakerConfig
	world   *core.World
	profile core.Profile
	logger  *log.Logger

	settings core.Settings
	fieldX   int // Screen column of field x = 0
	tooSmall bool

	paused     bool
	score      int // Stones destroyed this session
	levelBase  int // Score when the current level started
	attempts   int64
	advanceIn  int // Endless: ticks until the next level
	notice     string
	noticeTTL  int
	levelEnded *platformcore.LevelResult
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a game that advances levels on its own.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "breaker_endless"
	}
	return "breaker"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Stonefall (Endless)"
	}
	return "Stonefall"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Levels follow each other without a break"
	}
	return "Shatter the falling stones before they crush your cart"
}

// SetProfile sets where level, coins and upgrades are kept.
// Takes effect on the next Reset. Nil means an in-memory profile.
func (g *Game) SetProfile(p core.Profile) {
	g.profile = p
}

// Profile returns the profile in use.
func (g *Game) Profile() core.Profile {
	return g.profile
}

// SetLogger sets the logger passed to the simulation.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// World returns the current level's simulation.
func (g *Game) World() *core.World {
	return g.world
}

// Reset loads the config and builds an idle level from the profile.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.profile == nil {
		g.profile = core.NewMemoryProfile()
	}

	cfg, err := config.LoadBreaker(configPath)
	if err != nil {
		g.logger.Warn("breaker: using default config", "err", err)
		cfg = config.DefaultBreakerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.settings = SettingsFromConfig(cfg, runtime)
	g.fieldX = (runtime.ScreenW - int(g.settings.Width)) / 2

	g.paused = false
	g.score = 0
	g.levelBase = 0
	g.attempts = 0
	g.newWorld()
}

// SettingsFromConfig converts the YAML config to simulation settings and
// fits the field into the screen below the HUD.
func SettingsFromConfig(cfg config.BreakerConfig, rt platformcore.RuntimeConfig) core.Settings {
	w := rt.ScreenW
	if cfg.Field.Width > 0 && cfg.Field.Width < w {
		w = cfg.Field.Width
	}
	h := rt.ScreenH - hudRows
	if cfg.Field.Height > 0 && cfg.Field.Height < h {
		h = cfg.Field.Height
	}

	return core.Settings{
		Width:    float64(max(w, 1)),
		Height:   float64(max(h, 1)),
		TickRate: rt.TickRate,
		Balance: core.Balance{
			MaxHitPointsRate:       cfg.Balance.MaxHitPointsRate,
			MinHitPointsPercentage: cfg.Balance.MinHitPointsPercentage,
			AmountLevel1:           cfg.Balance.AmountLevel1,
			AmountLevel3:           cfg.Balance.AmountLevel3,
			AmountLevel6:           cfg.Balance.AmountLevel6,
			HugeFromLevel:          cfg.Balance.HugeFromLevel,
			SpawnInterval:          cfg.Balance.SpawnInterval,
		},
		Stones: core.StoneSettings{
			Gravity:         cfg.Stones.Gravity,
			ReboundSpeed:    cfg.Stones.ReboundSpeed,
			HorizontalSpeed: cfg.Stones.HorizontalSpeed,
			GravityOffset:   cfg.Stones.GravityOffset,
			SpawnUpForce:    cfg.Stones.SpawnUpForce,
			BaseRadius:      cfg.Stones.BaseRadius,
			CoinChance:      cfg.Stones.CoinChance,
			BonusChance:     cfg.Stones.BonusChance,
		},
		Turret: core.TurretSettings{
			FireRate:           cfg.Turret.FireRate,
			Damage:             cfg.Turret.Damage,
			Projectiles:        cfg.Turret.Projectiles,
			ProjectileInterval: cfg.Turret.ProjectileInterval,
			ProjectileSpeed:    cfg.Turret.ProjectileSpeed,
			ProjectileLifetime: cfg.Turret.ProjectileLifetime,
			AutoFire:           cfg.Turret.AutoFire,
		},
		Cart: core.CartSettings{
			Speed:     cfg.Cart.Speed,
			Width:     cfg.Cart.Width,
			NudgeStep: cfg.Cart.NudgeStep,
		},
		Pickups: core.PickupSettings{
			CoinValue: cfg.Pickups.CoinValue,
			FallSpeed: cfg.Pickups.FallSpeed,
			Lifetime:  cfg.Pickups.Lifetime,
		},
		Effects: core.EffectSettings{
			FreezeSeconds:        cfg.Effects.FreezeSeconds,
			InvincibilitySeconds: cfg.Effects.InvincibilitySeconds,
		},
		Upgrades: core.UpgradeSettings{
			BaseCost:     cfg.Upgrades.BaseCost,
			CostPerLevel: cfg.Upgrades.CostPerLevel,
		},
	}
}

// newWorld replaces the current level with an idle one built from the
// profile. Every attempt gets its own seed derived from the runtime seed.
func (g *Game) newWorld() {
	if g.world != nil {
		g.world.Close()
	}
	seed := g.runtime.Seed + g.attempts
	g.attempts++

	w := core.NewWorld(g.settings, g.profile, seed, g.logger)
	w.Lifecycle().Passed.Connect(func(struct{}) { g.onLevelEnd(true) })
	w.Lifecycle().Defeated.Connect(func(struct{}) { g.onLevelEnd(false) })
	g.world = w
	g.advanceIn = 0
	g.levelEnded = nil
}

func (g *Game) onLevelEnd(passed bool) {
	g.levelEnded = &platformcore.LevelResult{
		Level:  g.world.Level(),
		Passed: passed,
		Stones: g.world.Destroyed(),
		Coins:  g.world.Wallet().Coins(),
		Ticks:  g.world.Tick(),
	}
	if passed && g.mode == ModeEndless {
		g.advanceIn = 2 * max(g.runtime.TickRate, 1)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.tooSmall || g.world == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if g.noticeTTL > 0 {
		g.noticeTTL--
	}

	phase := g.world.Phase()

	if in.Has(platformcore.ActionPause) && !phase.Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	switch phase {
	case core.PhaseIdle:
		g.handleIdle(in)
	case core.PhasePassed:
		if in.Has(platformcore.ActionNext) {
			g.nextLevel()
		} else if in.Has(platformcore.ActionRetry) {
			g.retryLevel()
		} else if in.Has(platformcore.ActionRestart) {
			g.restartCampaign()
		}
	case core.PhaseDefeated:
		if in.Has(platformcore.ActionRetry) {
			g.retryLevel()
		} else if in.Has(platformcore.ActionRestart) {
			g.restartCampaign()
		}
	}

	controls := core.Controls{Fire: in.Has(platformcore.ActionFire)}
	if in.Has(platformcore.ActionLeft) {
		controls.Nudge--
	}
	if in.Has(platformcore.ActionRight) {
		controls.Nudge++
	}
	g.world.Step(g.runtime.TickSeconds(), controls)
	g.score = g.levelBase + g.world.Destroyed()

	result := platformcore.StepResult{State: g.State(), LevelEnded: g.levelEnded}
	g.levelEnded = nil

	if g.advanceIn > 0 {
		g.advanceIn--
		if g.advanceIn == 0 {
			g.nextLevel()
		}
	}
	return result
}

// handleIdle starts the level or buys upgrades.
func (g *Game) handleIdle(in platformcore.InputFrame) {
	upgrades := []struct {
		action  platformcore.Action
		upgrade core.Upgrade
	}{
		{platformcore.ActionUpgradeDamage, core.UpgradeDamage},
		{platformcore.ActionUpgradeFireRate, core.UpgradeFireRate},
		{platformcore.ActionUpgradeProjectiles, core.UpgradeProjectiles},
	}
	for _, u := range upgrades {
		if !in.Has(u.action) {
			continue
		}
		if err := g.world.BuyUpgrade(u.upgrade); err != nil {
			g.setNotice(fmt.Sprintf("%s: need $%d", u.upgrade, g.world.NextUpgradeCost(u.upgrade)))
		} else {
			g.setNotice(fmt.Sprintf("%s upgraded", u.upgrade))
		}
	}

	if in.Has(platformcore.ActionStart) || in.Has(platformcore.ActionFire) {
		g.world.Start()
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTTL = 2 * max(g.runtime.TickRate, 1)
}

// nextLevel saves the wallet, bumps the persisted level and builds it.
func (g *Game) nextLevel() {
	g.profile.SaveCoins(g.world.Wallet().Coins())
	g.profile.SetCurrentLevel(g.world.Level() + 1)
	g.levelBase = g.score
	g.newWorld()
}

// retryLevel replays the current level with the coins saved before it.
func (g *Game) retryLevel() {
	g.score = g.levelBase
	g.newWorld()
}

// restartCampaign wipes the profile and starts again from level 1.
func (g *Game) restartCampaign() {
	g.profile.Reset()
	g.score = 0
	g.levelBase = 0
	g.newWorld()
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:  g.score,
		Paused: g.paused,
	}
	if g.world != nil {
		st.Level = g.world.Level()
		st.GameOver = g.world.Phase() == core.PhaseDefeated
	}
	return st
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.world == nil {
		return
	}

	g.renderHUD(dst)
	g.renderStones(dst)
	g.renderPickups(dst)
	g.renderProjectiles(dst)
	g.renderCart(dst)
	g.renderOverlay(dst)
}

// cell converts field coordinates to a screen cell.
func (g *Game) cell(x, y float64) (int, int) {
	return g.fieldX + int(math.Floor(x)), hudRows + int(math.Floor(y))
}

func (g *Game) inField(cx, cy int) bool {
	return cx >= g.fieldX && cx < g.fieldX+int(g.settings.Width) &&
		cy >= hudRows && cy < hudRows+int(g.settings.Height)
}

// renderHUD draws level, wave progress and coins, then effects or upgrade
// prices on the second row.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	w := g.world

	dst.DrawText(1, 0, fmt.Sprintf("Level %d", w.Level()))

	progress := "Wave --"
	if w.Progress().Finalized() {
		progress = fmt.Sprintf("Wave %3.0f%%", w.Progress().Percent())
	}
	dst.DrawTextCentered(0, progress)

	coins := fmt.Sprintf("$ %d", w.Wallet().Coins())
	dst.DrawTextColored(dst.Width()-len(coins)-1, 0, coins, platformcore.ColorYellow)

	var line string
	switch {
	case g.noticeTTL > 0:
		line = g.notice
	case w.Phase() == core.PhaseIdle:
		line = g.upgradeLine()
	default:
		line = g.effectsLine()
	}
	if line == "" {
		dst.DrawHLine(0, 1, dst.Width(), SeparatorChar)
		return
	}
	dst.DrawText(1, 1, line)
}

func (g *Game) upgradeLine() string {
	lv := g.world.Turret().Upgrades()
	return fmt.Sprintf("[1] dmg %d $%d  [2] rate %d $%d  [3] shots %d $%d",
		lv.Damage, g.world.NextUpgradeCost(core.UpgradeDamage),
		lv.FireRate, g.world.NextUpgradeCost(core.UpgradeFireRate),
		lv.Projectiles, g.world.NextUpgradeCost(core.UpgradeProjectiles))
}

func (g *Game) effectsLine() string {
	s := g.world.Scheduler()
	rate := max(g.runtime.TickRate, 1)
	line := ""
	for _, name := range []core.EffectName{core.EffectFreeze, core.EffectInvincibility} {
		if !s.Active(name) {
			continue
		}
		if line != "" {
			line += " "
		}
		line += fmt.Sprintf("%s(%d)", name, (s.Remaining(name)+rate-1)/rate)
	}
	return line
}

// renderStones fills each stone's ellipse and writes its hit points
// in the middle.
func (g *Game) renderStones(dst *platformcore.Screen) {
	base := g.settings.Stones.BaseRadius
	for _, s := range g.world.Stones() {
		r := s.Radius(base)
		hw := s.HalfWidth(base)
		glyph, color := StoneChar, s.Color
		if g.world.Frozen() {
			glyph, color = FrozenChar, platformcore.ColorCyan
		}

		for y := math.Floor(s.Pos.Y - r); y <= s.Pos.Y+r; y++ {
			for x := math.Floor(s.Pos.X - hw); x <= s.Pos.X+hw; x++ {
				if !s.Contains(core.Vec2{X: x + 0.5, Y: y + 0.5}, base) {
					continue
				}
				if cx, cy := g.cell(x, y); g.inField(cx, cy) {
					dst.SetColored(cx, cy, glyph, color)
				}
			}
		}

		label := s.Label()
		cx, cy := g.cell(s.Pos.X-float64(len(label))/2, s.Pos.Y)
		for i, ch := range label {
			if g.inField(cx+i, cy) {
				dst.SetColored(cx+i, cy, ch, platformcore.ColorBrightWhite)
			}
		}
	}
}

func (g *Game) renderPickups(dst *platformcore.Screen) {
	for _, p := range g.world.Pickups() {
		cx, cy := g.cell(p.Pos.X, p.Pos.Y)
		if !g.inField(cx, cy) {
			continue
		}
		color := platformcore.ColorYellow
		switch p.Kind {
		case core.PickupFreeze:
			color = platformcore.ColorCyan
		case core.PickupInvincibility:
			color = platformcore.ColorMagenta
		}
		dst.SetColored(cx, cy, p.Kind.Glyph(), color)
	}
}

func (g *Game) renderProjectiles(dst *platformcore.Screen) {
	for _, p := range g.world.Projectiles() {
		if cx, cy := g.cell(p.Pos.X, p.Pos.Y); g.inField(cx, cy) {
			dst.SetColored(cx, cy, ProjectileChar, platformcore.ColorBrightWhite)
		}
	}
}

func (g *Game) renderCart(dst *platformcore.Screen) {
	cart := g.world.Cart()
	minX, minY, maxX, _ := cart.Bounds(g.settings.Height)

	color := platformcore.ColorBrightGreen
	switch {
	case g.world.Phase() == core.PhaseDefeated:
		color = platformcore.ColorRed
	case cart.Invincible():
		color = platformcore.ColorBrightYellow
	}

	left, cy := g.cell(minX, minY)
	right, _ := g.cell(maxX, minY)
	mid, _ := g.cell(cart.X, minY)
	for cx := left; cx < right; cx++ {
		glyph := CartChar
		if cx == mid {
			glyph = TurretChar
		}
		if g.inField(cx, cy) {
			dst.SetColored(cx, cy, glyph, color)
		}
	}
}

// renderOverlay draws phase messages.
func (g *Game) renderOverlay(dst *platformcore.Screen) {
	w := g.world
	if g.paused {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}

	switch w.Phase() {
	case core.PhaseIdle:
		g.drawCenteredBox(dst, fmt.Sprintf("LEVEL %d", w.Level()),
			fmt.Sprintf("%d stones  |  ENTER to start  |  1-3 upgrade", w.Spawner().Quota()))

	case core.PhasePassed:
		subtitle := "N next  |  T replay  |  R restart"
		if g.mode == ModeEndless {
			rate := max(g.runtime.TickRate, 1)
			subtitle = fmt.Sprintf("Next level in %d...", (g.advanceIn+rate-1)/rate)
		}
		g.drawCenteredBox(dst, "LEVEL CLEARED", subtitle)

	case core.PhaseDefeated:
		subtitle := fmt.Sprintf("Stones: %d  |  T retry  |  R restart", g.score)
		g.drawCenteredBox(dst, "CRUSHED", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *platformcore.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(platformcore.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(platformcore.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Register the games with the registry
func init() {
	registry.Register("breaker", func() registry.Game {
		return New()
	})
	registry.Register("breaker_endless", func() registry.Game {
		return NewEndless()
	})
}
