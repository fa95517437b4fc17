package storage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

// DefaultPrefsApp is the gdata application name for local play.
const DefaultPrefsApp = "stonefall"

const (
	prefsObject   = "profile"
	prefsProperty = "state"
)

// prefsState is the YAML payload saved by Prefs.
type prefsState struct {
	Level    int                `yaml:"level"`
	Coins    int                `yaml:"coins"`
	Upgrades core.UpgradeLevels `yaml:"upgrades"`
}

func defaultPrefsState() prefsState {
	return prefsState{Level: 1}
}

// Prefs is a core.Profile kept in the user's data directory via gdata.
// When the data directory is unavailable it keeps state in memory only.
type Prefs struct {
	manager *gdata.Manager // nil in memory-only mode
	state   prefsState
	logger  *log.Logger
}

// OpenPrefs opens the profile for appName. A failure to open the data
// directory is logged and yields a memory-only profile, never an error.
func OpenPrefs(appName string, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Prefs{state: defaultPrefsState(), logger: logger}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("prefs: data directory unavailable, progress will not be saved", "err", err)
		return p
	}
	p.manager = manager

	if err := p.load(); err != nil {
		logger.Warn("prefs: cannot load saved profile, starting fresh", "err", err)
		p.state = defaultPrefsState()
	}
	return p
}

// Persistent reports whether changes are written to disk.
func (p *Prefs) Persistent() bool {
	return p.manager != nil
}

func (p *Prefs) load() error {
	if !p.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := p.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("prefs: load: %w", err)
	}
	state := defaultPrefsState()
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("prefs: decode: %w", err)
	}
	if state.Level < 1 {
		state.Level = 1
	}
	p.state = state
	return nil
}

func (p *Prefs) save() {
	if p.manager == nil {
		return
	}
	data, err := yaml.Marshal(p.state)
	if err != nil {
		p.logger.Error("prefs: encode failed", "err", err)
		return
	}
	if err := p.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		p.logger.Error("prefs: save failed", "err", err)
	}
}

func (p *Prefs) CurrentLevel() int {
	return p.state.Level
}

func (p *Prefs) SetCurrentLevel(level int) {
	p.state.Level = max(level, 1)
	p.save()
}

func (p *Prefs) Coins() int {
	return p.state.Coins
}

func (p *Prefs) SaveCoins(coins int) {
	p.state.Coins = coins
	p.save()
}

func (p *Prefs) Upgrades() core.UpgradeLevels {
	return p.state.Upgrades
}

func (p *Prefs) SaveUpgrades(l core.UpgradeLevels) {
	p.state.Upgrades = l
	p.save()
}

func (p *Prefs) Reset() {
	p.state = defaultPrefsState()
	p.save()
}

var _ core.Profile = (*Prefs)(nil)
