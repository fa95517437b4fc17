package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BreakerConfig
	if err := yaml.Unmarshal(defaultBreakerYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultBreakerConfig() {
		t.Errorf("embedded defaults differ from DefaultBreakerConfig:\n%+v\n%+v", cfg, DefaultBreakerConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadBreakerCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaker.yaml")
	data := "balance:\n  amount_level1: 9\nturret:\n  auto_fire: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreaker(path)
	if err != nil {
		t.Fatalf("LoadBreaker failed: %v", err)
	}
	if cfg.Balance.AmountLevel1 != 9 || cfg.Turret.AutoFire {
		t.Errorf("overrides not applied: amount=%d autofire=%v", cfg.Balance.AmountLevel1, cfg.Turret.AutoFire)
	}
	if cfg.Balance.AmountLevel6 != DefaultBreakerConfig().Balance.AmountLevel6 {
		t.Error("keys missing from the file should keep their defaults")
	}
}

func TestLoadBreakerCustomPathErrors(t *testing.T) {
	if _, err := LoadBreaker(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("turret:\n  fire_rate: -1\n  projectiles: 0\n"), 0o644)
	_, err := LoadBreaker(path)
	if err == nil {
		t.Fatal("invalid values should be rejected")
	}
	for _, want := range []string{"fire_rate", "projectiles"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestApplyBreakerPreset(t *testing.T) {
	base := DefaultBreakerConfig()

	easy := base
	ApplyBreakerPreset(&easy, DifficultyEasy)
	if easy.Balance.AmountLevel6 >= base.Balance.AmountLevel6 || easy.Balance.MaxHitPointsRate >= base.Balance.MaxHitPointsRate {
		t.Errorf("easy should shrink waves: %+v", easy.Balance)
	}

	hard := base
	ApplyBreakerPreset(&hard, DifficultyHard)
	if hard.Balance.AmountLevel6 <= base.Balance.AmountLevel6 || hard.Balance.HugeFromLevel >= base.Balance.HugeFromLevel {
		t.Errorf("hard should grow waves: %+v", hard.Balance)
	}

	fixed := base
	ApplyBreakerPreset(&fixed, DifficultyFixed)
	if fixed.Balance.AmountLevel3 != base.Balance.AmountLevel1 || fixed.Balance.AmountLevel6 != base.Balance.AmountLevel1 {
		t.Errorf("fixed should flatten waves: %+v", fixed.Balance)
	}

	normal := base
	ApplyBreakerPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal should leave the config unchanged")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should be an error")
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("breaker")) == 0 {
		t.Error("breaker defaults should be embedded")
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("unknown game should have no defaults")
	}
}
