package core_test

import (
	"testing"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

func TestCompositionTotal(t *testing.T) {
	var c core.Composition
	c[core.TierNormal] = 2
	c[core.TierBig] = 1

	if got := c.Total(); got != 13 {
		t.Errorf("Total() = %d, expected 13", got)
	}
	if got := c.Stones(); got != 3 {
		t.Errorf("Stones() = %d, expected 3", got)
	}
}

func TestProgressUnfinalized(t *testing.T) {
	p := core.NewProgress(nil)
	p.RecordDestroyed(core.TierBig)

	if p.Completed() != 1 {
		t.Errorf("Completed() = %d, expected 1", p.Completed())
	}
	if p.Percent() != 0 {
		t.Errorf("Percent() = %v before Finalize, expected 0", p.Percent())
	}
}

func TestProgressFinalizeKeepsEarlyDestructions(t *testing.T) {
	p := core.NewProgress(nil)
	p.RecordDestroyed(core.TierNormal)
	p.RecordDestroyed(core.TierSmall)

	var c core.Composition
	c[core.TierNormal] = 2
	p.Finalize(c)

	if p.Total() != 6 || p.Completed() != 2 {
		t.Errorf("after Finalize total/completed = %d/%d, expected 6/2", p.Total(), p.Completed())
	}
}

func TestProgressNeverExceedsTotal(t *testing.T) {
	p := core.NewProgress(nil)
	var c core.Composition
	c[core.TierNormal] = 1
	p.Finalize(c)

	for i := 0; i < 10; i++ {
		p.RecordDestroyed(core.TierSmall)
	}
	if p.Completed() != p.Total() {
		t.Errorf("Completed() = %d, expected it capped at %d", p.Completed(), p.Total())
	}
	if p.Percent() != 100 {
		t.Errorf("Percent() = %v, expected 100", p.Percent())
	}
}

func TestProgressSubscribesToSource(t *testing.T) {
	var source platformcore.Signal[core.StoneEvent]
	p := core.NewProgress(&source)

	var percents []float64
	p.Changed.Connect(func(v float64) { percents = append(percents, v) })

	var c core.Composition
	c[core.TierSmall] = 4
	p.Finalize(c)
	source.Emit(core.StoneEvent{ID: 1, Tier: core.TierSmall})
	source.Emit(core.StoneEvent{ID: 2, Tier: core.TierSmall})

	if p.Completed() != 2 {
		t.Errorf("Completed() = %d, expected 2", p.Completed())
	}
	if last := percents[len(percents)-1]; last != 50 {
		t.Errorf("last percent = %v, expected 50", last)
	}

	p.Close()
	if source.Len() != 0 {
		t.Errorf("source still has %d listeners after Close", source.Len())
	}
	source.Emit(core.StoneEvent{ID: 3, Tier: core.TierSmall})
	if p.Completed() != 2 {
		t.Error("closed progress should ignore further events")
	}
}

func TestProgressReset(t *testing.T) {
	p := core.NewProgress(nil)
	var c core.Composition
	c[core.TierBig] = 1
	p.Finalize(c)
	p.RecordDestroyed(core.TierBig)
	p.Reset()

	if p.Completed() != 0 || p.Total() != 0 || p.Finalized() {
		t.Errorf("Reset left %d/%d finalized=%v", p.Completed(), p.Total(), p.Finalized())
	}
}
