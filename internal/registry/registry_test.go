package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/stonefall/internal/core"
)

type stubGame struct {
	title string
	desc  string
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestRegisterAndCreate(t *testing.T) {
	id := uniqueID("plain")
	Register(id, func() Game { return &stubGame{title: "Plain"} })

	if !Exists(id) {
		t.Fatalf("Exists(%q) = false after Register", id)
	}
	g, err := Create(id)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.Title() != "Plain" {
		t.Errorf("Title() = %q, expected Plain", g.Title())
	}

	var found *GameInfo
	for _, info := range List() {
		if info.ID == id {
			found = &info
		}
	}
	if found == nil {
		t.Fatal("registered game missing from List()")
	}
	if found.Title != "Plain" || found.Description != "" {
		t.Errorf("info = %+v", *found)
	}
}

func TestRegisterDescriber(t *testing.T) {
	id := uniqueID("described")
	Register(id, func() Game {
		return &describedGame{stubGame{title: "Described", desc: "has a blurb"}}
	})

	for _, info := range List() {
		if info.ID == id && info.Description != "has a blurb" {
			t.Errorf("Description = %q", info.Description)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no_such_game") {
		t.Error("Exists should be false for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	id := uniqueID("dup")
	f := func() Game { return &stubGame{title: "Dup"} }
	Register(id, f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(id, f)
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
