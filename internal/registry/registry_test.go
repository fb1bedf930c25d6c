package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/watersort/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Resize(int, int)                      {}
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should be registered")
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("Create returned %q", g.ID())
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
