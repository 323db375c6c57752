package board

import (
	"errors"
	"math/rand"
	"testing"
)

func TestToStateShape(t *testing.T) {
	b := newTestBoard(t, 30, 20, 10, 0)
	state := b.ToState()

	if state.Width != 30 || state.Height != 20 || state.CellSize != 10 {
		t.Fatalf("unexpected header %d/%d/%d", state.Width, state.Height, state.CellSize)
	}
	if len(state.Cells) != b.Rows() {
		t.Fatalf("expected %d rows, got %d", b.Rows(), len(state.Cells))
	}
	if len(state.Cells[0]) != b.Columns() {
		t.Fatalf("expected %d columns, got %d", b.Columns(), len(state.Cells[0]))
	}
}

func TestStateRoundTripPreservesCells(t *testing.T) {
	original, err := New(120, 80, 10, WithDensity(0.4), WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("new board: %v", err)
	}

	restored, err := FromState(original.ToState(), WithRand(rand.New(rand.NewSource(99))))
	if err != nil {
		t.Fatalf("from state: %v", err)
	}

	if restored.Columns() != original.Columns() || restored.Rows() != original.Rows() {
		t.Fatalf("grid changed: %dx%d -> %dx%d", original.Columns(), original.Rows(), restored.Columns(), restored.Rows())
	}
	for x := 0; x < original.Columns(); x++ {
		for y := 0; y < original.Rows(); y++ {
			if original.Alive(x, y) != restored.Alive(x, y) {
				t.Fatalf("cell (%d, %d) differs after round trip", x, y)
			}
		}
	}
}

func TestFromStateIsRowMajor(t *testing.T) {
	state := State{
		Width:    30,
		Height:   20,
		CellSize: 10,
		Cells: [][]CellState{
			{{Alive: false}, {Alive: false}, {Alive: true}},
			{{Alive: true}, {Alive: false}, {Alive: false}},
		},
	}
	b, err := FromState(state)
	if err != nil {
		t.Fatalf("from state: %v", err)
	}
	if !b.Alive(2, 0) || !b.Alive(0, 1) {
		t.Fatal("expected cells (2, 0) and (0, 1) alive")
	}
	if got := b.CountAlive(); got != 2 {
		t.Fatalf("expected 2 live cells, got %d", got)
	}
}

func TestFromStateRejectsMismatchedCells(t *testing.T) {
	tests := []struct {
		name  string
		cells [][]CellState
	}{
		{name: "missing row", cells: [][]CellState{{{}, {}}}},
		{name: "short row", cells: [][]CellState{{{}, {}}, {{}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromState(State{Width: 2, Height: 2, CellSize: 1, Cells: tc.cells})
			if !errors.Is(err, ErrStateShape) {
				t.Fatalf("expected ErrStateShape, got %v", err)
			}
		})
	}
}
