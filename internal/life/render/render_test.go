package render

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/louisbranch/cli-life/internal/life/board"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(3, 2, 1, board.WithDensity(0), board.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	b.SetAlive(0, 0, true)
	b.SetAlive(2, 1, true)
	return b
}

func TestTextRendersRows(t *testing.T) {
	var buf bytes.Buffer
	if err := NewText(&buf, false).Render(Frame{Board: testBoard(t)}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := buf.String(), "*  \n  *\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextClearsAndWritesStatus(t *testing.T) {
	var buf bytes.Buffer
	frame := Frame{Board: testBoard(t), Generation: 4, Status: "Generation 4  Alive 2"}
	if err := NewText(&buf, true).Render(frame); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := ClearScreen + "*  \n  *\nGeneration 4  Alive 2\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestTextRequiresBoard(t *testing.T) {
	if err := NewText(&bytes.Buffer{}, false).Render(Frame{}); err == nil {
		t.Fatal("expected error for missing board")
	}
}

func TestScreenDrawsCellsAndStatus(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(10, 4)

	if err := NewScreen(sim).Render(Frame{Board: testBoard(t), Status: "ok"}); err != nil {
		t.Fatalf("render: %v", err)
	}

	cells, width, _ := sim.GetContents()
	at := func(x, y int) rune {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	if at(0, 0) != '*' || at(2, 1) != '*' {
		t.Fatal("expected live cells drawn as '*'")
	}
	if at(1, 0) != ' ' {
		t.Fatalf("expected dead cell blank, got %q", at(1, 0))
	}
	if at(0, 2) != 'o' || at(1, 2) != 'k' {
		t.Fatal("expected status line under the grid")
	}
}

func TestScreenWriteKeepsFrame(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(20, 5)

	screen := NewScreen(sim)
	if err := screen.Render(Frame{Board: testBoard(t)}); err != nil {
		t.Fatalf("render: %v", err)
	}
	n, err := screen.Write([]byte("hi\nyo\n"))
	if err != nil || n != 6 {
		t.Fatalf("write = %d, %v", n, err)
	}

	cells, width, _ := sim.GetContents()
	at := func(x, y int) rune {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	if at(0, 0) != '*' || at(2, 1) != '*' {
		t.Fatal("expected the frame to survive a message")
	}
	if got := string([]rune{at(0, 4), at(1, 4), at(2, 4), at(3, 4), at(4, 4)}); got != "hi yo" {
		t.Fatalf("bottom line = %q, want %q", got, "hi yo")
	}
}
