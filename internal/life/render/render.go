// Package render draws boards to text streams and terminal screens.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/louisbranch/cli-life/internal/life/board"
)

// ClearScreen homes the cursor and clears an ANSI terminal.
const ClearScreen = "\x1b[H\x1b[2J"

const (
	aliveRune = '*'
	deadRune  = ' '
)

// Frame is one rendered generation.
type Frame struct {
	Board      *board.Board
	Generation int
	// Status is an optional line shown under the grid.
	Status string
}

// Text writes frames to a stream, one row per line, '*' for alive and a
// space for dead.
type Text struct {
	w     io.Writer
	clear bool
}

// NewText returns a text renderer. With clear set, every frame starts
// with ClearScreen.
func NewText(w io.Writer, clear bool) *Text {
	return &Text{w: w, clear: clear}
}

// Render writes one frame.
func (t *Text) Render(frame Frame) error {
	if frame.Board == nil {
		return errors.New("frame board is required")
	}
	b := frame.Board
	bw := bufio.NewWriterSize(t.w, (b.Columns()+1)*b.Rows()+len(ClearScreen)+len(frame.Status)+1)
	if t.clear {
		bw.WriteString(ClearScreen)
	}
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Columns(); col++ {
			if b.Alive(col, row) {
				bw.WriteByte(aliveRune)
			} else {
				bw.WriteByte(deadRune)
			}
		}
		bw.WriteByte('\n')
	}
	if frame.Status != "" {
		bw.WriteString(frame.Status)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
