package render

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var (
	aliveStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	deadStyle   = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// Screen draws frames on a full-screen terminal. Cells past the screen
// edge are clipped.
type Screen struct {
	screen tcell.Screen
}

// NewScreen wraps an initialised tcell screen.
func NewScreen(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

// Render draws one frame and shows it.
func (s *Screen) Render(frame Frame) error {
	if frame.Board == nil {
		return errors.New("frame board is required")
	}
	b := frame.Board
	s.screen.Clear()
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Columns(); col++ {
			if b.Alive(col, row) {
				s.screen.SetContent(col, row, aliveRune, nil, aliveStyle)
			} else {
				s.screen.SetContent(col, row, deadRune, nil, deadStyle)
			}
		}
	}
	if frame.Status != "" {
		x := 0
		for _, r := range frame.Status {
			s.screen.SetContent(x, b.Rows(), r, nil, statusStyle)
			x++
		}
	}
	s.screen.Show()
	return nil
}

// Write shows p on the bottom line of the screen, leaving the frame above
// it in place. Line breaks inside p are folded into spaces.
func (s *Screen) Write(p []byte) (int, error) {
	width, height := s.screen.Size()
	if height <= 0 {
		return len(p), nil
	}
	text := strings.Join(strings.Fields(string(p)), " ")
	row := height - 1
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		s.screen.SetContent(x, row, r, nil, statusStyle)
		x++
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, row, ' ', nil, deadStyle)
	}
	s.screen.Show()
	return len(p), nil
}
