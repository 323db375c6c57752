package session

import (
	"bufio"
	"context"
	"io"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is one key press delivered to a session.
type Key rune

// Keys understood by a session.
const (
	KeyNew       Key = '1'
	KeyLoad      Key = '2'
	KeySave      Key = 's'
	KeyPause     Key = 'p'
	KeyRandomize Key = 'r'
	KeyQuit      Key = 'q'
	KeyEscape    Key = 0x1b
)

// keyBuffer bounds how many presses queue up between generations.
const keyBuffer = 16

func normalize(r rune) Key {
	return Key(unicode.ToLower(r))
}

// ReadKeys delivers every non-space rune read from r. It is meant for
// piped or line-buffered input, where a press arrives once Enter is hit.
// The channel closes at EOF or when ctx is done.
func ReadKeys(ctx context.Context, r io.Reader) <-chan Key {
	keys := make(chan Key, keyBuffer)
	go func() {
		defer close(keys)
		br := bufio.NewReader(r)
		for {
			ch, _, err := br.ReadRune()
			if err != nil {
				return
			}
			if unicode.IsSpace(ch) {
				continue
			}
			select {
			case keys <- normalize(ch):
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

// PollScreen delivers key events from a tcell screen. Ctrl-C maps to
// KeyEscape. The channel closes once the screen is finalised.
func PollScreen(ctx context.Context, screen tcell.Screen) <-chan Key {
	keys := make(chan Key, keyBuffer)
	go func() {
		defer close(keys)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			kev, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			var key Key
			switch kev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				key = KeyEscape
			case tcell.KeyRune:
				key = normalize(kev.Rune())
			default:
				continue
			}
			select {
			case keys <- key:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}
