// Package session runs the interactive simulation loop.
//
// A session renders a generation, advances the board, waits a fixed
// delay and then drains pending key presses without blocking, so keys
// only ever take effect between generations.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/louisbranch/cli-life/internal/life/board"
	"github.com/louisbranch/cli-life/internal/life/pattern"
	"github.com/louisbranch/cli-life/internal/life/render"
	"github.com/louisbranch/cli-life/internal/life/snapshot"
	"golang.org/x/text/message"
)

// StartMode selects how the initial board is obtained.
type StartMode string

const (
	StartPrompt StartMode = "prompt"
	StartNew    StartMode = "new"
	StartLoad   StartMode = "load"
)

// ParseStartMode validates a start mode name.
func ParseStartMode(value string) (StartMode, error) {
	switch mode := StartMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case StartPrompt, StartNew, StartLoad:
		return mode, nil
	case "":
		return StartPrompt, nil
	default:
		return "", fmt.Errorf("unknown start mode %q (valid: prompt, new, load)", value)
	}
}

// Config holds session settings.
type Config struct {
	Width          int
	Height         int
	CellSize       int
	Density        float64
	Start          StartMode
	SavePath       string
	Delay          time.Duration
	MaxGenerations int
	Pattern        string
	PatternX       int
	PatternY       int
}

// Renderer draws one frame.
type Renderer interface {
	Render(frame render.Frame) error
}

// Deps are the collaborators a session drives.
type Deps struct {
	Renderer Renderer
	Keys     <-chan Key
	// Out receives user-facing messages; nil discards them.
	Out      io.Writer
	Printer  *message.Printer
	Rand     *rand.Rand
	Patterns *pattern.Library
	// Wait blocks for d or until ctx is done; tests replace it.
	Wait func(ctx context.Context, d time.Duration) error
}

// Session owns one board and the loop that evolves it.
type Session struct {
	cfg  Config
	deps Deps

	board      *board.Board
	generation int
	notice     string
}

// New validates deps and returns a session without a board; call Start
// before Run.
func New(cfg Config, deps Deps) (*Session, error) {
	if deps.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if deps.Printer == nil {
		return nil, errors.New("printer is required")
	}
	if deps.Rand == nil {
		return nil, errors.New("random source is required")
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Patterns == nil {
		deps.Patterns = pattern.NewLibrary("")
	}
	if deps.Wait == nil {
		deps.Wait = wait
	}
	if cfg.Start == "" {
		cfg.Start = StartPrompt
	}
	return &Session{cfg: cfg, deps: deps}, nil
}

// Board returns the current board, nil before Start.
func (s *Session) Board() *board.Board {
	return s.board
}

// Generation returns how many generations have been advanced.
func (s *Session) Generation() int {
	return s.generation
}

// Start builds the initial board. A missing snapshot in load mode is
// reported and replaced by a fresh board; a malformed one is an error.
// It reports false when the user chose to exit at the prompt.
func (s *Session) Start(ctx context.Context) (bool, error) {
	mode := s.cfg.Start
	if mode == StartPrompt {
		var ok bool
		mode, ok = s.prompt(ctx)
		if !ok {
			return false, nil
		}
	}

	if mode == StartLoad {
		b, err := snapshot.Load(s.cfg.SavePath, board.WithRand(s.deps.Rand))
		switch {
		case err == nil:
			s.board = b
			s.notify("life.state.loaded", s.cfg.SavePath)
		case errors.Is(err, snapshot.ErrNotFound):
			s.notify("life.state.not_found", s.cfg.SavePath)
		default:
			return false, err
		}
	}
	if s.board == nil {
		b, err := board.New(s.cfg.Width, s.cfg.Height, s.cfg.CellSize,
			board.WithDensity(s.cfg.Density), board.WithRand(s.deps.Rand))
		if err != nil {
			return false, err
		}
		s.board = b
	}

	if s.cfg.Pattern != "" {
		if err := s.applyPattern(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// prompt asks for the start mode. Without a key source, or once it
// closes, a new board is started.
func (s *Session) prompt(ctx context.Context) (StartMode, bool) {
	fmt.Fprintln(s.deps.Out, s.deps.Printer.Sprintf("life.start.prompt"))
	if s.deps.Keys == nil {
		return StartNew, true
	}
	for {
		select {
		case <-ctx.Done():
			return "", false
		case key, ok := <-s.deps.Keys:
			if !ok {
				return StartNew, true
			}
			switch key {
			case KeyNew:
				return StartNew, true
			case KeyLoad:
				return StartLoad, true
			case KeyEscape, KeyQuit:
				return "", false
			}
		}
	}
}

func (s *Session) applyPattern() error {
	p, err := s.deps.Patterns.Load(s.cfg.Pattern)
	if err != nil {
		if errors.Is(err, pattern.ErrNotFound) {
			s.notify("life.pattern.not_found", s.cfg.Pattern)
			return nil
		}
		return err
	}
	pattern.Apply(s.board, p, s.cfg.PatternX, s.cfg.PatternY)
	s.notify("life.pattern.loaded", p.Name)
	return nil
}

// Run evolves the board until the exit key, MaxGenerations (when
// positive), or ctx cancellation. A closed key source stops key polling
// but not the simulation.
func (s *Session) Run(ctx context.Context) error {
	if s.board == nil {
		return errors.New("session not started")
	}
	keys := s.deps.Keys
	for {
		if s.cfg.MaxGenerations > 0 && s.generation >= s.cfg.MaxGenerations {
			return s.render()
		}
		if err := s.render(); err != nil {
			return err
		}
		s.board.Advance()
		s.generation++

		if err := s.deps.Wait(ctx, s.cfg.Delay); err != nil {
			return nil
		}

		var stop bool
		keys, stop = s.drainKeys(ctx, keys)
		if stop {
			s.notify("life.exit")
			return nil
		}
	}
}

// drainKeys handles every queued press without blocking. It returns the
// key channel to keep polling (nil once closed) and whether to stop.
func (s *Session) drainKeys(ctx context.Context, keys <-chan Key) (<-chan Key, bool) {
	for {
		select {
		case key, ok := <-keys:
			if !ok {
				return nil, false
			}
			switch key {
			case KeySave:
				s.save()
			case KeyRandomize:
				s.board.Randomize(s.cfg.Density)
			case KeyPause:
				var stop bool
				keys, stop = s.pause(ctx, keys)
				if stop {
					return keys, true
				}
			case KeyEscape, KeyQuit:
				return keys, true
			}
		default:
			return keys, false
		}
	}
}

// pause blocks until the pause key is pressed again. Saving still works
// while paused.
func (s *Session) pause(ctx context.Context, keys <-chan Key) (<-chan Key, bool) {
	s.notice = s.deps.Printer.Sprintf("life.paused")
	_ = s.render()
	for {
		select {
		case <-ctx.Done():
			return keys, true
		case key, ok := <-keys:
			if !ok {
				return nil, false
			}
			switch key {
			case KeyPause:
				return keys, false
			case KeySave:
				s.save()
			case KeyEscape, KeyQuit:
				return keys, true
			}
		}
	}
}

func (s *Session) save() {
	if err := snapshot.Save(s.cfg.SavePath, s.board); err != nil {
		s.notice = err.Error()
		fmt.Fprintln(s.deps.Out, err.Error())
		return
	}
	s.notify("life.state.saved", s.cfg.SavePath)
}

func (s *Session) notify(key string, args ...any) {
	s.notice = s.deps.Printer.Sprintf(key, args...)
	fmt.Fprintln(s.deps.Out, s.notice)
}

func (s *Session) render() error {
	status := s.deps.Printer.Sprintf("life.status", s.generation, s.board.CountAlive())
	if s.notice != "" {
		status += "  " + s.notice
		s.notice = ""
	}
	return s.deps.Renderer.Render(render.Frame{
		Board:      s.board,
		Generation: s.generation,
		Status:     status,
	})
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
