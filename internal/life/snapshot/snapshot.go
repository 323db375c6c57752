// Package snapshot reads and writes boards in the plain-text save format:
//
//	Width=<int>
//	Height=<int>
//	CellSize=<int>
//	<one line per row, '*' alive and '.' dead>
//
// Decoding fails fast on malformed input rather than padding or guessing.
// A header value is everything after the first '=', so "Width=10=5" is
// rejected instead of read as 10.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/louisbranch/cli-life/internal/life/board"
)

const (
	aliveChar = '*'
	deadChar  = '.'
)

var headerKeys = [...]string{"Width", "Height", "CellSize"}

// ErrNotFound indicates the snapshot file does not exist.
var ErrNotFound = errors.New("snapshot not found")

// ParseError reports a malformed snapshot with the 1-based line it was
// detected on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("snapshot line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode writes state in the text format.
func Encode(w io.Writer, state board.State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Width=%d\n", state.Width)
	fmt.Fprintf(bw, "Height=%d\n", state.Height)
	fmt.Fprintf(bw, "CellSize=%d\n", state.CellSize)

	line := make([]byte, 0, 64)
	for _, row := range state.Cells {
		line = line[:0]
		for _, cell := range row {
			if cell.Alive {
				line = append(line, aliveChar)
			} else {
				line = append(line, deadChar)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot. Exactly Height/CellSize rows are read after
// the header; characters past the column count and lines past the last
// row are ignored.
func Decode(r io.Reader) (board.State, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0

	var header [len(headerKeys)]int
	for i, key := range headerKeys {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return board.State{}, fmt.Errorf("read snapshot: %w", err)
			}
			return board.State{}, &ParseError{Line: lineNo + 1, Err: fmt.Errorf("missing %s header", key)}
		}
		lineNo++
		value, err := parseHeader(scanner.Text(), key)
		if err != nil {
			return board.State{}, &ParseError{Line: lineNo, Err: err}
		}
		header[i] = value
	}

	state := board.State{Width: header[0], Height: header[1], CellSize: header[2]}
	if state.CellSize <= 0 {
		return board.State{}, &ParseError{Line: 3, Err: fmt.Errorf("cell size must be positive, got %d", state.CellSize)}
	}
	if state.Width < 0 || state.Height < 0 {
		return board.State{}, &ParseError{Line: 1, Err: fmt.Errorf("dimensions must not be negative, got %dx%d", state.Width, state.Height)}
	}
	columns, rows := state.Width/state.CellSize, state.Height/state.CellSize
	if rows > 0 && (columns > board.MaxCells || columns > board.MaxCells/rows) {
		return board.State{}, &ParseError{Line: 2, Err: fmt.Errorf("grid %dx%d exceeds %d cells", columns, rows, board.MaxCells)}
	}

	for y := 0; y < rows; y++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return board.State{}, fmt.Errorf("read snapshot: %w", err)
			}
			return board.State{}, &ParseError{Line: lineNo + 1, Err: fmt.Errorf("missing row %d of %d", y, rows)}
		}
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) < columns {
			return board.State{}, &ParseError{Line: lineNo, Err: fmt.Errorf("row %d has %d cells, want %d", y, len(line), columns)}
		}
		row := make([]board.CellState, columns)
		for x := 0; x < columns; x++ {
			row[x] = board.CellState{Alive: line[x] == aliveChar}
		}
		state.Cells = append(state.Cells, row)
	}
	return state, nil
}

func parseHeader(line, key string) (int, error) {
	name, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return 0, fmt.Errorf("expected %s=<int>, got %q", key, line)
	}
	if strings.TrimSpace(name) != key {
		return 0, fmt.Errorf("expected %s header, got %q", key, name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// Save writes b to path, replacing any existing file.
func Save(path string, b *board.Board) error {
	if b == nil {
		return errors.New("board is required")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := Encode(f, b.ToState()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot at path and rebuilds its board. A missing file
// yields an error matching ErrNotFound.
func Load(path string, opts ...board.Option) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	state, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b, err := board.FromState(state, opts...)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", path, err)
	}
	return b, nil
}
