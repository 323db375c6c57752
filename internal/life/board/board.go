// Package board implements the toroidal Game of Life grid.
//
// A Board owns every cell in a single arena addressed by (column, row).
// Neighbor links are arena indexes computed once at construction, so the
// topology is fixed for the lifetime of the board and no cell holds a
// reference to another.
package board

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/louisbranch/cli-life/internal/random"
)

// NeighborCount is the number of neighbors wired to every cell.
const NeighborCount = 8

// DefaultDensity is the live density used when none is given.
const DefaultDensity = 0.1

// MaxCells caps columns*rows for one board.
const MaxCells = 1 << 24

var (
	// ErrInvalidDimensions indicates a size that yields no grid.
	ErrInvalidDimensions = errors.New("board dimensions must yield at least one column and one row")

	// ErrInvalidDensity indicates a live density outside [0, 1].
	ErrInvalidDensity = errors.New("live density must be between 0 and 1")

	// ErrStateShape indicates a state whose cells do not match its dimensions.
	ErrStateShape = errors.New("state cells do not match board dimensions")
)

// Position addresses one cell of a board.
type Position struct {
	Column int
	Row    int
}

// Board is a toroidal grid of cells.
type Board struct {
	columns  int
	rows     int
	cellSize int

	cells     []Cell
	neighbors [][NeighborCount]int
	rng       *rand.Rand
}

type options struct {
	density float64
	rng     *rand.Rand
}

// Option configures board construction.
type Option func(*options)

// WithDensity sets the probability that a cell starts alive.
func WithDensity(density float64) Option {
	return func(o *options) {
		o.density = density
	}
}

// WithRand sets the random source used by construction and Randomize.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// New builds a board of width/cellSize columns and height/cellSize rows.
// Any remainder of the division is dropped. The grid is wired and then
// randomized at the configured density.
func New(width, height, cellSize int, opts ...Option) (*Board, error) {
	o := options{density: DefaultDensity}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if cellSize <= 0 || width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d cell size=%d", ErrInvalidDimensions, width, height, cellSize)
	}
	columns, rows := width/cellSize, height/cellSize
	if err := CheckGrid(columns, rows); err != nil {
		return nil, fmt.Errorf("%w: width=%d height=%d cell size=%d", err, width, height, cellSize)
	}
	if math.IsNaN(o.density) || o.density < 0 || o.density > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, o.density)
	}

	if o.rng == nil {
		rng, _, err := random.NewRand(0)
		if err != nil {
			return nil, fmt.Errorf("seed board: %w", err)
		}
		o.rng = rng
	}

	b := &Board{
		columns:  columns,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]Cell, columns*rows),
		rng:      o.rng,
	}
	b.connectNeighbors()
	b.Randomize(o.density)
	return b, nil
}

// CheckGrid reports ErrInvalidDimensions unless the grid has at least one
// column and one row and no more than MaxCells cells.
func CheckGrid(columns, rows int) error {
	if columns <= 0 || rows <= 0 || columns > MaxCells/rows {
		return ErrInvalidDimensions
	}
	return nil
}

// connectNeighbors wires each cell to its eight surrounding cells with
// edges wrapping to the opposite edge.
func (b *Board) connectNeighbors() {
	b.neighbors = make([][NeighborCount]int, len(b.cells))
	for x := 0; x < b.columns; x++ {
		for y := 0; y < b.rows; y++ {
			xL := x - 1
			if x == 0 {
				xL = b.columns - 1
			}
			xR := x + 1
			if x == b.columns-1 {
				xR = 0
			}
			yT := y - 1
			if y == 0 {
				yT = b.rows - 1
			}
			yB := y + 1
			if y == b.rows-1 {
				yB = 0
			}

			b.neighbors[b.index(x, y)] = [NeighborCount]int{
				b.index(xL, yT), b.index(x, yT), b.index(xR, yT),
				b.index(xL, y), b.index(xR, y),
				b.index(xL, yB), b.index(x, yB), b.index(xR, yB),
			}
		}
	}
}

func (b *Board) index(column, row int) int {
	return row*b.columns + column
}

func (b *Board) position(index int) Position {
	return Position{Column: index % b.columns, Row: index / b.columns}
}

// Columns returns the number of columns.
func (b *Board) Columns() int { return b.columns }

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// CellSize returns the logical pixel size of a cell.
func (b *Board) CellSize() int { return b.cellSize }

// Width returns Columns*CellSize.
func (b *Board) Width() int { return b.columns * b.cellSize }

// Height returns Rows*CellSize.
func (b *Board) Height() int { return b.rows * b.cellSize }

// Contains reports whether (column, row) lies on the board.
func (b *Board) Contains(column, row int) bool {
	return column >= 0 && column < b.columns && row >= 0 && row < b.rows
}

// Cell returns the cell at (column, row). It panics when the position is
// off the board, like an out-of-range slice index.
func (b *Board) Cell(column, row int) *Cell {
	if !b.Contains(column, row) {
		panic(fmt.Sprintf("board: cell (%d, %d) outside %dx%d grid", column, row, b.columns, b.rows))
	}
	return &b.cells[b.index(column, row)]
}

// Alive reports whether the cell at (column, row) is alive.
func (b *Board) Alive(column, row int) bool {
	return b.Cell(column, row).Alive()
}

// SetAlive overwrites the state of the cell at (column, row).
func (b *Board) SetAlive(column, row int, alive bool) {
	b.Cell(column, row).SetAlive(alive)
}

// Neighbors returns the positions wired to (column, row) in the order
// top-left, top, top-right, left, right, bottom-left, bottom, bottom-right.
func (b *Board) Neighbors(column, row int) [NeighborCount]Position {
	var out [NeighborCount]Position
	for i, idx := range b.neighbors[b.index(column, row)] {
		out[i] = b.position(idx)
	}
	return out
}

// LiveNeighbors counts the live neighbors of (column, row).
func (b *Board) LiveNeighbors(column, row int) int {
	return b.liveNeighbors(b.index(column, row))
}

func (b *Board) liveNeighbors(index int) int {
	count := 0
	for _, n := range b.neighbors[index] {
		if b.cells[n].alive {
			count++
		}
	}
	return count
}

// Randomize sets every cell alive independently with probability density.
// Pending state is not reset.
func (b *Board) Randomize(density float64) {
	for i := range b.cells {
		b.cells[i].alive = b.rng.Float64() < density
	}
}

// Advance moves the board one generation forward. Every next state is
// determined before any cell changes, so each transition depends only on
// the previous generation.
func (b *Board) Advance() {
	for i := range b.cells {
		b.cells[i].DetermineNextState(b.liveNeighbors(i))
	}
	for i := range b.cells {
		b.cells[i].Advance()
	}
}

// CountAlive returns the number of live cells.
func (b *Board) CountAlive() int {
	count := 0
	for i := range b.cells {
		if b.cells[i].alive {
			count++
		}
	}
	return count
}
