package board

import "fmt"

// CellState is the serializable form of one cell.
type CellState struct {
	Alive bool `json:"isAlive"`
}

// State is a row-major snapshot of a board: Cells[row][column].
type State struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	CellSize int           `json:"cellSize"`
	Cells    [][]CellState `json:"cells"`
}

// ToState exports the board.
func (b *Board) ToState() State {
	state := State{
		Width:    b.Width(),
		Height:   b.Height(),
		CellSize: b.cellSize,
		Cells:    make([][]CellState, b.rows),
	}
	for y := 0; y < b.rows; y++ {
		row := make([]CellState, b.columns)
		for x := 0; x < b.columns; x++ {
			row[x] = CellState{Alive: b.cells[b.index(x, y)].alive}
		}
		state.Cells[y] = row
	}
	return state
}

// FromState builds a board with the state's dimensions and then
// overwrites every cell from the snapshot. Construction still runs its
// randomization pass, which the overwrite discards.
func FromState(state State, opts ...Option) (*Board, error) {
	opts = append([]Option{WithDensity(0)}, opts...)
	b, err := New(state.Width, state.Height, state.CellSize, opts...)
	if err != nil {
		return nil, err
	}
	if len(state.Cells) != b.rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrStateShape, len(state.Cells), b.rows)
	}
	for y, row := range state.Cells {
		if len(row) != b.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrStateShape, y, len(row), b.columns)
		}
		for x, cell := range row {
			b.cells[b.index(x, y)].alive = cell.Alive
		}
	}
	return b, nil
}
