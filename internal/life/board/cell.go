package board

// Cell holds one unit of life state and its computed next state.
//
// The next state is written by DetermineNextState and only becomes
// visible after Advance, which lets a board compute a whole generation
// from the previous one before committing any of it.
type Cell struct {
	alive   bool
	pending bool
}

// Alive reports the current state.
func (c *Cell) Alive() bool {
	return c.alive
}

// SetAlive overwrites the current state. Pending state is untouched.
func (c *Cell) SetAlive(alive bool) {
	c.alive = alive
}

// DetermineNextState records the state this cell takes on Advance given
// how many of its neighbors are currently alive.
func (c *Cell) DetermineNextState(liveNeighbors int) {
	c.pending = NextState(c.alive, liveNeighbors)
}

// Advance commits the state computed by DetermineNextState.
func (c *Cell) Advance() {
	c.alive = c.pending
}

// NextState applies the B3/S23 rule: a live cell survives with two or
// three live neighbors, a dead cell is born with exactly three.
func NextState(alive bool, liveNeighbors int) bool {
	if alive {
		return liveNeighbors == 2 || liveNeighbors == 3
	}
	return liveNeighbors == 3
}
