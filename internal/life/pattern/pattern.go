// Package pattern loads named ASCII patterns and stamps them onto boards.
//
// A pattern file is a grid of characters, one line per row, where '*' is
// alive and every other character is dead. Patterns are looked up in a
// directory first and then in the built-in library embedded here.
package pattern

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/cli-life/internal/life/board"
)

const fileExt = ".txt"

//go:embed builtin/*.txt
var builtinFS embed.FS

var (
	// ErrNotFound indicates no pattern with the requested name exists.
	ErrNotFound = errors.New("pattern not found")

	// ErrInvalidName indicates a name that cannot address a pattern file.
	ErrInvalidName = errors.New("invalid pattern name")
)

// Pattern is a named grid of cells.
type Pattern struct {
	Name string
	Rows []string
}

// Width returns the length of the longest row.
func (p Pattern) Width() int {
	width := 0
	for _, row := range p.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Height returns the number of rows.
func (p Pattern) Height() int {
	return len(p.Rows)
}

// Parse reads a pattern grid from r.
func Parse(name string, r io.Reader) (Pattern, error) {
	scanner := bufio.NewScanner(r)
	p := Pattern{Name: name}
	for scanner.Scan() {
		p.Rows = append(p.Rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Pattern{}, fmt.Errorf("read pattern %s: %w", name, err)
	}
	return p, nil
}

// Apply stamps p onto b with its top-left corner at (offsetX, offsetY).
// Every pattern character overwrites its target cell; targets outside
// the board are skipped. It returns the number of cells written.
func Apply(b *board.Board, p Pattern, offsetX, offsetY int) int {
	written := 0
	for y, row := range p.Rows {
		for x := 0; x < len(row); x++ {
			column, boardRow := x+offsetX, y+offsetY
			if !b.Contains(column, boardRow) {
				continue
			}
			b.SetAlive(column, boardRow, row[x] == '*')
			written++
		}
	}
	return written
}

// Library resolves pattern names.
type Library struct {
	dir string
}

// NewLibrary returns a library reading from dir before the built-ins.
// An empty dir uses the built-ins only.
func NewLibrary(dir string) *Library {
	return &Library{dir: strings.TrimSpace(dir)}
}

// Load returns the pattern called name.
func (l *Library) Load(name string) (Pattern, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if l != nil && l.dir != "" {
		f, err := os.Open(filepath.Join(l.dir, name+fileExt))
		switch {
		case err == nil:
			defer f.Close()
			return Parse(name, f)
		case !errors.Is(err, fs.ErrNotExist):
			return Pattern{}, fmt.Errorf("open pattern %s: %w", name, err)
		}
	}

	f, err := builtinFS.Open(path.Join("builtin", name+fileExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Pattern{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Pattern{}, fmt.Errorf("open builtin pattern %s: %w", name, err)
	}
	defer f.Close()
	return Parse(name, f)
}

// Names lists the built-in pattern names in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(names)
	return names
}
