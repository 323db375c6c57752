package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesLineAndCode(t *testing.T) {
	var code int
	restore := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = restore })

	var buf bytes.Buffer
	exitf(&buf, "load %s: %v", "GameBoard.txt", "bad header")

	if got := buf.String(); got != "load GameBoard.txt: bad header\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
