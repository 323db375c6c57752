package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func collect(t *testing.T, keys <-chan Key) []Key {
	t.Helper()
	var got []Key
	timeout := time.After(2 * time.Second)
	for {
		select {
		case key, ok := <-keys:
			if !ok {
				return got
			}
			got = append(got, key)
		case <-timeout:
			t.Fatal("timed out waiting for key channel to close")
		}
	}
}

func TestReadKeysSkipsSpaceAndLowercases(t *testing.T) {
	got := collect(t, ReadKeys(context.Background(), strings.NewReader("1 s\nQ\n")))
	want := []Key{KeyNew, KeySave, KeyQuit}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPollScreenMapsKeys(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	keys := PollScreen(context.Background(), sim)

	sim.InjectKey(tcell.KeyRune, 'P', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	for _, want := range []Key{KeyPause, KeyEscape} {
		select {
		case got := <-keys:
			if got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	sim.Fini()
	if rest := collect(t, keys); len(rest) != 0 {
		t.Fatalf("expected no more keys, got %q", rest)
	}
}
