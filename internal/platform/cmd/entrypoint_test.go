package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	SavePath string `env:"LIFE_CMD_TEST_SAVE_PATH" envDefault:"GameBoard.txt"`
	Start    string `env:"LIFE_CMD_TEST_START" envDefault:"prompt"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("LIFE_CMD_TEST_SAVE_PATH", "env.txt")
	t.Setenv("LIFE_CMD_TEST_START", "new")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.SavePath, "save-path", cfgRef.SavePath, "save-path")
	fs.StringVar(&cfgRef.Start, "start", cfgRef.Start, "start")

	if err := ParseArgs(fs, []string{"-save-path", "flag.txt"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.SavePath != "flag.txt" {
		t.Fatalf("expected flag value for save path, got %q", cfgRef.SavePath)
	}
	if cfgRef.Start != "new" {
		t.Fatalf("expected env start, got %q", cfgRef.Start)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceLife, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("LIFE_OTEL_ENDPOINT", "")
	want := errors.New("board exploded")

	called := false
	err := RunWithTelemetry(context.Background(), ServiceResearch, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}

func TestRunWithTelemetryRejectsBadShutdownTimeout(t *testing.T) {
	tests := map[string]string{
		"unparsable": "soon",
		"zero":       "0s",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("LIFE_OTEL_SHUTDOWN_TIMEOUT", value)
			called := false
			err := RunWithTelemetry(context.Background(), ServiceLife, func(context.Context) error {
				called = true
				return nil
			})
			if err == nil {
				t.Fatal("expected shutdown timeout error")
			}
			if called {
				t.Fatal("expected run to be skipped")
			}
		})
	}
}

func TestRunWithTelemetryAcceptsShutdownTimeout(t *testing.T) {
	t.Setenv("LIFE_OTEL_ENDPOINT", "")
	t.Setenv("LIFE_OTEL_SHUTDOWN_TIMEOUT", "250ms")
	if err := RunWithTelemetry(context.Background(), ServiceResearch, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
}
