// Package life parses life command flags and runs an interactive session.
package life

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/louisbranch/cli-life/internal/life/board"
	"github.com/louisbranch/cli-life/internal/life/pattern"
	"github.com/louisbranch/cli-life/internal/life/render"
	"github.com/louisbranch/cli-life/internal/life/session"
	entrypoint "github.com/louisbranch/cli-life/internal/platform/cmd"
	"github.com/louisbranch/cli-life/internal/platform/config"
	"github.com/louisbranch/cli-life/internal/platform/i18n/catalog"
	"github.com/louisbranch/cli-life/internal/platform/otel"
	"github.com/louisbranch/cli-life/internal/random"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultConfigPath = "config.json"
	defaultSavePath   = "GameBoard.txt"
	defaultDelay      = 500 * time.Millisecond
)

// Config holds life command configuration.
//
// Values are layered: built-in defaults, then the JSON board file, then
// LIFE_* variables, then flags.
type Config struct {
	ConfigPath  string        `env:"LIFE_CONFIG_PATH"`
	Width       int           `env:"LIFE_WIDTH"`
	Height      int           `env:"LIFE_HEIGHT"`
	CellSize    int           `env:"LIFE_CELL_SIZE"`
	Density     float64       `env:"LIFE_LIVE_DENSITY"`
	Seed        int64         `env:"LIFE_SEED"`
	SavePath    string        `env:"LIFE_SAVE_PATH"`
	PatternsDir string        `env:"LIFE_PATTERNS_DIR"`
	Delay       time.Duration `env:"LIFE_DELAY"`
	Locale      string        `env:"LIFE_LOCALE"`

	Start          session.StartMode
	Pattern        string
	PatternX       int
	PatternY       int
	MaxGenerations int
	Plain          bool
}

// boardFile is the on-disk board configuration.
type boardFile struct {
	Width       *int     `json:"width"`
	Height      *int     `json:"height"`
	CellSize    *int     `json:"cellSize"`
	LiveDensity *float64 `json:"liveDensity"`
}

func defaultConfig() Config {
	return Config{
		ConfigPath: defaultConfigPath,
		Width:      500,
		Height:     200,
		CellSize:   10,
		Density:    board.DefaultDensity,
		SavePath:   defaultSavePath,
		Delay:      defaultDelay,
		Start:      session.StartPrompt,
	}
}

// ParseConfig parses the board file, environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	path, err := configPath(args)
	if err != nil {
		return Config{}, err
	}
	cfg.ConfigPath = path

	var file boardFile
	if _, err := config.LoadJSONFile(cfg.ConfigPath, &file); err != nil {
		return Config{}, err
	}
	file.apply(&cfg)

	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	start := bindFlags(fs, &cfg)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	mode, err := session.ParseStartMode(*start)
	if err != nil {
		return Config{}, err
	}
	cfg.Start = mode
	if cfg.Delay < 0 {
		return Config{}, fmt.Errorf("delay must not be negative, got %s", cfg.Delay)
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) *string {
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Board configuration JSON file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Board width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Board height in pixels")
	fs.IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "Cell edge in pixels")
	fs.Float64Var(&cfg.Density, "density", cfg.Density, "Probability that a new cell starts alive")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for reproducibility (0 = random)")
	start := fs.String("start", string(cfg.Start), "How to start: prompt, new or load")
	fs.StringVar(&cfg.SavePath, "save-path", cfg.SavePath, "Snapshot file for save and load")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "Pattern to stamp onto the board after start")
	fs.IntVar(&cfg.PatternX, "pattern-x", cfg.PatternX, "Pattern column offset")
	fs.IntVar(&cfg.PatternY, "pattern-y", cfg.PatternY, "Pattern row offset")
	fs.StringVar(&cfg.PatternsDir, "patterns-dir", cfg.PatternsDir, "Directory searched for patterns before the built-ins")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "Pause between generations")
	fs.IntVar(&cfg.MaxGenerations, "generations", cfg.MaxGenerations, "Stop after this many generations (0 = run until exit)")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Render plain text instead of a full-screen terminal")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Message locale (en-US, ru-RU)")
	return start
}

// configPath finds the board file before the real parse, since the file
// sits below the environment and flags in precedence.
func configPath(args []string) (string, error) {
	early := defaultConfig()
	if err := config.ParseEnv(&early); err != nil {
		return "", err
	}
	fs := flag.NewFlagSet("config-path", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bindFlags(fs, &early)
	// Errors surface again in the real parse.
	_ = fs.Parse(args)
	return early.ConfigPath, nil
}

func (f boardFile) apply(cfg *Config) {
	if f.Width != nil {
		cfg.Width = *f.Width
	}
	if f.Height != nil {
		cfg.Height = *f.Height
	}
	if f.CellSize != nil {
		cfg.CellSize = *f.CellSize
	}
	if f.LiveDensity != nil {
		cfg.Density = *f.LiveDensity
	}
}

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

// Run starts an interactive session.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLife, func(ctx context.Context) error {
		return run(ctx, cfg, in, out, errOut)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printer := catalog.Default().Printer(cfg.Locale)
	rng, seed, err := random.NewRand(cfg.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(errOut, printer.Sprintf("life.seed", seed))

	ctx, span := otel.Tracer("life").Start(ctx, "life.session")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("life.seed", seed),
		attribute.String("life.start", string(cfg.Start)),
	)

	deps := session.Deps{
		Out:      out,
		Printer:  printer,
		Rand:     rng,
		Patterns: pattern.NewLibrary(cfg.PatternsDir),
	}
	if screen := openScreen(cfg); screen != nil {
		defer screen.Fini()
		r := render.NewScreen(screen)
		deps.Renderer = r
		deps.Out = r
		deps.Keys = session.PollScreen(ctx, screen)
	} else {
		deps.Renderer = render.NewText(out, true)
		if in != nil {
			deps.Keys = session.ReadKeys(ctx, in)
		}
	}

	s, err := session.New(session.Config{
		Width:          cfg.Width,
		Height:         cfg.Height,
		CellSize:       cfg.CellSize,
		Density:        cfg.Density,
		Start:          cfg.Start,
		SavePath:       cfg.SavePath,
		Delay:          cfg.Delay,
		MaxGenerations: cfg.MaxGenerations,
		Pattern:        cfg.Pattern,
		PatternX:       cfg.PatternX,
		PatternY:       cfg.PatternY,
	}, deps)
	if err != nil {
		return err
	}
	started, err := s.Start(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !started {
		return nil
	}
	err = s.Run(ctx)
	span.SetAttributes(attribute.Int("life.generations", s.Generation()))
	return err
}

// openScreen returns an initialised full-screen terminal, or nil when
// plain output was requested or no terminal is available.
func openScreen(cfg Config) tcell.Screen {
	if cfg.Plain {
		return nil
	}
	screen, err := newScreen()
	if err != nil {
		log.Printf("%s terminal unavailable, using plain output: %v", entrypoint.ServiceLife, err)
		return nil
	}
	if err := screen.Init(); err != nil {
		log.Printf("%s terminal init failed, using plain output: %v", entrypoint.ServiceLife, err)
		return nil
	}
	return screen
}
