// Package research parses research command flags and runs the density
// stability sweep.
package research

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	sweep "github.com/louisbranch/cli-life/internal/life/research"
	entrypoint "github.com/louisbranch/cli-life/internal/platform/cmd"
	"github.com/louisbranch/cli-life/internal/platform/i18n/catalog"
)

// Config holds research command configuration.
type Config struct {
	OutPath        string `env:"LIFE_RESEARCH_OUT" envDefault:"result.csv"`
	ChartPath      string `env:"LIFE_RESEARCH_CHART"`
	MaxGenerations int    `env:"LIFE_RESEARCH_MAX_GENERATIONS" envDefault:"500"`
	StablePeriod   int    `env:"LIFE_RESEARCH_STABLE_PERIOD" envDefault:"10"`
	Seed           int64  `env:"LIFE_SEED"`
	Locale         string `env:"LIFE_LOCALE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "CSV file for the results")
	fs.StringVar(&cfg.ChartPath, "chart", cfg.ChartPath, "Optional PNG chart of the results")
	fs.IntVar(&cfg.MaxGenerations, "max-generations", cfg.MaxGenerations, "Generations to try before giving up on a density")
	fs.IntVar(&cfg.StablePeriod, "stable-period", cfg.StablePeriod, "Generations the live count must hold to count as stable")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for reproducibility (0 = random)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Message locale (en-US, ru-RU)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.OutPath == "" {
		return Config{}, fmt.Errorf("output path is required")
	}
	return cfg, nil
}

// Run executes the sweep and writes its reports.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceResearch, func(ctx context.Context) error {
		return run(ctx, cfg, out, errOut)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	printer := catalog.Default().Printer(cfg.Locale)

	rc := sweep.DefaultConfig()
	rc.MaxGenerations = cfg.MaxGenerations
	rc.StablePeriod = cfg.StablePeriod
	rc.Seed = cfg.Seed

	results, seed, err := sweep.Run(ctx, rc, func(_ int, density float64) {
		fmt.Fprintln(out, printer.Sprintf("research.density", density))
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(errOut, printer.Sprintf("life.seed", seed))

	if err := writeFile(cfg.OutPath, func(w io.Writer) error {
		return sweep.WriteCSV(w, results)
	}); err != nil {
		return err
	}
	fmt.Fprintln(out, printer.Sprintf("research.written", cfg.OutPath))

	if cfg.ChartPath != "" {
		if err := writeFile(cfg.ChartPath, func(w io.Writer) error {
			return sweep.WriteChart(w, results)
		}); err != nil {
			return err
		}
		fmt.Fprintln(out, printer.Sprintf("research.chart", cfg.ChartPath))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}
