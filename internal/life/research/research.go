// Package research measures how quickly randomly seeded boards settle.
//
// For each density a fresh board is advanced until its live-cell count
// has stayed constant over a trailing window, and the generation at which
// that happened is recorded.
package research

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/louisbranch/cli-life/internal/life/board"
	"github.com/louisbranch/cli-life/internal/platform/otel"
	"github.com/louisbranch/cli-life/internal/random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config controls a research run.
type Config struct {
	Width          int
	Height         int
	CellSize       int
	MaxGenerations int
	StablePeriod   int
	Densities      []float64
	// Seed makes a run reproducible; zero draws a fresh seed.
	Seed int64
}

// DefaultDensities returns 0.0 through 1.0 in steps of 0.1.
func DefaultDensities() []float64 {
	return []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}
}

// DefaultConfig returns the standard 10x10 sweep.
func DefaultConfig() Config {
	return Config{
		Width:          100,
		Height:         100,
		CellSize:       10,
		MaxGenerations: 500,
		StablePeriod:   10,
		Densities:      DefaultDensities(),
	}
}

// Result is the outcome for one density.
type Result struct {
	Density float64
	// StableGeneration is the generation at which the window became
	// constant; it is meaningful only when Stable is true.
	StableGeneration int
	Stable           bool
}

// Progress is called before each density is studied.
type Progress func(index int, density float64)

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.MaxGenerations <= 0 {
		return errors.New("max generations must be greater than zero")
	}
	if c.StablePeriod <= 0 {
		return errors.New("stable period must be greater than zero")
	}
	if len(c.Densities) == 0 {
		return errors.New("at least one density is required")
	}
	for _, d := range c.Densities {
		if d < 0 || d > 1 {
			return fmt.Errorf("%w: %v", board.ErrInvalidDensity, d)
		}
	}
	return nil
}

// Run studies every configured density in order. It returns the seed used
// so a run started with Seed zero can be replayed.
func Run(ctx context.Context, cfg Config, progress Progress) ([]Result, int64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	seed := cfg.Seed
	if seed == 0 {
		fresh, err := random.NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}

	tracer := otel.Tracer("research")
	ctx, span := tracer.Start(ctx, "research.run", trace.WithAttributes(
		attribute.Int64("research.seed", seed),
		attribute.Int("research.densities", len(cfg.Densities)),
	))
	defer span.End()

	results := make([]Result, 0, len(cfg.Densities))
	for i, density := range cfg.Densities {
		if progress != nil {
			progress(i, density)
		}
		rng := rand.New(rand.NewSource(random.Derive(seed, i)))
		result, err := studyDensity(ctx, cfg, density, rng)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return results, seed, err
		}
		results = append(results, result)
	}
	return results, seed, nil
}

func studyDensity(ctx context.Context, cfg Config, density float64, rng *rand.Rand) (Result, error) {
	_, span := otel.Tracer("research").Start(ctx, "research.density", trace.WithAttributes(
		attribute.Float64("research.density", density),
	))
	defer span.End()

	b, err := board.New(cfg.Width, cfg.Height, cfg.CellSize, board.WithDensity(density), board.WithRand(rng))
	if err != nil {
		return Result{}, fmt.Errorf("density %v: %w", density, err)
	}

	window := newWindow(cfg.StablePeriod)
	result := Result{Density: density}
	for generation := 0; generation < cfg.MaxGenerations; generation++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		window.push(b.CountAlive())
		if window.constant() {
			result.StableGeneration = generation
			result.Stable = true
			break
		}
		b.Advance()
	}

	span.SetAttributes(attribute.Bool("research.stable", result.Stable))
	if result.Stable {
		span.SetAttributes(attribute.Int("research.stable_generation", result.StableGeneration))
	}
	return result, nil
}

// window keeps the last size live counts in a ring.
type window struct {
	counts []int
	next   int
	filled bool
}

func newWindow(size int) *window {
	return &window{counts: make([]int, size)}
}

func (w *window) push(count int) {
	w.counts[w.next] = count
	w.next++
	if w.next == len(w.counts) {
		w.next = 0
		w.filled = true
	}
}

// constant reports whether the window is full and every count is equal.
func (w *window) constant() bool {
	if !w.filled {
		return false
	}
	for _, c := range w.counts[1:] {
		if c != w.counts[0] {
			return false
		}
	}
	return true
}
