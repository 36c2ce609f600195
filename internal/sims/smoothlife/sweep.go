package smoothlife

import (
	"context"
	"io"
	"log"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// RunResult captures vitality telemetry from a deterministic run.
type RunResult struct {
	Config Config
	Steps  int
	// Reseeds counts reseeds after the initial one.
	Reseeds       int
	MeanMass      float64
	MassStdDev    float64
	FinalMass     float64
	MaxStagnation int
}

// Measure runs cfg for steps ticks and reports how the field's mass behaved.
func Measure(ctx context.Context, cfg Config, steps int) (RunResult, error) {
	e, err := New(cfg, WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		return RunResult{}, err
	}
	res := RunResult{Config: e.Config()}
	masses := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.Step()
		masses = append(masses, e.Mass())
		res.MaxStagnation = max(res.MaxStagnation, e.Stagnation())
	}
	res.Steps = len(masses)
	res.Reseeds = e.Reseeds() - 1
	res.FinalMass = e.Mass()
	if len(masses) > 0 {
		res.MeanMass, res.MassStdDev = stat.MeanStdDev(masses, nil)
	}
	return res, nil
}

// Sweep measures every config using up to workers goroutines. Results are in
// the order of cfgs. The first error cancels the remaining runs.
func Sweep(ctx context.Context, cfgs []Config, steps, workers int) ([]RunResult, error) {
	results := make([]RunResult, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			res, err := Measure(ctx, cfg, steps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
