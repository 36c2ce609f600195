package smoothlife

import (
	"context"
	"errors"
	"testing"
)

func TestMeasureDeterministic(t *testing.T) {
	cfg := testConfig(32, 32)
	a, err := Measure(context.Background(), cfg, 20)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	b, _ := Measure(context.Background(), cfg, 20)
	if a != b {
		t.Fatalf("runs differ: %+v vs %+v", a, b)
	}
	if a.Steps != 20 || a.MeanMass <= 0 || a.Reseeds < 0 {
		t.Fatalf("result = %+v", a)
	}
}

func TestSweepKeepsOrderAndStopsOnError(t *testing.T) {
	small := testConfig(32, 32)
	smooth := small
	smooth.Smooth = true
	res, err := Sweep(context.Background(), []Config{small, smooth}, 5, 2)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(res) != 2 || res[0].Config.Smooth || !res[1].Config.Smooth {
		t.Fatalf("results out of order: %+v", res)
	}

	bad := small
	bad.Width = 0
	if _, err := Sweep(context.Background(), []Config{small, bad}, 5, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Sweep(ctx, []Config{small}, 5, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled sweep err = %v", err)
	}
}
