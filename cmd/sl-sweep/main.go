package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"smoothlife/internal/core"
	"smoothlife/internal/sims/smoothlife"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 3, "seeds per radius and sim")
	simList := flag.String("sim", strings.Join(core.SimNames(), ","), "comma separated registered sims to sweep")
	top := flag.Int("top", 10, "number of results to print")
	radii := intList{4, 5, 6, 7, 8, 10}
	flag.Var(&radii, "radii", "comma separated inner radii to sweep")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable), e.g. w=192")
	flag.Parse()

	base := map[string]string{"w": "128", "h": "128"}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("bad override %q, want key=value", kv)
		}
		base[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	var bases []smoothlife.Config
	for _, name := range strings.Split(*simList, ",") {
		name = strings.TrimSpace(name)
		factory, ok := core.Sims()[name]
		if !ok {
			log.Fatalf("unknown sim %q (have %s)", name, strings.Join(core.SimNames(), ", "))
		}
		sim, err := factory(base)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		eng, ok := sim.(*smoothlife.Engine)
		if !ok {
			log.Fatalf("%s does not run on the smoothlife engine", name)
		}
		bases = append(bases, eng.Config())
	}
	baseCfg := bases[0]

	var cfgs []smoothlife.Config
	for _, r := range radii {
		for _, b := range bases {
			for s := 0; s < *seeds; s++ {
				cfg := b
				cfg.InnerRadius = float64(r)
				cfg.OuterRadius = 3 * float64(r)
				cfg.Seed = b.Seed + int64(s)
				cfgs = append(cfgs, cfg)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d scenarios on %dx%d (%d workers, %d steps)\n", len(cfgs), baseCfg.Width, baseCfg.Height, *workers, *steps)
	start := time.Now()
	results, err := smoothlife.Sweep(ctx, cfgs, *steps, *workers)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	// Fewest reseeds first, then the liveliest mass.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Reseeds != results[j].Reseeds {
			return results[i].Reseeds < results[j].Reseeds
		}
		return results[i].MeanMass > results[j].MeanMass
	})

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(results)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		fmt.Printf("%2d) inner=%g outer=%g %-8s seed=%d reseeds=%d mass=%.1f±%.1f final=%.1f maxStagnant=%d\n",
			i+1, res.Config.InnerRadius, res.Config.OuterRadius, res.Config.Variant(), res.Config.Seed,
			res.Reseeds, res.MeanMass, res.MassStdDev, res.FinalMass, res.MaxStagnation)
	}
}
