// Package smoothlife implements SmoothLife, a continuous-state generalisation
// of Conway's Life, on a toroidal field using frequency-domain convolution.
package smoothlife

import (
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"smoothlife/internal/core"
	"smoothlife/internal/spectral"
	pcore "smoothlife/pkg/core"
)

var (
	// ErrInvalidDimensions reports a non-positive field size or bad radii.
	ErrInvalidDimensions = errors.New("smoothlife: invalid dimensions")
	// ErrInvalidTimestep reports a negative dt for the smoothed rules.
	ErrInvalidTimestep = errors.New("smoothlife: invalid timestep")
)

const (
	// deadMass is the total below which the field counts as extinct.
	deadMass = 10
	// gliderMass is the mass of a single glider per squared inner radius; a
	// field lighter than that is considered stagnant.
	gliderMass = 900.0 / 49
	// stagnationLimit is how many stagnant ticks are tolerated before reseeding.
	stagnationLimit = 100
)

// Option customises an Engine.
type Option func(*Engine)

// WithLogger routes lifecycle messages to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns the field and advances it one tick at a time. It is not safe for
// concurrent use; Step parallelises internally.
type Engine struct {
	cfg   Config
	ready bool

	field   *core.Field
	kernels *Multipliers
	rules   *RuleTable

	forward   *spectral.Plan
	innerPlan *spectral.Plan
	outerPlan *spectral.Plan
	spectrum  []complex128
	innerSpec []complex128
	outerSpec []complex128
	innerConv []float64
	outerConv []float64

	rng      *pcore.RNG
	mass     float64
	stagnant int
	rebuilds int
	reseeds  int

	logger *log.Logger
}

// New validates cfg and returns a seeded engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{rng: pcore.NewRNG(cfg.Seed), logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Configure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLogger replaces the destination for lifecycle messages.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Name returns the simulation identifier.
func (e *Engine) Name() string {
	if e.cfg.Smooth {
		return "smoothlife-smooth"
	}
	return "smoothlife"
}

// Size returns the field dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Height} }

// Field exposes the current field values. Callers must not retain the slice
// across a Configure that changes the geometry.
func (e *Engine) Field() []float64 { return e.field.Cells() }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Kernels returns the active frequency-domain kernels.
func (e *Engine) Kernels() *Multipliers { return e.kernels }

// Rules returns the active rule table.
func (e *Engine) Rules() *RuleTable { return e.rules }

// Mass returns the field total observed after the last tick or reseed.
func (e *Engine) Mass() float64 { return e.mass }

// Stagnation returns the number of consecutive stagnant ticks.
func (e *Engine) Stagnation() int { return e.stagnant }

// Rebuilds counts kernel and rule table rebuilds.
func (e *Engine) Rebuilds() int { return e.rebuilds }

// Reseeds counts reseeds, including those triggered by rebuilds.
func (e *Engine) Reseeds() int { return e.reseeds }

// Configure applies cfg. Kernels, rules and buffers are rebuilt, and the field
// reseeded, only when the geometry, radii, resolution or variant change;
// otherwise only the timestep is updated and the field is left alone.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultResolution
	}
	rebuild := !e.ready || e.cfg.shape() != cfg.shape()
	e.cfg = cfg
	if !rebuild {
		return nil
	}
	e.rebuild()
	e.Reseed()
	return nil
}

func (e *Engine) rebuild() {
	w, h := e.cfg.Width, e.cfg.Height
	e.field = core.NewField(w, h)
	e.forward = spectral.NewPlan(w, h)
	e.innerPlan = spectral.NewPlan(w, h)
	e.outerPlan = spectral.NewPlan(w, h)
	e.kernels = NewMultipliers(e.forward, e.cfg.InnerRadius, e.cfg.OuterRadius)
	e.rules = NewRuleTable(e.cfg.Variant(), e.cfg.Resolution)
	e.spectrum = e.forward.NewSpectrum()
	e.innerSpec = e.forward.NewSpectrum()
	e.outerSpec = e.forward.NewSpectrum()
	e.innerConv = make([]float64, w*h)
	e.outerConv = make([]float64, w*h)
	e.ready = true
	e.rebuilds++
	e.logger.Printf("smoothlife: rebuilt %dx%d field, radii %g/%g, %s rules", w, h, e.cfg.InnerRadius, e.cfg.OuterRadius, e.cfg.Variant())
}

// Reset reseeds the random source deterministically and then reseeds the field.
func (e *Engine) Reset(seed int64) {
	e.rng.Seed(seed)
	e.Reseed()
}

// Reseed clears the field and scatters filled squares of side OuterRadius.
// The count keeps roughly one square per (2*OuterRadius)^2 cells, and at least
// one is always placed.
func (e *Engine) Reseed() {
	size := e.Size()
	span := 2 * e.cfg.OuterRadius
	count := max(1, int(float64(size.Area())/(span*span)))
	side := max(1, int(e.cfg.OuterRadius))

	e.field.Clear()
	for i := 0; i < count; i++ {
		x, y := e.rng.Point(size.W, size.H)
		e.field.FillSquare(x, y, side, 1)
	}
	e.stagnant = 0
	e.reseeds++
	e.mass = e.field.Sum()
}

// Step advances the field by one tick: both convolutions run concurrently in
// the frequency domain, the rule table maps them to the new field, and the
// vitality policy reseeds dead or stagnant fields.
func (e *Engine) Step() {
	if !e.ready {
		return
	}
	cells := e.field.Cells()
	e.forward.Forward(e.spectrum, cells)
	norm := 1 / float64(e.forward.Len())

	var g errgroup.Group
	g.Go(func() error {
		spectral.MulScaled(e.innerSpec, e.spectrum, e.kernels.Inner, norm)
		e.innerPlan.Inverse(e.innerConv, e.innerSpec)
		return nil
	})
	spectral.MulScaled(e.outerSpec, e.spectrum, e.kernels.Outer, norm)
	e.outerPlan.Inverse(e.outerConv, e.outerSpec)
	_ = g.Wait()

	e.rules.Evaluate(e.outerConv, e.innerConv, e.cfg.Timestep, cells)
	e.observe(e.field.Sum())
}

func (e *Engine) observe(mass float64) {
	e.mass = mass
	r := e.cfg.InnerRadius
	switch {
	case mass < deadMass:
		e.logger.Printf("smoothlife: field is dead (mass %.2f), reseeding", mass)
		e.Reseed()
	case mass < gliderMass*r*r:
		e.stagnant++
		if e.stagnant > stagnationLimit {
			e.logger.Printf("smoothlife: field stagnant for %d ticks (mass %.2f), reseeding", e.stagnant, mass)
			e.Reseed()
		}
	default:
		e.stagnant = 0
	}
}

func init() {
	for _, smooth := range []bool{false, true} {
		smooth := smooth
		name := "smoothlife"
		if smooth {
			name = "smoothlife-smooth"
		}
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			c := FromMap(cfg)
			if _, ok := cfg["smooth_timestepping"]; !ok {
				c.Smooth = smooth
			}
			return New(c)
		})
	}
}
