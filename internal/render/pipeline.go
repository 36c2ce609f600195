package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"smoothlife/internal/colormap"
	"smoothlife/internal/core"
)

// ErrFrameAbandoned reports a tick whose join was interrupted. The frame is
// discarded and the pipeline stops scheduling until made visible again.
var ErrFrameAbandoned = errors.New("render: frame abandoned")

// statsWindow is the number of frames averaged per timing sample.
const statsWindow = 32

// Surface is the display a pipeline blits finished frames onto.
type Surface interface {
	Blit(f *Frame, scale int) error
}

// Reseeder is implemented by sims that can scatter a fresh pattern without
// changing their random seed.
type Reseeder interface {
	Reseed()
}

// Stats summarises recent frame timing.
type Stats struct {
	Frames  int
	Average time.Duration
	FPS     float64
}

// settings holds the host-supplied knobs. They are read once per tick.
type settings struct {
	visible      bool
	palette      *colormap.Palette
	colorScaling int
	scale        int
	frameDelay   time.Duration
}

// Pipeline double-buffers frames for a sim. Each tick steps the sim and paints
// the next frame on a worker while the caller blits the previous one.
// RenderTick, Present and Run must be driven from a single goroutine; the
// setters may be called from anywhere.
type Pipeline struct {
	sim core.Sim

	frames   [2]*Frame
	cur      int
	rendered int
	scratch  []float64

	// pending is the join of an abandoned tick whose worker may still be
	// touching the sim and the current frame.
	pending chan error

	mu     sync.Mutex
	set    settings
	reseed bool
	wake   chan struct{}

	now         func() time.Time
	windowStart time.Time
	windowCount int
	stats       Stats

	logger *log.Logger
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithLogger routes pipeline messages to l.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithClock replaces the time source used for frame statistics.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline builds a visible pipeline for sim using the default palette,
// neutral contrast, scale 1 and no frame delay.
func NewPipeline(sim core.Sim, opts ...Option) *Pipeline {
	size := sim.Size()
	p := &Pipeline{
		sim:    sim,
		frames: [2]*Frame{NewFrame(size.W, size.H), NewFrame(size.W, size.H)},
		set: settings{
			visible:      true,
			palette:      colormap.Default(),
			colorScaling: colormap.NeutralScaling,
			scale:        1,
		},
		wake:   make(chan struct{}, 1),
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetLogger replaces the logger.
func (p *Pipeline) SetLogger(l *log.Logger) { p.logger = l }

// SetVisible toggles scheduling. Becoming visible again reseeds the sim on the
// next tick and wakes Run.
func (p *Pipeline) SetVisible(v bool) {
	p.mu.Lock()
	if v && !p.set.visible {
		p.reseed = true
	}
	p.set.visible = v
	p.mu.Unlock()
	if v {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
}

// Visible reports whether ticks are being scheduled.
func (p *Pipeline) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.set.visible
}

// SetPalette selects the palette used for subsequent frames. Nil selects the
// default.
func (p *Pipeline) SetPalette(pal *colormap.Palette) {
	if pal == nil {
		pal = colormap.Default()
	}
	p.mu.Lock()
	p.set.palette = pal
	p.mu.Unlock()
}

// Palette returns the active palette.
func (p *Pipeline) Palette() *colormap.Palette {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.set.palette
}

// SetColorScaling sets the contrast curve control, clamped to [0,100].
func (p *Pipeline) SetColorScaling(s int) {
	p.mu.Lock()
	p.set.colorScaling = min(max(s, 0), 100)
	p.mu.Unlock()
}

// SetScale sets the blit magnification. Values below 1 become 1.
func (p *Pipeline) SetScale(s int) {
	p.mu.Lock()
	p.set.scale = max(s, 1)
	p.mu.Unlock()
}

// SetFrameDelay sets the pause Run inserts between ticks.
func (p *Pipeline) SetFrameDelay(d time.Duration) {
	p.mu.Lock()
	p.set.frameDelay = max(d, 0)
	p.mu.Unlock()
}

// FrameDelay returns the pause between ticks.
func (p *Pipeline) FrameDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.set.frameDelay
}

// Stats returns the last timing sample.
func (p *Pipeline) Stats() Stats { return p.stats }

// Current returns the last completed frame, or nil before the first tick.
func (p *Pipeline) Current() *Frame {
	if p.rendered == 0 {
		return nil
	}
	return p.frames[1-p.cur]
}

func (p *Pipeline) snapshot() (settings, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	reseed := p.reseed
	p.reseed = false
	return p.set, reseed
}

// RenderTick runs one step/draw cycle. When hidden it does nothing. Otherwise
// the sim is stepped and the next frame painted on a worker while the previous
// frame is blitted to dst; after the join the frames swap roles. If ctx ends
// before the join the frame is abandoned, the pipeline hides itself and
// ErrFrameAbandoned is returned.
func (p *Pipeline) RenderTick(ctx context.Context, dst Surface) error {
	set, reseed := p.snapshot()
	if !set.visible {
		return nil
	}
	if p.pending != nil {
		<-p.pending
		p.pending = nil
	}
	if reseed {
		p.reseedSim()
	}
	p.fitFrames()

	cur, prev := p.frames[p.cur], p.frames[1-p.cur]
	var g errgroup.Group
	g.Go(func() error {
		p.sim.Step()
		p.paint(cur, set)
		return nil
	})

	var drawErr error
	if p.rendered > 0 && dst != nil {
		drawErr = dst.Blit(prev, set.scale)
	}

	joined := make(chan error, 1)
	go func() { joined <- g.Wait() }()
	select {
	case <-joined:
	case <-ctx.Done():
		p.pending = joined
		p.mu.Lock()
		p.set.visible = false
		p.mu.Unlock()
		p.logger.Printf("render: frame abandoned: %v", ctx.Err())
		return fmt.Errorf("%w: %w", ErrFrameAbandoned, ctx.Err())
	}

	p.cur = 1 - p.cur
	p.rendered++
	p.observe()
	if drawErr != nil {
		return fmt.Errorf("render: blit: %w", drawErr)
	}
	return nil
}

// Present blits the last completed frame without stepping.
func (p *Pipeline) Present(dst Surface) error {
	f := p.Current()
	if f == nil || dst == nil {
		return nil
	}
	p.mu.Lock()
	scale := p.set.scale
	p.mu.Unlock()
	return dst.Blit(f, scale)
}

// Run ticks until ctx ends, sleeping the frame delay between ticks and
// blocking while hidden. It returns ctx.Err() or the first tick error.
func (p *Pipeline) Run(ctx context.Context, dst Surface) error {
	for {
		for !p.Visible() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.wake:
			}
		}
		if err := p.RenderTick(ctx, dst); err != nil {
			return err
		}
		delay := p.FrameDelay()
		if delay <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *Pipeline) reseedSim() {
	if r, ok := p.sim.(Reseeder); ok {
		r.Reseed()
		return
	}
	p.sim.Reset(p.now().UnixNano())
}

// fitFrames reallocates both frames when the sim was resized.
func (p *Pipeline) fitFrames() {
	size := p.sim.Size()
	if p.frames[0].W == size.W && p.frames[0].H == size.H {
		return
	}
	p.frames[0].resize(size.W, size.H)
	p.frames[1].resize(size.W, size.H)
	p.rendered = 0
}

func (p *Pipeline) paint(dst *Frame, set settings) {
	values := p.sim.Field()
	if set.colorScaling != colormap.NeutralScaling {
		if cap(p.scratch) < len(values) {
			p.scratch = make([]float64, len(values))
		}
		p.scratch = p.scratch[:len(values)]
		colormap.ApplyContrast(p.scratch, values, set.colorScaling)
		values = p.scratch
	}
	dst.Paint(values, set.palette)
}

func (p *Pipeline) observe() {
	now := p.now()
	if p.windowCount == 0 {
		p.windowStart = now
	}
	p.windowCount++
	if p.windowCount <= statsWindow {
		return
	}
	elapsed := now.Sub(p.windowStart)
	avg := elapsed / statsWindow
	p.stats = Stats{Frames: p.rendered, Average: avg}
	if avg > 0 {
		p.stats.FPS = float64(time.Second) / float64(avg)
	}
	p.logger.Printf("render: average frame time %v (%.1f fps)", avg, p.stats.FPS)
	p.windowStart = now
	p.windowCount = 1
}
