package render

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"smoothlife/internal/colormap"
	"smoothlife/internal/core"
)

type fakeSim struct {
	size    core.Size
	field   []float64
	steps   int
	reseeds int
	block   chan struct{}
}

func newFakeSim(w, h int) *fakeSim {
	return &fakeSim{size: core.Size{W: w, H: h}, field: make([]float64, w*h)}
}

func (s *fakeSim) Name() string     { return "fake" }
func (s *fakeSim) Size() core.Size  { return s.size }
func (s *fakeSim) Reset(int64)      { s.Reseed() }
func (s *fakeSim) Field() []float64 { return s.field }
func (s *fakeSim) Reseed()          { s.reseeds++ }

func (s *fakeSim) Step() {
	if s.block != nil {
		<-s.block
	}
	s.steps++
	for i := range s.field {
		s.field[i] = float64((s.steps+i)%10) / 10
	}
}

func (s *fakeSim) resize(w, h int) {
	s.size = core.Size{W: w, H: h}
	s.field = make([]float64, w*h)
}

type recordingSurface struct {
	frames [][]colormap.ARGB
	scales []int
	onBlit func(n int)
}

func (r *recordingSurface) Blit(f *Frame, scale int) error {
	r.frames = append(r.frames, append([]colormap.ARGB(nil), f.Pix...))
	r.scales = append(r.scales, scale)
	if r.onBlit != nil {
		r.onBlit(len(r.frames))
	}
	return nil
}

func quiet() Option { return WithLogger(log.New(io.Discard, "", 0)) }

func paintedFor(values []float64, pal *colormap.Palette) []colormap.ARGB {
	out := make([]colormap.ARGB, len(values))
	for i, v := range values {
		out[i] = pal.GetFast(v)
	}
	return out
}

func TestRenderTickDrawsPreviousFrame(t *testing.T) {
	sim := newFakeSim(4, 3)
	p := NewPipeline(sim, quiet())
	p.SetScale(3)
	surf := &recordingSurface{}
	ctx := context.Background()

	if err := p.RenderTick(ctx, surf); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(surf.frames) != 0 {
		t.Fatalf("first tick has nothing to draw, got %d blits", len(surf.frames))
	}
	afterFirst := paintedFor(sim.field, colormap.Default())

	if err := p.RenderTick(ctx, surf); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(surf.frames) != 1 || surf.scales[0] != 3 {
		t.Fatalf("blits=%d scales=%v", len(surf.frames), surf.scales)
	}
	for i, c := range surf.frames[0] {
		if c != afterFirst[i] {
			t.Fatalf("pixel %d = %08x, want %08x", i, uint32(c), uint32(afterFirst[i]))
		}
	}
	afterSecond := paintedFor(sim.field, colormap.Default())
	for i, c := range p.Current().Pix {
		if c != afterSecond[i] {
			t.Fatalf("current pixel %d = %08x, want %08x", i, uint32(c), uint32(afterSecond[i]))
		}
	}
	if sim.steps != 2 {
		t.Fatalf("steps = %d", sim.steps)
	}
}

func TestHiddenPipelineIsIdle(t *testing.T) {
	sim := newFakeSim(2, 2)
	p := NewPipeline(sim, quiet())
	p.SetVisible(false)
	surf := &recordingSurface{}
	if err := p.RenderTick(context.Background(), surf); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if sim.steps != 0 || len(surf.frames) != 0 {
		t.Fatalf("hidden tick did work: steps=%d blits=%d", sim.steps, len(surf.frames))
	}
}

func TestVisibilityOnReseeds(t *testing.T) {
	sim := newFakeSim(2, 2)
	p := NewPipeline(sim, quiet())
	ctx := context.Background()

	p.SetVisible(true)
	_ = p.RenderTick(ctx, nil)
	if sim.reseeds != 0 {
		t.Fatalf("already visible, reseeds = %d", sim.reseeds)
	}
	p.SetVisible(false)
	p.SetVisible(true)
	_ = p.RenderTick(ctx, nil)
	_ = p.RenderTick(ctx, nil)
	if sim.reseeds != 1 {
		t.Fatalf("reseeds = %d, want 1", sim.reseeds)
	}
}

func TestCancelledJoinAbandonsFrame(t *testing.T) {
	sim := newFakeSim(2, 2)
	sim.block = make(chan struct{})
	p := NewPipeline(sim, quiet())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.RenderTick(ctx, nil)
	if !errors.Is(err, ErrFrameAbandoned) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if p.Visible() {
		t.Fatalf("abandoned pipeline must stop scheduling")
	}
	if p.Current() != nil {
		t.Fatalf("abandoned frame was published")
	}
	// Hidden ticks do not touch the in-flight worker.
	if err := p.RenderTick(context.Background(), nil); err != nil {
		t.Fatalf("hidden tick: %v", err)
	}

	close(sim.block)
	p.SetVisible(true)
	if err := p.RenderTick(context.Background(), nil); err != nil {
		t.Fatalf("resumed tick: %v", err)
	}
	if sim.steps != 2 || sim.reseeds != 1 || p.Current() == nil {
		t.Fatalf("steps=%d reseeds=%d current=%v", sim.steps, sim.reseeds, p.Current())
	}
}

func TestColorScalingAppliesContrast(t *testing.T) {
	sim := newFakeSim(5, 2)
	p := NewPipeline(sim, quiet())
	pal := colormap.Lookup("gray")
	p.SetPalette(pal)
	p.SetColorScaling(90)
	if err := p.RenderTick(context.Background(), nil); err != nil {
		t.Fatalf("tick: %v", err)
	}
	for i, v := range sim.field {
		want := pal.GetFast(colormap.Contrast(v, 90))
		if got := p.Current().Pix[i]; got != want {
			t.Fatalf("pixel %d = %08x, want %08x", i, uint32(got), uint32(want))
		}
	}
}

func TestResizeReallocatesFrames(t *testing.T) {
	sim := newFakeSim(4, 4)
	p := NewPipeline(sim, quiet())
	surf := &recordingSurface{}
	ctx := context.Background()
	_ = p.RenderTick(ctx, surf)
	sim.resize(6, 2)
	_ = p.RenderTick(ctx, surf)
	if len(surf.frames) != 0 {
		t.Fatalf("stale frame drawn after resize")
	}
	f := p.Current()
	if f.W != 6 || f.H != 2 || len(f.Pix) != 12 {
		t.Fatalf("frame = %dx%d (%d px)", f.W, f.H, len(f.Pix))
	}
}

func TestStatsAverageFrameTime(t *testing.T) {
	sim := newFakeSim(2, 2)
	var clock time.Time
	tick := func() time.Time {
		clock = clock.Add(10 * time.Millisecond)
		return clock
	}
	p := NewPipeline(sim, quiet(), WithClock(tick))
	for i := 0; i < statsWindow+1; i++ {
		if err := p.RenderTick(context.Background(), nil); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	st := p.Stats()
	if st.Average != 10*time.Millisecond || st.Frames != statsWindow+1 {
		t.Fatalf("stats = %+v", st)
	}
	if st.FPS < 99.9 || st.FPS > 100.1 {
		t.Fatalf("fps = %v", st.FPS)
	}
}

func TestPresentRedrawsLastFrame(t *testing.T) {
	sim := newFakeSim(3, 3)
	p := NewPipeline(sim, quiet())
	surf := &recordingSurface{}
	if err := p.Present(surf); err != nil || len(surf.frames) != 0 {
		t.Fatalf("present before first tick: err=%v blits=%d", err, len(surf.frames))
	}
	_ = p.RenderTick(context.Background(), surf)
	if err := p.Present(surf); err != nil {
		t.Fatalf("present: %v", err)
	}
	if len(surf.frames) != 1 || sim.steps != 1 {
		t.Fatalf("blits=%d steps=%d", len(surf.frames), sim.steps)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := newFakeSim(2, 2)
	p := NewPipeline(sim, quiet())
	p.SetFrameDelay(time.Millisecond)
	p.SetVisible(false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	surf := &recordingSurface{onBlit: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, surf) }()
	p.SetVisible(true)

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
	if len(surf.frames) != 3 {
		t.Fatalf("blits = %d", len(surf.frames))
	}
}

func TestFrameImage(t *testing.T) {
	f := NewFrame(2, 1)
	f.Pix[1] = colormap.NewARGB(10, 20, 30)
	img := f.RGBA()
	if got := img.RGBAAt(1, 0); got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Fatalf("pixel = %+v", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 0 || got.A != 255 {
		t.Fatalf("background = %+v", got)
	}
	if r, g, b, a := f.At(5, 5).RGBA(); r|g|b|a != 0 {
		t.Fatalf("out of bounds should be transparent")
	}
}
