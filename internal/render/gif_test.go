package render

import (
	"bytes"
	"context"
	"image/gif"
	"testing"
)

func TestGIFRecorderCapturesTicks(t *testing.T) {
	sim := newFakeSim(6, 4)
	p := NewPipeline(sim, quiet())
	p.SetScale(2)
	rec := NewGIFRecorder(5)
	for i := 0; i < 4; i++ {
		if err := p.RenderTick(context.Background(), rec); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if err := p.Present(rec); err != nil {
		t.Fatalf("present: %v", err)
	}
	if rec.Frames() != 4 {
		t.Fatalf("frames = %d, want 4", rec.Frames())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 4 || anim.Delay[0] != 5 {
		t.Fatalf("decoded %d frames, delay %v", len(anim.Image), anim.Delay)
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("frame bounds = %v", b)
	}
}
