package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"smoothlife/internal/app"
	"smoothlife/internal/render"
)

func main() {
	settings := app.NewSettings()
	settings.FrameDelay = 0
	settings.Width, settings.Height = 320, 240
	settings.Bind(flag.CommandLine)
	frames := flag.Int("frames", 120, "number of frames to record")
	every := flag.Int("every", 1, "simulation ticks per recorded frame")
	delay := flag.Int("gif_delay", 5, "GIF frame delay in hundredths of a second")
	out := flag.String("out", "smoothlife.gif", "output path")
	flag.Parse()

	if *frames < 1 || *every < 1 {
		log.Fatalf("frames and every must be positive")
	}
	ctrl, err := app.NewController(settings, log.Default())
	if err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := ctrl.Pipeline()
	rec := render.NewGIFRecorder(*delay)
	for rec.Frames() < *frames && p.Visible() {
		// Only the last tick of each group is drawn.
		var err error
		for i := 1; i < *every && err == nil; i++ {
			err = p.RenderTick(ctx, nil)
		}
		if err == nil {
			err = p.RenderTick(ctx, rec)
		}
		if errors.Is(err, render.ErrFrameAbandoned) {
			log.Printf("interrupted after %d frames", rec.Frames())
			break
		}
		if err != nil {
			log.Fatalf("render: %v", err)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		log.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *out, err)
	}
	eng := ctrl.Engine()
	log.Printf("wrote %d frames to %s (%d reseeds, final mass %.1f)", rec.Frames(), *out, eng.Reseeds(), eng.Mass())
}
