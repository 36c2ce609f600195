//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"smoothlife/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

const hudWidth = 260

func main() {
	settings := app.NewSettings()
	settings.FrameDelay = 16 * time.Millisecond
	settings.Bind(flag.CommandLine)
	flag.Parse()

	ctrl, err := app.NewController(settings, log.Default())
	if err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	game := app.New(ctx, ctrl, hudWidth, log.Default())

	ebiten.SetWindowTitle("smoothlife")
	ebiten.SetTPS(settings.TPS)
	ebiten.SetWindowSize(settings.Width+hudWidth, settings.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
