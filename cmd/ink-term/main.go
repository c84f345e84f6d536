package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/term"
)

func main() {
	rulesPath := flag.String("config", "", "rules YAML (default: embedded rules)")
	stage := flag.Int("stage", 1, "stage to start on")
	seed := flag.Int64("seed", 1, "simulation seed")
	mute := flag.Bool("mute", false, "disable sound")
	volume := flag.Float64("volume", 0.5, "effect volume 0..1")
	flag.Parse()

	if err := run(*rulesPath, *stage, *seed, *mute, *volume); err != nil {
		fmt.Fprintf(os.Stderr, "ink-term: %v\n", err)
		os.Exit(1)
	}
}

func run(rulesPath string, stage int, seed int64, mute bool, volume float64) error {
	rules, err := config.LoadOrDefault(rulesPath)
	if err != nil {
		return err
	}

	opts := []term.Option{term.WithStage(stage), term.WithSeed(seed)}
	if !mute {
		b, err := term.NewBeeper(volume)
		if err != nil {
			// Non-fatal, the game runs without sound.
			log.Printf("audio disabled: %v", err)
		} else {
			defer b.Close()
			opts = append(opts, term.WithSounds(b))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	app, err := term.New(screen, rules, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
