package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/game"
)

func main() {
	rulesPath := flag.String("config", "", "rules YAML (default: embedded rules)")
	stage := flag.Int("stage", 1, "stage to start on")
	seed := flag.Int64("seed", 1, "simulation seed")
	mute := flag.Bool("mute", false, "disable sound")
	volume := flag.Float64("volume", 0.6, "effect volume 0..1")
	flag.Parse()

	rules, err := config.LoadOrDefault(*rulesPath)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(rules,
		game.WithStage(*stage),
		game.WithSeed(*seed),
		game.WithMute(*mute),
		game.WithVolume(*volume),
	)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Ink Wars")
	ebiten.SetWindowSize(g.Size())
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
