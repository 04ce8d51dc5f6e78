//go:build ebiten

package main

import (
	"errors"
	"flag"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	_ "mad-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("bad -log value: %v", err)
	}
	log.SetLevel(level)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
	}

	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("create %s: %v", cfg.Sim, err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()
	log.WithFields(log.Fields{
		"sim":  sim.Name(),
		"w":    size.W,
		"h":    size.H,
		"seed": cfg.Seed,
		"tps":  cfg.TPS,
	}).Info("starting")

	ebiten.SetWindowTitle("mad-sand - " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
