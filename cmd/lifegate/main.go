//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"lifegate/internal/app"
	"lifegate/internal/brush"
	"lifegate/internal/session"
	"lifegate/pkg/core"
	_ "lifegate/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := app.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	ebiten.SetTPS(cfg.TPS)
	if cfg.Challenge == "" {
		runSandbox(cfg)
		return
	}

	ch, err := app.LoadChallenge(cfg.Challenge)
	if err != nil {
		log.Fatalf("load challenge: %v", err)
	}
	lib := brush.Builtin()
	s, err := session.New(ch, lib, log.New(os.Stderr, "[session] ", log.LstdFlags))
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	game := app.New(s, lib, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lifegate: " + ch.Name)
	ebiten.SetWindowSize(w, h)
	run(game)
}

func runSandbox(cfg *app.Config) {
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sim := factory(nil)
	sim.Reset(cfg.Seed)
	game := app.NewSandbox(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lifegate sandbox: " + sim.Name())
	ebiten.SetWindowSize(w, h)
	run(game)
}

func run(game ebiten.Game) {
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
