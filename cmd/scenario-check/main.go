package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"lifegate/internal/app"
	"lifegate/internal/brush"
	"lifegate/internal/challenge"
	"lifegate/internal/guidance"
	"lifegate/internal/render"
	"lifegate/internal/scenario"
)

// placements collects repeated -place flags of the form brush@x,y[@degrees].
type placements []challenge.Placement

func (p *placements) String() string { return fmt.Sprint(len(*p)) }

func (p *placements) Set(v string) error {
	parts := strings.Split(v, "@")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("want brush@x,y[@degrees], got %q", v)
	}
	xy := strings.Split(parts[1], ",")
	if len(xy) != 2 {
		return fmt.Errorf("want x,y in %q", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xy[0]))
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(strings.TrimSpace(xy[1]))
	if err != nil {
		return err
	}
	pl := challenge.Placement{X: x, Y: y, Brush: parts[0]}
	if len(parts) == 3 {
		if pl.Rotate, err = strconv.Atoi(parts[2]); err != nil {
			return err
		}
	}
	*p = append(*p, pl)
	return nil
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent scenario runs")
	window := flag.Int("window", 0, "generations to simulate (0 uses the challenge targetTurn)")
	snapshots := flag.String("snapshot", "", "directory for PNG snapshots of each scenario's final board")
	scale := flag.Int("scale", 4, "pixel scale for snapshots")
	var construction placements
	flag.Var(&construction, "place", "construction object brush@x,y[@degrees] relative to the grid midpoint (repeatable)")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("scenario-check: at least one challenge file is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lib := brush.Builtin()
	failed := false
	for _, path := range flag.Args() {
		ch, err := app.LoadChallenge(path)
		if err != nil {
			log.Fatalf("scenario-check: %v", err)
		}
		extra, _, err := scenario.Resolve(construction, lib, ch.Size(), 0)
		if err != nil {
			log.Fatalf("scenario-check: construction: %v", err)
		}
		opts := scenario.Options{Window: *window, Extra: extra, Workers: *workers}

		fmt.Printf("%s: %q, %d scenarios (%d workers)\n", path, ch.Name, len(ch.TestScenarios), *workers)
		start := time.Now()
		results, err := scenario.RunAll(ctx, ch, lib, opts)
		if err != nil {
			log.Fatalf("scenario-check: %s: %v", path, err)
		}
		for _, res := range results {
			printResult(res)
		}
		verdict := "PASS"
		if !scenario.Passed(results) {
			verdict = "FAIL"
			failed = true
		}
		fmt.Printf("%s (elapsed %s)\n\n", verdict, time.Since(start).Round(time.Millisecond))

		if *snapshots != "" {
			if err := writeSnapshots(ctx, *snapshots, *scale, ch, lib, opts); err != nil {
				log.Fatalf("scenario-check: snapshots: %v", err)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printResult(res scenario.Result) {
	mark := "ok"
	if !res.Passed {
		mark = "FAIL"
	}
	fmt.Printf("  %-4s %s after %d generations\n", mark, res.Scenario, res.Generations)
	for _, d := range res.Detectors {
		if d.Passed {
			continue
		}
		fmt.Printf("         detector %d: value %d, expected %s\n", d.Index, d.Value, d.Expected)
	}
}

func writeSnapshots(ctx context.Context, dir string, scale int, ch *challenge.Challenge, lib brush.Library, opts scenario.Options) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	for i, sc := range scenario.GetTestScenarios(ch) {
		final, err := scenario.Simulate(ctx, ch, sc, lib, opts)
		if err != nil {
			return err
		}
		raster := render.NewRaster(ch.Size(), scale)
		render.NewRenderer().Render(raster, final.Grid, nil, render.Options{
			GuidancePixels: guidance.GenerateAllPixels(final.Guidance, final.Generation, ch.Width, ch.Height),
			Detectors:      final.Detectors,
		})

		name := filepath.Join(dir, fmt.Sprintf("%s-%02d.png", slug(ch.Name), i))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := png.Encode(f, raster.Image()); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)
	}
	return nil
}

func slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
}
