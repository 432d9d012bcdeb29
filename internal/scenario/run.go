package scenario

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lifegate/internal/board"
	"lifegate/internal/brush"
	"lifegate/internal/challenge"
	"lifegate/internal/detect"
	"lifegate/pkg/sims/life"
)

// Options tune a scenario run.
type Options struct {
	// Window overrides the challenge's targetTurn when positive.
	Window int
	// Extra objects, typically the player's construction, are stamped on
	// top of the scenario setup.
	Extra []board.PlacedObject
	// Workers bounds RunAll's parallelism. Zero uses GOMAXPROCS.
	Workers int
}

// DetectorResult is one detector's verdict.
type DetectorResult struct {
	Index    int
	Value    uint8
	Expected detect.State
	Passed   bool
}

// Result is a scenario's verdict. A failing scenario is a normal result.
type Result struct {
	Scenario    string
	Generations int
	Detectors   []DetectorResult
	Passed      bool
}

// Run simulates sc for the configured window, sampling detectors after every
// generation, and reports whether every detector ends on its expected state.
func Run(ctx context.Context, ch *challenge.Challenge, sc challenge.TestScenario, lib brush.Library, opts Options) (Result, error) {
	final, err := Simulate(ctx, ch, sc, lib, opts)
	if err != nil {
		return Result{}, err
	}
	return evaluate(sc.Name, final.Generation, final.Detectors), nil
}

// Simulate builds sc with the extra objects on top and steps it through the
// window. The returned state holds the final board and sampled detectors.
func Simulate(ctx context.Context, ch *challenge.Challenge, sc challenge.TestScenario, lib brush.Library, opts Options) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	if err := ch.Validate(); err != nil {
		return State{}, err
	}
	state, err := Apply(sc, State{}, lib, ch.Size())
	if err != nil {
		return State{}, err
	}
	state.Grid = board.ApplyPlacedObjects(state.Grid, opts.Extra)
	state.PlacedObjects = append(state.PlacedObjects, opts.Extra...)
	window := ch.TargetTurn
	if opts.Window > 0 {
		window = opts.Window
	}
	for state.Generation < window {
		if state.Generation%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return State{}, err
			}
		}
		state.Grid = life.NextGeneration(state.Grid)
		state.Generation++
		detect.SampleAll(state.Detectors, state.Grid, ch.DetectorFalloffPeriod)
	}
	return state, nil
}

const cancelCheckInterval = 256

func evaluate(name string, generations int, ds []detect.Detector) Result {
	res := Result{Scenario: name, Generations: generations, Passed: true}
	res.Detectors = make([]DetectorResult, len(ds))
	for i, d := range ds {
		passed := d.Passing()
		res.Detectors[i] = DetectorResult{Index: d.Index, Value: d.Value, Expected: d.Expected(), Passed: passed}
		if !passed {
			res.Passed = false
		}
	}
	return res
}

// RunAll runs every scenario of ch on a bounded worker pool. Cancellation is
// checked before each scenario starts; on cancellation the results gathered
// so far are returned with the context error. Results keep scenario order and
// skipped scenarios are omitted.
func RunAll(ctx context.Context, ch *challenge.Challenge, lib brush.Library, opts Options) ([]Result, error) {
	scenarios := GetTestScenarios(ch)
	if len(scenarios) == 0 {
		return nil, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(scenarios))
	done := make([]bool, len(scenarios))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res, err := Run(ctx, ch, sc, lib, opts)
			if err != nil {
				return err
			}
			results[i] = res
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	out := make([]Result, 0, len(results))
	for i, res := range results {
		if done[i] {
			out = append(out, res)
		}
	}
	if err != nil {
		return out, err
	}
	return out, ctx.Err()
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return len(results) > 0
}
