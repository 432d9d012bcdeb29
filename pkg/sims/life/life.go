package life

import (
	"strconv"

	"lifegate/pkg/core"
)

// NextGeneration applies Conway's rule to g and returns a new grid of the same
// size. Cells outside the grid count as dead; there is no wraparound. The
// input is never modified.
func NextGeneration(g *core.Grid) *core.Grid {
	next := core.NewGrid(g.W, g.H)
	step(g.Cells(), next.Cells(), g.W, g.H)
	return next
}

func step(cur, nxt []uint8, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					neighbors += int(cur[ny*w+nx])
				}
			}
			idx := y*w + x
			alive := cur[idx] == 1
			nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				nxt[idx] = 1
			}
		}
	}
}

// Config holds the sandbox dimensions and soup density.
type Config struct {
	Width   int
	Height  int
	Density float64
}

// DefaultConfig returns the default sandbox configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Density: 0.5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Life is a free-play sandbox running the bounded rule on a random soup.
type Life struct {
	cfg  Config
	cur  *core.Grid
	nxt  *core.Grid
	turn int
}

// New returns a Life sandbox with the provided dimensions.
func New(w, h int) *Life {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Life sandbox configured from cfg.
func NewWithConfig(cfg Config) *Life {
	return &Life{cfg: cfg, cur: core.NewGrid(cfg.Width, cfg.Height), nxt: core.NewGrid(cfg.Width, cfg.Height)}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.cur.Size() }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Grid exposes the current grid.
func (l *Life) Grid() *core.Grid { return l.cur }

// Generation reports how many steps ran since the last reset.
func (l *Life) Generation() int { return l.turn }

// Reset fills the board with a random soup derived from seed.
func (l *Life) Reset(seed int64) {
	rng := core.NewRNG(seed)
	core.FillDensity(rng.Source(), l.cur.Cells(), l.cfg.Density)
	l.turn = 0
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	step(l.cur.Cells(), l.nxt.Cells(), l.cur.W, l.cur.H)
	l.cur, l.nxt = l.nxt, l.cur
	l.turn++
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
