package board

import "lifegate/pkg/core"

// PlacedObject is a stamped pattern owned by a session.
type PlacedObject struct {
	ID         int
	Brush      string
	Pixels     []core.Point
	Generation int
}

// ApplyPlacedObjects returns a fresh copy of base with every in-bounds pixel of
// every object set alive. Out-of-bounds pixels are dropped. Because writes
// only ever set cells, repeated or reordered application yields the same grid.
func ApplyPlacedObjects(base *core.Grid, objects []PlacedObject) *core.Grid {
	out := base.Clone()
	for _, obj := range objects {
		for _, p := range obj.Pixels {
			out.Set(p.X, p.Y, 1)
		}
	}
	return out
}
