package brush

// cells converts (x, y) pairs into pattern offsets.
func cells(xy ...int) []Offset {
	out := make([]Offset, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Offset{DX: xy[i], DY: xy[i+1]})
	}
	return out
}

// Builtin returns the stock brushes shipped with the engine.
func Builtin() Library {
	return NewLibrary(
		New("block", cells(0, 0, 1, 0, 0, 1, 1, 1), ""),
		New("blinker", cells(0, 0, 0, 1, 0, 2), ""),
		// Travels one cell diagonally every four generations.
		New("glider", cells(1, 0, 2, 1, 0, 2, 1, 2, 2, 2), "SE/0/0/infinite/0.25"),
		New("lwss", cells(1, 0, 4, 0, 0, 1, 0, 2, 4, 2, 0, 3, 1, 3, 2, 3, 3, 3), "W/0/0/4/0.5"),
		New("eater", cells(0, 0, 1, 0, 0, 1, 2, 1, 2, 2, 2, 3, 3, 3), ""),
	)
}
