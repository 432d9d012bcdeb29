package core

// SingleFlight guards an advance+render cycle against duplicate dispatch for
// the same logical tick. The flag is set when a cycle begins and is released
// only by the owning driver's next scheduling step.
type SingleFlight struct {
	busy bool
}

// TryBegin marks a cycle as in flight. It returns false, and the caller must
// do nothing, when a cycle is already in flight.
func (s *SingleFlight) TryBegin() bool {
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// Release clears the in-flight flag.
func (s *SingleFlight) Release() { s.busy = false }

// Busy reports whether a cycle is in flight.
func (s *SingleFlight) Busy() bool { return s.busy }
