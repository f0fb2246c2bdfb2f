package core

// HeaderWindow is the two-beat byte region over which the protocol header
// fields are checked. It is recomputed every cycle and never persisted beyond
// one filter evaluation.
type HeaderWindow struct {
	Bytes [WindowBytes]byte
	Valid bool
}

// AssembleWindow combines the first admitted beat of a packet with the beat
// that immediately follows it. The window is valid only when both beats are
// valid and the first beat arrived at full width; a partial first beat
// invalidates the window instead of triggering partial reconstruction, which
// keeps the assembler a plain concatenation with no reassembly buffering.
func AssembleWindow(first, second Beat) HeaderWindow {
	var w HeaderWindow
	copy(w.Bytes[:BeatBytes], first.Data[:])
	copy(w.Bytes[BeatBytes:], second.Data[:])
	w.Valid = first.Valid && second.Valid && first.KeepFull()
	return w
}
