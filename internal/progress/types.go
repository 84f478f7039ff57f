// Package progress provides terminal capability detection and the spinner
// shown while a registry request is in flight.
package progress

// TerminalCapabilities describes what the output terminal can render.
type TerminalCapabilities struct {
	IsTTY           bool // stderr is an interactive terminal
	SupportsColor   bool
	SupportsUnicode bool
}

// ProgressSymbols holds the glyphs used for status output.
type ProgressSymbols struct {
	Checkmark  string
	Warning    string
	SpinnerSet int // index into spinner.CharSets
}
