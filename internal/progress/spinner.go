package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner animates a message on a terminal. On anything else it is silent.
type Spinner struct {
	caps    TerminalCapabilities
	writer  io.Writer
	spinner *spinner.Spinner
}

// NewSpinner returns a spinner that writes to w when caps.IsTTY is set.
func NewSpinner(caps TerminalCapabilities, w io.Writer) *Spinner {
	return &Spinner{caps: caps, writer: w}
}

// Start shows msg with an animated indicator.
func (s *Spinner) Start(msg string) {
	if !s.caps.IsTTY || s.spinner != nil {
		return
	}
	s.spinner = spinner.New(
		spinner.CharSets[SelectSymbols(s.caps).SpinnerSet],
		100*time.Millisecond,
	)
	s.spinner.Writer = s.writer
	// The spinner only animates when its file is a terminal.
	if f, ok := s.writer.(*os.File); ok {
		spinner.WithWriterFile(f)(s.spinner)
	}
	s.spinner.Suffix = " " + msg
	s.spinner.Start()
}

// Stop clears the indicator. Safe to call when not started.
func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
		s.spinner = nil
	}
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.spinner != nil
}
