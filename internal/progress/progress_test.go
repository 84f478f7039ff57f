// Package progress_test tests terminal capability detection and spinner gating.
// Related: internal/progress/terminal.go, internal/progress/spinner.go
// Tags: progress, terminal, capabilities, env-vars, unicode, colors
package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := map[string]struct {
		isTTY       bool
		env         map[string]string
		wantColor   bool
		wantUnicode bool
	}{
		"tty with defaults": {
			isTTY:       true,
			wantColor:   true,
			wantUnicode: true,
		},
		"not a tty": {
			isTTY: false,
		},
		"NO_COLOR disables color": {
			isTTY:       true,
			env:         map[string]string{"NO_COLOR": "1"},
			wantUnicode: true,
		},
		"UPDATECHECK_ASCII forces ASCII": {
			isTTY:     true,
			env:       map[string]string{"UPDATECHECK_ASCII": "1"},
			wantColor: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			t.Setenv("UPDATECHECK_ASCII", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			caps := capabilitiesFor(tt.isTTY)
			assert.Equal(t, tt.isTTY, caps.IsTTY)
			assert.Equal(t, tt.wantColor, caps.SupportsColor)
			assert.Equal(t, tt.wantUnicode, caps.SupportsUnicode)
		})
	}
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	unicode := SelectSymbols(TerminalCapabilities{IsTTY: true, SupportsUnicode: true})
	assert.Equal(t, "✓", unicode.Checkmark)
	assert.Equal(t, 14, unicode.SpinnerSet)

	ascii := SelectSymbols(TerminalCapabilities{})
	assert.Equal(t, "[OK]", ascii.Checkmark)
	assert.Equal(t, "[!]", ascii.Warning)
	assert.Equal(t, 9, ascii.SpinnerSet)
}

func TestSpinner_SilentWithoutTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(TerminalCapabilities{}, &buf)
	s.Start("Checking for updates...")
	assert.False(t, s.Active())
	s.Stop()

	assert.Empty(t, buf.String())
}

func TestSpinner_StartStop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(TerminalCapabilities{IsTTY: true, SupportsUnicode: true}, &buf)
	s.Start("Checking for updates...")
	assert.True(t, s.Active())
	s.Stop()
	assert.False(t, s.Active())
	s.Stop()
}
