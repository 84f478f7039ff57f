package progress

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects stderr, where progress is written.
func DetectTerminalCapabilities() TerminalCapabilities {
	return capabilitiesFor(term.IsTerminal(int(os.Stderr.Fd())))
}

func capabilitiesFor(isTTY bool) TerminalCapabilities {
	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("UPDATECHECK_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Warning:    "⚠",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Warning:    "[!]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
