package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/updatecheck/internal/build"
	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, platform, and Go version information for updatecheck",
	Example: `  # Show version info
  updatecheck version

  # Plain output (for scripts)
  updatecheck version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = shared.GroupInfo
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "updatecheck %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", update.Platform())
}

// printPrettyVersion prints a styled version output with logo and box
func printPrettyVersion(w io.Writer) {
	termWidth := shared.GetTerminalWidth()
	colors := shared.NewColors()

	fmt.Fprintln(w)
	logoPadding := max((termWidth-shared.LogoDisplayWidth)/2, 0)
	for _, line := range shared.Logo {
		fmt.Fprintln(w, colors.Cyan(strings.Repeat(" ", logoPadding)+line))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, colors.Dim(shared.CenterText(shared.Tagline, termWidth)))
	fmt.Fprintln(w)

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", update.Platform()},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))
	blank := pad + shared.BoxVertical + strings.Repeat(" ", boxWidth-2) + shared.BoxVertical

	fmt.Fprintln(w, pad+shared.BoxTopLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxTopRight)
	fmt.Fprintln(w, blank)
	for _, item := range info {
		line := fmt.Sprintf("  %s    %s", colors.Yellow(fmt.Sprintf("%12s", item.label)), colors.White(item.value))
		// Colors add invisible bytes, so pad on the visible width.
		if lineLen := 12 + 4 + len(item.value) + 2; lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, pad+shared.BoxVertical+" "+line+" "+shared.BoxVertical)
	}
	fmt.Fprintln(w, blank)
	fmt.Fprintln(w, pad+shared.BoxBottomLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxBottomRight)
	fmt.Fprintln(w)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
