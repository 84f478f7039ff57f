package util

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/updatecheck"
	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
	"github.com/ariel-frischer/updatecheck/internal/config"
	"github.com/ariel-frischer/updatecheck/internal/progress"
	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	ckURL      string
	ckTimeout  time.Duration
	ckFields   []string
	ckOutput   string
	ckPlain    bool
	ckNoCache  bool
	ckExitCode bool
)

// checkCmd is the command for checking if an update is available.
var checkCmd = &cobra.Command{
	Use:     "check <package> <version>",
	Aliases: []string{"ck"},
	Short:   "Check if a newer version of a package is available (ck)",
	Long: `Check if a newer version of a package is available.

The answer is cached for an hour and shared with other processes through the
cache file, so repeated checks do not reach the registry. A failed request
reads as "no update available"; run with --debug to see why.`,
	Example: `  # Check a package
  updatecheck check praw 3.0.0

  # Send extra fields to the registry
  updatecheck check mytool 1.4.0 --field channel=stable

  # Machine readable output
  updatecheck check mytool 1.4.0 --output json

  # Fail a script when an update is available
  updatecheck check mytool 1.4.0 --plain --exit-code`,
	Args: checkArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = shared.GroupChecks
	checkCmd.Flags().StringVar(&ckURL, "url", "", "Registry endpoint (overrides config)")
	checkCmd.Flags().DurationVar(&ckTimeout, "timeout", 0, "Request timeout (overrides config)")
	checkCmd.Flags().StringArrayVarP(&ckFields, "field", "f", nil, "Extra key=value field sent to the registry (repeatable)")
	checkCmd.Flags().StringVarP(&ckOutput, "output", "o", OutputText, "Output format: text, json, yaml")
	checkCmd.Flags().BoolVar(&ckPlain, "plain", false, "Plain output without formatting")
	checkCmd.Flags().BoolVar(&ckNoCache, "no-cache", false, "Do not read or write the shared cache file")
	checkCmd.Flags().BoolVar(&ckExitCode, "exit-code", false, "Exit with code 10 when an update is available")
}

// checkArgs requires a package name and a parseable version.
func checkArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return shared.NewUsageError("expected <package> <version>, got %d argument(s)", len(args))
	}
	if strings.TrimSpace(args[0]) == "" {
		return shared.NewUsageError("package name must not be empty")
	}
	if _, err := update.ParseVersion(args[1]); err != nil {
		return shared.NewUsageError("%v", err)
	}
	return nil
}

// checkClient is the part of updatecheck.Client used by the check command.
type checkClient interface {
	Check(ctx context.Context, packageName, packageVersion string, extra map[string]any) *updatecheck.Result
}

// checkOptions controls how a check is reported.
type checkOptions struct {
	Fields []string
	Output string
	Plain  bool
	Caps   progress.TerminalCapabilities // symbols and colors for text output
}

// checkReport is the machine readable form of a check.
type checkReport struct {
	Package          string     `json:"package" yaml:"package"`
	RunningVersion   string     `json:"running_version" yaml:"running_version"`
	UpdateAvailable  bool       `json:"update_available" yaml:"update_available"`
	AvailableVersion string     `json:"available_version,omitempty" yaml:"available_version,omitempty"`
	ReleaseDate      *time.Time `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Message          string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// runCheck executes the update check command.
func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cmd, cfg); err != nil {
		return err
	}

	client := newClient(cfg, newLogger(cmd))

	caps := progress.DetectTerminalCapabilities()
	spin := progress.NewSpinner(caps, cmd.ErrOrStderr())
	spin.Start(fmt.Sprintf("Checking %s %s", args[0], args[1]))
	output, available, err := executeCheck(ctx, client, args[0], args[1], checkOptions{
		Fields: ckFields,
		Output: ckOutput,
		Plain:  ckPlain,
		Caps:   caps,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output)
	if ckExitCode && available {
		return shared.NewExitError(shared.ExitUpdateAvailable)
	}
	return nil
}

// applyCheckFlags overlays flags that were set on the command line.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	if cmd.Flags().Changed("url") {
		cfg.URL = ckURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = ckTimeout
	}
	if ckNoCache {
		cfg.NoCache = true
	}
	if err := config.Validate(cfg); err != nil {
		return shared.NewUsageError("%v", err)
	}
	return nil
}

// executeCheck performs the check and returns formatted output and whether an
// update is available.
func executeCheck(ctx context.Context, client checkClient, packageName, packageVersion string, opts checkOptions) (string, bool, error) {
	if err := validateOutput(opts.Output); err != nil {
		return "", false, err
	}
	extra, err := parseFields(opts.Fields)
	if err != nil {
		return "", false, err
	}

	result := client.Check(ctx, packageName, packageVersion, extra)
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	report := newCheckReport(packageName, packageVersion, result)
	switch opts.Output {
	case OutputJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", false, fmt.Errorf("encoding report: %w", err)
		}
		return string(data) + "\n", report.UpdateAvailable, nil
	case OutputYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", false, fmt.Errorf("encoding report: %w", err)
		}
		return string(data), report.UpdateAvailable, nil
	}

	if opts.Plain {
		return formatPlainReport(report), report.UpdateAvailable, nil
	}
	return formatPrettyReport(report, result, opts.Caps), report.UpdateAvailable, nil
}

// parseFields converts key=value flags into the registry's extra payload.
func parseFields(fields []string) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(fields))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, shared.NewUsageError("invalid field %q: expected key=value", field)
		}
		extra[key] = value
	}
	return extra, nil
}

func newCheckReport(packageName, packageVersion string, result *updatecheck.Result) checkReport {
	report := checkReport{
		Package:        packageName,
		RunningVersion: packageVersion,
	}
	if result != nil {
		report.UpdateAvailable = true
		report.AvailableVersion = result.AvailableVersion
		report.ReleaseDate = result.ReleaseDate
		report.Message = result.String()
	}
	return report
}

// formatPlainReport returns key: value lines for scripts.
func formatPlainReport(report checkReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package: %s\n", report.Package)
	fmt.Fprintf(&b, "running: %s\n", report.RunningVersion)
	if report.UpdateAvailable {
		fmt.Fprintf(&b, "latest: %s\n", report.AvailableVersion)
	}
	if report.ReleaseDate != nil {
		fmt.Fprintf(&b, "released: %s\n", report.ReleaseDate.Format(update.ReleaseDateLayout))
	}
	fmt.Fprintf(&b, "update_available: %t\n", report.UpdateAvailable)
	return b.String()
}

// formatPrettyReport returns output for humans, styled as far as caps allow.
func formatPrettyReport(report checkReport, result *updatecheck.Result, caps progress.TerminalCapabilities) string {
	symbols := progress.SelectSymbols(caps)
	if result == nil {
		green := paint(caps, color.FgGreen)
		return fmt.Sprintf("%s %s %s is up to date\n",
			green(symbols.Checkmark), report.Package, report.RunningVersion)
	}

	yellow := paint(caps, color.FgYellow, color.Bold)
	dim := paint(caps, color.Faint)
	cyan := paint(caps, color.FgCyan)
	arrow := "->"
	if caps.SupportsUnicode {
		arrow = "→"
	}
	return fmt.Sprintf("%s %s\n%s\n",
		yellow(symbols.Warning),
		result,
		dim(fmt.Sprintf("  %s %s %s", report.RunningVersion, arrow, cyan(report.AvailableVersion))))
}

// paint returns a color function, or plain formatting when caps has no color.
func paint(caps progress.TerminalCapabilities, attrs ...color.Attribute) func(a ...interface{}) string {
	if !caps.SupportsColor {
		return fmt.Sprint
	}
	return color.New(attrs...).SprintFunc()
}
