package update

import (
	"fmt"
	"time"
)

const (
	// ReleaseDateLayout is the layout of the upload_time field in responses.
	ReleaseDateLayout = "2006-01-02T15:04:05"

	// absoluteDateLayout renders dates too old (or too far ahead) for a relative phrase.
	absoluteDateLayout = "Monday January 02, 2006"
)

// Result describes a package that has a newer version available.
// A nil *Result means no update is available or the check failed.
type Result struct {
	PackageName      string     `json:"package_name" yaml:"package_name"`
	RunningVersion   string     `json:"running_version" yaml:"running_version"`
	AvailableVersion string     `json:"available_version" yaml:"available_version"`
	ReleaseDate      *time.Time `json:"release_date,omitempty" yaml:"release_date,omitempty"`
}

// NewResult builds a Result. An empty releaseDate leaves ReleaseDate unset.
func NewResult(packageName, running, available, releaseDate string) (*Result, error) {
	r := &Result{
		PackageName:      packageName,
		RunningVersion:   running,
		AvailableVersion: available,
	}
	if releaseDate != "" {
		t, err := time.ParseInLocation(ReleaseDateLayout, releaseDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing release date %q: %w", releaseDate, err)
		}
		r.ReleaseDate = &t
	}
	return r, nil
}

// String renders the human readable update message.
func (r *Result) String() string {
	return r.format(time.Now())
}

func (r *Result) format(now time.Time) string {
	msg := fmt.Sprintf("Version %s of %s is outdated. Version %s ",
		r.RunningVersion, r.PackageName, r.AvailableVersion)
	if r.ReleaseDate != nil {
		return msg + fmt.Sprintf("was released %s.", prettyDate(*r.ReleaseDate, now))
	}
	return msg + "is available."
}

// PrettyDate describes t relative to the current time, e.g. "3 hours ago".
// Dates more than a week old or in the future are printed in full.
func PrettyDate(t time.Time) string {
	return prettyDate(t, time.Now())
}

// prettyDate splits the elapsed time into whole days and the remaining
// seconds of the day; minutes and hours are truncated, not rounded.
func prettyDate(t, now time.Time) string {
	diff := now.Sub(t)
	days := int(diff / (24 * time.Hour))
	seconds := int((diff % (24 * time.Hour)) / time.Second)

	switch {
	case diff < 0 || days > 7:
		return t.UTC().Format(absoluteDateLayout)
	case days == 1:
		return "1 day ago"
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	case seconds <= 1:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%d seconds ago", seconds)
	case seconds < 120:
		return "1 minute ago"
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 7200:
		return "1 hour ago"
	default:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	}
}
