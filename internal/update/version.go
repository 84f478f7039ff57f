package update

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version format")

// versionRegex splits a version into its numeric release segments and an
// optional qualifier. The qualifier may follow a separator ("1.0-rc.1",
// "1.0.post2") or be attached directly ("1.0rc1"). Only a dash may introduce
// a qualifier that starts with a digit ("1.0-1", "1.0.0-0.3.7").
var versionRegex = regexp.MustCompile(`^[vV]?(\d+(?:\.\d+)*)(?:-([0-9A-Za-z][0-9A-Za-z.\-_]*)|[_.]?([A-Za-z][0-9A-Za-z.\-_]*))?(?:\+[0-9A-Za-z.\-]+)?$`)

// qualifierRank orders pre-release classes.
type qualifierRank int

const (
	rankAlpha qualifierRank = iota
	rankBeta
	rankCandidate
	rankOtherPre
)

// preRelease is the pre-release part of a version.
type preRelease struct {
	rank        qualifierRank
	identifiers []string
}

// Version represents a parsed release version.
type Version struct {
	Release   []int
	Qualifier string
	Raw       string

	pre  *preRelease // nil for final and post releases
	post int         // -1 when absent
	dev  int         // -1 when absent
}

// ParseVersion parses a version string such as "1.2.3", "v0.7", "1.0rc1",
// "2.0.0-beta.2", "1.4.post1" or "1.0a1.dev2". Build metadata after '+' is
// ignored.
func ParseVersion(s string) (Version, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty version string", ErrInvalidVersion)
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	parts := strings.Split(matches[1], ".")
	release := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: release segment %q: %v", ErrInvalidVersion, p, err)
		}
		release = append(release, n)
	}
	// Trailing zeros carry no ordering weight: 1.0 == 1.0.0.
	for len(release) > 1 && release[len(release)-1] == 0 {
		release = release[:len(release)-1]
	}

	dashed := matches[2] != ""
	qualifier := matches[2] + matches[3]
	v := Version{
		Release:   release,
		Qualifier: strings.ToLower(qualifier),
		Raw:       raw,
		post:      -1,
		dev:       -1,
	}
	if v.Qualifier != "" {
		if err := v.parseQualifier(dashed); err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
		}
	}
	return v, nil
}

// parseQualifier fills the pre, post and dev parts from v.Qualifier. The parts
// appear in that order, each at most once. Identifiers that are none of them
// make an unnamed pre-release ordered like a semver pre-release.
func (v *Version) parseQualifier(dashed bool) error {
	ids := splitIdentifiers(v.Qualifier)
	if len(ids) == 0 {
		v.pre = &preRelease{rank: rankOtherPre}
		return nil
	}

	if isNumeric(ids[0]) {
		// "1.0-1" is an implicit post release; "1.0.0-0.3.7" a numeric pre-release.
		if dashed && len(ids) == 1 {
			v.post, _ = strconv.Atoi(ids[0])
			return nil
		}
		v.pre = &preRelease{rank: rankOtherPre, identifiers: ids}
		return nil
	}

	for i := 0; i < len(ids); {
		id := ids[i]
		switch {
		case isPreTag(id) && v.pre == nil && v.post < 0 && v.dev < 0:
			rank := preRank(id)
			i++
			switch {
			case i < len(ids) && isNumeric(ids[i]):
				v.pre = &preRelease{rank: rank, identifiers: []string{ids[i]}}
				i++
			case i == len(ids):
				// "1.0a" is "1.0a0".
				v.pre = &preRelease{rank: rank, identifiers: []string{"0"}}
			default:
				v.pre = &preRelease{rank: rank}
			}
		case isPostTag(id) && v.post < 0 && v.dev < 0:
			v.post, i = numberAfter(ids, i+1)
		case id == "dev" && v.dev < 0:
			v.dev, i = numberAfter(ids, i+1)
		case v.post < 0 && v.dev < 0:
			// Anything else extends or starts an unnamed pre-release.
			if v.pre == nil {
				v.pre = &preRelease{rank: rankOtherPre}
			}
			v.pre.identifiers = append(v.pre.identifiers, id)
			i++
		default:
			return fmt.Errorf("unexpected %q after post or dev release", id)
		}
	}
	return nil
}

// numberAfter returns the numeric identifier at ids[i] (0 when absent) and the
// index of the next unread identifier.
func numberAfter(ids []string, i int) (int, int) {
	if i < len(ids) && isNumeric(ids[i]) {
		n, _ := strconv.Atoi(ids[i])
		return n, i + 1
	}
	return 0, i
}

func isNumeric(id string) bool {
	_, err := strconv.Atoi(id)
	return err == nil
}

func isPreTag(id string) bool {
	switch id {
	case "a", "alpha", "b", "beta", "c", "rc", "pre", "preview":
		return true
	}
	return false
}

func preRank(id string) qualifierRank {
	switch id {
	case "a", "alpha":
		return rankAlpha
	case "b", "beta":
		return rankBeta
	default:
		return rankCandidate
	}
}

func isPostTag(id string) bool {
	return id == "post" || id == "rev" || id == "r"
}

// splitIdentifiers breaks a qualifier into alternating alphabetic and
// numeric identifiers: "rc.1" and "rc1" both yield ["rc", "1"].
func splitIdentifiers(q string) []string {
	var ids []string
	var cur strings.Builder
	curDigit := false

	flush := func() {
		if cur.Len() > 0 {
			ids = append(ids, cur.String())
			cur.Reset()
		}
	}

	for _, r := range q {
		switch {
		case r == '.' || r == '-' || r == '_':
			flush()
		case r >= '0' && r <= '9':
			if !curDigit {
				flush()
			}
			curDigit = true
			cur.WriteRune(r)
		default:
			if curDigit {
				flush()
			}
			curDigit = false
			cur.WriteRune(r)
		}
	}
	flush()
	return ids
}

// String returns the original version text.
func (v Version) String() string {
	return v.Raw
}

// Compare compares two versions and returns:
//   - -1 if v < other
//   - 0 if v == other
//   - 1 if v > other
//
// Within one release, a dev release of the release itself sorts first, then
// pre-releases (alpha, beta, rc, unnamed), the final release, and post releases.
// A dev suffix sorts before the pre or post release it is attached to.
func (v Version) Compare(other Version) int {
	n := max(len(v.Release), len(other.Release))
	for i := 0; i < n; i++ {
		if c := compareInts(segment(v.Release, i), segment(other.Release, i)); c != 0 {
			return c
		}
	}

	if c := compareInts(v.phase(), other.phase()); c != 0 {
		return c
	}
	if v.pre != nil && other.pre != nil {
		if c := compareInts(int(v.pre.rank), int(other.pre.rank)); c != 0 {
			return c
		}
		if c := compareIdentifiers(v.pre.identifiers, other.pre.identifiers); c != 0 {
			return c
		}
	}
	if c := compareInts(v.post, other.post); c != 0 {
		return c
	}
	return compareInts(devKey(v.dev), devKey(other.dev))
}

// phase orders dev-only releases before pre-releases, and pre-releases before
// everything else of the same release.
func (v Version) phase() int {
	switch {
	case v.pre != nil:
		return 1
	case v.post < 0 && v.dev >= 0:
		return 0
	default:
		return 2
	}
}

// devKey makes a missing dev number sort after every dev release.
func devKey(dev int) int {
	if dev < 0 {
		return math.MaxInt
	}
	return dev
}

// CompareVersions parses both strings and compares them.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

func segment(release []int, i int) int {
	if i < len(release) {
		return release[i]
	}
	return 0
}

// compareIdentifiers orders qualifier identifiers the way semver orders
// pre-release fields: numeric identifiers compare numerically and sort before
// alphanumeric ones, and a shorter list sorts first when all shared fields match.
func compareIdentifiers(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}

func compareIdentifier(a, b string) int {
	na, aErr := strconv.Atoi(a)
	nb, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return compareInts(na, nb)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// compareInts compares two integers and returns -1, 0, or 1.
func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
