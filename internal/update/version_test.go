package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input         string
		wantRelease   []int
		wantQualifier string
		wantErr       bool
	}{
		"three segments": {
			input:       "1.2.3",
			wantRelease: []int{1, 2, 3},
		},
		"v prefix": {
			input:       "v0.6.1",
			wantRelease: []int{0, 6, 1},
		},
		"two segments": {
			input:       "0.7",
			wantRelease: []int{0, 7},
		},
		"trailing zeros dropped": {
			input:       "1.0.0",
			wantRelease: []int{1},
		},
		"zero version keeps one segment": {
			input:       "0.0",
			wantRelease: []int{0},
		},
		"attached qualifier": {
			input:         "1.0rc1",
			wantRelease:   []int{1},
			wantQualifier: "rc1",
		},
		"dashed qualifier": {
			input:         "2.0.0-Beta.2",
			wantRelease:   []int{2},
			wantQualifier: "beta.2",
		},
		"build metadata ignored": {
			input:       "1.4.2+build.7",
			wantRelease: []int{1, 4, 2},
		},
		"empty": {
			input:   "",
			wantErr: true,
		},
		"dev build": {
			input:   "dev",
			wantErr: true,
		},
		"garbage": {
			input:   "1..2",
			wantErr: true,
		},
		"numeric prerelease": {
			input:         "1.0.0-0.3.7",
			wantRelease:   []int{1},
			wantQualifier: "0.3.7",
		},
		"implicit post release": {
			input:         "1.0-1",
			wantRelease:   []int{1},
			wantQualifier: "1",
		},
		"dev of prerelease": {
			input:         "1.0a1.dev1",
			wantRelease:   []int{1},
			wantQualifier: "a1.dev1",
		},
		"numeric qualifier needs dash": {
			input:   "1.0_1x",
			wantErr: true,
		},
		"qualifier after dev": {
			input:   "1.0.dev1.rc1",
			wantErr: true,
		},
		"overflowing segment": {
			input:   "1.99999999999999999999999",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidVersion)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRelease, v.Release)
			assert.Equal(t, tt.wantQualifier, v.Qualifier)
			assert.Equal(t, tt.input, v.String())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b string
		want int
	}{
		"equal":                           {a: "1.2.3", b: "1.2.3", want: 0},
		"equal with padding":              {a: "1.0", b: "1.0.0", want: 0},
		"equal with prefix":               {a: "v1.0.0", b: "1.0.0", want: 0},
		"major less":                      {a: "1.9.9", b: "2.0.0", want: -1},
		"minor greater":                   {a: "1.3.0", b: "1.2.9", want: 1},
		"numeric not lexical":             {a: "1.10", b: "1.9", want: 1},
		"longer release greater":          {a: "1.0.1", b: "1.0", want: 1},
		"prerelease before final":         {a: "1.0rc1", b: "1.0", want: -1},
		"final after prerelease":          {a: "2.0.0", b: "2.0.0-beta.1", want: 1},
		"dev before alpha":                {a: "1.0.dev1", b: "1.0a1", want: -1},
		"alpha before beta":               {a: "1.0a5", b: "1.0b1", want: -1},
		"beta before rc":                  {a: "1.0-beta.9", b: "1.0-rc.1", want: -1},
		"rc numbers":                      {a: "1.0rc2", b: "1.0rc10", want: -1},
		"post after final":                {a: "1.0.post1", b: "1.0", want: 1},
		"post numbers":                    {a: "1.0.post2", b: "1.0.post1", want: 1},
		"unknown prerelease before final": {a: "1.0-snapshot", b: "1.0", want: -1},
		"unknown prerelease after rc":     {a: "1.0-snapshot", b: "1.0rc1", want: 1},
		"numeric identifier first":        {a: "1.0-x.1", b: "1.0-x.a", want: -1},
		"shorter identifiers first":       {a: "1.0-rc", b: "1.0-rc.1", want: -1},
		"release beats qualifier":         {a: "1.0.1rc1", b: "1.0.post5", want: 1},
		"dev of alpha before alpha":       {a: "1.0a1.dev1", b: "1.0a1", want: -1},
		"dev of rc before rc":             {a: "1.0rc1.dev2", b: "1.0rc1", want: -1},
		"dev of post before post":         {a: "1.0.post1.dev1", b: "1.0.post1", want: -1},
		"dev of post after final":         {a: "1.0.post1.dev1", b: "1.0", want: 1},
		"dev of alpha after dev release":  {a: "1.0a1.dev1", b: "1.0.dev5", want: 1},
		"dev of alpha after prior alpha":  {a: "1.0a2.dev1", b: "1.0a1", want: 1},
		"dev numbers":                     {a: "1.0rc1.dev1", b: "1.0rc1.dev2", want: -1},
		"implicit post":                   {a: "1.0-1", b: "1.0.post1", want: 0},
		"implicit post after final":       {a: "2.0.0-0", b: "2.0.0", want: 1},
		"numeric prerelease before final": {a: "1.0.0-0.3.7", b: "1.0.0", want: -1},
		"numeric prerelease fields":       {a: "1.0.0-0.3.7", b: "1.0.0-0.3.10", want: -1},
		"bare tag is number zero":         {a: "1.0a", b: "1.0a0", want: 0},
		"alpha numeric before alpha word": {a: "1.0-alpha.1", b: "1.0-alpha.beta", want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := CompareVersions(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)

			reverse, err := CompareVersions(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, -tt.want, reverse, "%s vs %s", tt.b, tt.a)
		})
	}
}

func TestVersion_CompareIsTransitive(t *testing.T) {
	t.Parallel()

	ordered := []string{
		"0.9", "1.0.dev1", "1.0a1.dev1", "1.0a1", "1.0a2", "1.0b1",
		"1.0rc1.dev2", "1.0rc1", "1.0-snapshot", "1.0", "1.0.post1.dev1",
		"1.0.post1", "1.0.post2", "1.0.1", "1.1", "2.0",
	}

	versions := make([]Version, 0, len(ordered))
	for _, s := range ordered {
		v, err := ParseVersion(s)
		require.NoError(t, err)
		versions = append(versions, v)
	}

	for i := range versions {
		for j := range versions {
			got := versions[i].Compare(versions[j])
			want := compareInts(i, j)
			assert.Equal(t, want, got, "%s vs %s", ordered[i], ordered[j])
		}
	}
}

func TestCompareVersions_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := CompareVersions("dev", "1.0")
	assert.ErrorIs(t, err, ErrInvalidVersion)

	_, err = CompareVersions("1.0", "latest!")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}
