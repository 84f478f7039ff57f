package util

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/ariel-frischer/updatecheck/internal/build"
	"github.com/stretchr/testify/assert"
)

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "updatecheck "+build.Version+"\n")
	assert.Contains(t, out, "commit: "+build.Commit+"\n")
	assert.Contains(t, out, "go: "+runtime.Version()+"\n")
	assert.Contains(t, out, "platform: "+runtime.GOOS+"-"+runtime.GOARCH+"\n")
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf)

	out := buf.String()
	for _, want := range []string{"Version", "Commit", "Platform", build.Version, "╭", "╯"} {
		assert.Contains(t, out, want)
	}
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version", versionCmd.Use)
	assert.Contains(t, versionCmd.Aliases, "v")
	assert.NotNil(t, versionCmd.Flags().Lookup("plain"))
}
