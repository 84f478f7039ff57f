package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Registration(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"check", "cache", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	t.Parallel()

	config := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)
	assert.Equal(t, "", config.DefValue)

	debug := rootCmd.PersistentFlags().Lookup("debug")
	require.NotNil(t, debug)
	assert.Equal(t, "d", debug.Shorthand)
}

func TestRootCommand_Groups(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, len(rootCmd.Groups()))
	for _, g := range rootCmd.Groups() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{GroupChecks, GroupCache, GroupInfo}, ids)
}

func TestExitCodeReexport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, 10, ExitUpdateAvailable)
}
