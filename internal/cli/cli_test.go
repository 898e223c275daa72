package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PositionalScenarioPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"scene.hcl"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "scene.hcl", cfg.ScenarioPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.GracePeriod)
}

func TestParse_FlagOverridesDefaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-s", "scene.hcl", "-log-format", "text", "-grace", "250ms"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "scene.hcl", cfg.ScenarioPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 250*time.Millisecond, cfg.GracePeriod)
}

func TestParse_TruncateDefault(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-truncate", "scene.hcl"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.True(t, cfg.Truncate)

	cfg, _, err = Parse([]string{"scene.hcl"}, out)
	require.NoError(t, err)
	assert.False(t, cfg.Truncate, "truncation is opt-in")
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-format", "xml", "scene.hcl"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
