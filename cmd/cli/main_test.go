package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oseday/node-pathfinder/internal/testutil"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A scenario with a syntax error is guaranteed to make app.NewApp
	// panic during the loading phase.
	invalidHCL := `
		point "a" {
			position = [0, 0
	`
	filePath := testutil.WriteFile(t, "scene.hcl", invalidHCL)

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	// run should recover the panic and return it as an error.
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_SolvesScenario(t *testing.T) {
	t.Parallel()

	// A tiny but complete scenario: a wall forces the query around two
	// corner points.
	scenarioHCL := `
point "top_left" {
  position = [0, 3, 0]
}

point "top_right" {
  position = [10, 3, 0]
}

obstacle "box" "wall" {
  min = [4, -2, -1]
  max = [6, 2, 1]
}

query "around" {
  start = [0, 0, 0]
  goal  = [10, 0, 0]
}
`
	filePath := testutil.WriteFile(t, "scene.hcl", scenarioHCL)

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "around", "query results should be printed")
	require.Contains(t, out.String(), "(0, 0, 0)", "path must begin at the literal start")
	require.Contains(t, out.String(), "(10, 0, 0)", "path must end at the literal goal")
	require.Contains(t, out.String(), "around (6 points", "untruncated path keeps both projections per corner")

	// The same scenario with -truncate strips the already-visible ends; the
	// query itself sets no truncate, so the flag's default applies.
	out.Reset()
	require.NoError(t, run(out, []string{"-log-level", "error", "-truncate", filePath}))
	require.Contains(t, out.String(), "around (4 points", "the -truncate default must reach queries that omit truncate")
	require.Contains(t, out.String(), "(0, 0, 0)")
	require.Contains(t, out.String(), "(10, 0, 0)")
}

func TestRun_ExampleScenario(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", "../../examples/corridor.hcl"})

	require.NoError(t, err)
	for _, query := range []string{"room_to_room", "avoid_water", "trimmed"} {
		require.Contains(t, out.String(), query)
	}
	require.Contains(t, out.String(), "(10, -10, 0)", "routes go through the southern corridor waypoint")
	require.NotContains(t, out.String(), "(10, -6, 0)", "no waypoint may sit inside the water pool")
}
