package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateRootEnv points every config source at empty temp locations so
// integration tests never see the developer's real files or env.
func isolateRootEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"GAMBIT_CONFIG",
		"GAMBIT_DATABASE_PATH",
		"GAMBIT_DATABASE_DISABLED",
		"GAMBIT_SOLVER_SCORERS",
		"GAMBIT_SOLVER_MAX_NODES",
		"GAMBIT_SOLVER_TIMEOUT",
		"GAMBIT_OUTPUT_FORMAT",
		"GAMBIT_OUTPUT_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gambit", cmd.Use)
	assert.Contains(t, cmd.Short, "N-queens")
	assert.Contains(t, cmd.Long, "best-first")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"solve", "scorers", "history", "edit"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	outputFlag := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "text", outputFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	noStoreFlag := cmd.PersistentFlags().Lookup("no-store")
	require.NotNil(t, noStoreFlag)
	assert.Equal(t, "false", noStoreFlag.DefValue)
}

func TestSolveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	solveCmd, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)

	scorerFlag := solveCmd.Flags().Lookup("scorer")
	require.NotNil(t, scorerFlag)
	assert.Equal(t, "l", scorerFlag.Shorthand)

	maxNodesFlag := solveCmd.Flags().Lookup("max-nodes")
	require.NotNil(t, maxNodesFlag)
	assert.Equal(t, "0", maxNodesFlag.DefValue)

	timeoutFlag := solveCmd.Flags().Lookup("timeout")
	require.NotNil(t, timeoutFlag)
	assert.Equal(t, "0s", timeoutFlag.DefValue)
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)

	widthFlag := historyCmd.Flags().Lookup("width")
	require.NotNil(t, widthFlag)
	assert.Equal(t, "0", widthFlag.DefValue)

	solutionsFlag := historyCmd.Flags().Lookup("solutions")
	require.NotNil(t, solutionsFlag)
	assert.Equal(t, "false", solutionsFlag.DefValue)
}

func TestEditCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	editCmd, _, err := cmd.Find([]string{"edit"})
	require.NoError(t, err)

	scorerFlag := editCmd.Flags().Lookup("scorer")
	require.NotNil(t, scorerFlag)
	assert.Equal(t, "l", scorerFlag.Shorthand)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	isolateRootEnv(t)

	errBuf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{"--output", "xml", "scorers"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errBuf.String(), "invalid output format")
}

func TestRootSolveIntegration(t *testing.T) {
	isolateRootEnv(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve", "4", "--no-store"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "solved width 4")
}

func TestRootSolveWritesDefaultDatabase(t *testing.T) {
	isolateRootEnv(t)
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve", "4"})

	err := cmd.Execute()
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(stateDir, "gambit", "gambit.db"))
	assert.NoError(t, statErr)
}

func TestRootDatabaseFlagWins(t *testing.T) {
	isolateRootEnv(t)
	dbPath := filepath.Join(t.TempDir(), "custom.db")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "solve", "4"})

	err := cmd.Execute()
	require.NoError(t, err)

	_, statErr := os.Stat(dbPath)
	assert.NoError(t, statErr)
}

func TestRootEnvFormatOverride(t *testing.T) {
	isolateRootEnv(t)
	t.Setenv("GAMBIT_OUTPUT_FORMAT", "json")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve", "4", "--no-store"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestRootNoStoreFromEnv(t *testing.T) {
	isolateRootEnv(t)
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)
	t.Setenv("GAMBIT_DATABASE_DISABLED", "true")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve", "4"})

	err := cmd.Execute()
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(stateDir, "gambit", "gambit.db"))
	assert.True(t, os.IsNotExist(statErr))
}
