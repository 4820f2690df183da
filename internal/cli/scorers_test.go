package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorersListsBuiltins(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewScorersCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "builtin:ladder")
	assert.Contains(t, output, "builtin:overlapping")
	assert.Contains(t, output, "builtin:wrapping_ladder")

	// Sorted by name.
	assert.Less(t,
		strings.Index(output, "builtin:ladder"),
		strings.Index(output, "builtin:overlapping"))
	assert.Less(t,
		strings.Index(output, "builtin:overlapping"),
		strings.Index(output, "builtin:wrapping_ladder"))
}

func TestScorersJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewScorersCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)

	list, ok := data["scorers"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 3)

	first := list[0].(map[string]interface{})
	assert.Equal(t, "ladder", first["name"])
	assert.NotEmpty(t, first["description"])
}
