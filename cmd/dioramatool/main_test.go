package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/pkg/diorama"
)

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDumpJSON(t *testing.T) {
	code, out, errOut := runTool(t, "dump", "-seed", "42")
	require.Equal(t, 0, code, errOut)

	var snap diorama.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, uint64(42), snap.Metadata.Seed)
	assert.Len(t, snap.Elements, 482)
}

func TestDumpIsDeterministicPerSeed(t *testing.T) {
	_, a, _ := runTool(t, "dump", "-seed", "9", "-category", "rock")
	_, b, _ := runTool(t, "dump", "-seed", "9", "-category", "rock")
	assert.Equal(t, a, b)

	var rocks []diorama.Element
	require.NoError(t, json.Unmarshal([]byte(a), &rocks))
	assert.Len(t, rocks, 12)
	for _, r := range rocks {
		assert.Equal(t, diorama.CategoryRock, r.Category)
	}
}

func TestDumpYAML(t *testing.T) {
	code, out, _ := runTool(t, "dump", "-seed", "1", "-format", "yaml")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "background: '#87ceeb'")
	assert.Contains(t, out, "seed: 1")
}

func TestDumpRejectsBadInput(t *testing.T) {
	code, _, errOut := runTool(t, "dump", "-format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown format")

	code, _, errOut = runTool(t, "dump", "-category", "castle")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown category")
}

func TestStats(t *testing.T) {
	code, out, _ := runTool(t, "stats", "-seed", "3")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Seed:     3")
	assert.Contains(t, out, "Elements: 482")
	assert.Regexp(t, `rice_stalk\s+400`, out)
	assert.Regexp(t, `house_roof\s+1`, out)
}

func TestValidate(t *testing.T) {
	code, out, _ := runTool(t, "validate", "-seed", "5")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "OK: 482 elements, seed 5")
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  ground_size: -1\n"), 0644))

	code, _, errOut := runTool(t, "stats", "-config", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ground_size")
}

func TestConfigCommand(t *testing.T) {
	code, out, _ := runTool(t, "config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ground_size: 250")
	assert.Contains(t, out, ":8080")
}

func TestUsage(t *testing.T) {
	code, _, errOut := runTool(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage:")

	code, _, _ = runTool(t, "nope")
	assert.Equal(t, 1, code)

	code, out, _ := runTool(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "dioramatool")
}
