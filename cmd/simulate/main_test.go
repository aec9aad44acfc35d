package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/utils"
)

const testCatalog = `{
	"version": "1",
	"items": [
		{"id": 1, "name": "AK-47 | Redline", "type": "weapon", "rarity": "#4b69ff", "model": "ak47", "teams": [0], "wearMin": 0.1, "wearMax": 0.7},
		{"id": 2, "name": "P250 | Sand Dune", "type": "weapon", "rarity": "#b0c3d9", "model": "p250"},
		{"id": 3, "name": "Karambit | Fade", "type": "melee", "rarity": "#eb4b4b", "teams": [0, 1]},
		{"id": 10, "name": "Test Case", "type": "container", "contents": [1, 2], "specials": [3]}
	]
}`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).RunContext(context.Background(), append([]string{"simulate"}, args...))
	return out.String(), err
}

func TestSimulate_Text(t *testing.T) {
	out, err := runApp(t, "--catalog", writeCatalog(t), "-c", "10", "-n", "500", "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Test Case: 500 opens")
	assert.Contains(t, out, "common")
	assert.Contains(t, out, "special")
	assert.Contains(t, out, "P250 | Sand Dune")
}

func TestSimulate_JSONIsReproducible(t *testing.T) {
	path := writeCatalog(t)

	first, err := runApp(t, "--catalog", path, "-c", "10", "-n", "200", "--seed", "9", "--format", "json")
	require.NoError(t, err)
	second, err := runApp(t, "--catalog", path, "-c", "10", "-n", "200", "--seed", "9", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var report lootbox.SimulationReport
	require.NoError(t, json.Unmarshal([]byte(first), &report))
	assert.Equal(t, 10, report.ContainerID)
	assert.Equal(t, 200, report.Opens)
	require.Len(t, report.Tiers, 3)
}

func TestSimulate_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "case.json")

	_, err := runApp(t, "--catalog", writeCatalog(t), "-c", "10", "-n", "100", "--seed", "1", "-o", out)
	require.NoError(t, err)

	var report lootbox.SimulationReport
	require.NoError(t, utils.LoadJSON(out, &report))
	assert.Equal(t, 100, report.Opens)
}

func TestSimulate_Errors(t *testing.T) {
	path := writeCatalog(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing container flag", []string{"--catalog", path}},
		{"not a container", []string{"--catalog", path, "-c", "1"}},
		{"unknown container", []string{"--catalog", path, "-c", "99"}},
		{"zero opens", []string{"--catalog", path, "-c", "10", "-n", "0"}},
		{"bad format", []string{"--catalog", path, "-c", "10", "--format", "xml"}},
		{"missing catalog", []string{"--catalog", filepath.Join(t.TempDir(), "none.json"), "-c", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
