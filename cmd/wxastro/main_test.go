package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/wxastro/pkg/riseset"
	"github.com/chrissnell/wxastro/pkg/wxcalc"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	timeStr, dateStr, jsonOutput = "", "", false
	cfgFile, configBackend = "config.yaml", "yaml"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  latitude: 39.7392
  longitude: -104.9903
  elevation: 5280
  tz-offset: -7
`), 0o600))
	return path
}

func TestSelfCheckCommand(t *testing.T) {
	out, err := execute(t, "selfcheck")
	require.NoError(t, err)
	assert.Contains(t, out, "THSW")
	assert.NotContains(t, out, "FAIL")
}

func TestSelfCheckCommandJSON(t *testing.T) {
	out, err := execute(t, "selfcheck", "--json")
	require.NoError(t, err)

	var results []wxcalc.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 7)
}

func TestMoonCommand(t *testing.T) {
	out, err := execute(t, "moon", "--time", "2023-01-28T15:19:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "First Quarter")
	assert.Contains(t, out, "Day:          7")
}

func TestRiseSetCommand(t *testing.T) {
	out, err := execute(t, "riseset", "-c", writeConfig(t), "--date", "2024-03-20", "--json")
	require.NoError(t, err)

	var r riseset.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, riseset.Normal, r.Sunrise.Status)
	assert.InDelta(t, 6.039225, r.Sunrise.Hour, 2e-3)
}

func TestDerivedCommand(t *testing.T) {
	out, err := execute(t, "derived", "-c", writeConfig(t), "--temp", "30", "--humidity", "50", "--wind", "10",
		"--time", "2024-03-20T19:30:00Z", "--json")
	require.NoError(t, err)

	var d wxcalc.Derived
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.InDelta(t, 21.248293, d.WindChill, 1e-5)
}

func TestDerivedCommandErrors(t *testing.T) {
	_, err := execute(t, "derived", "-c", writeConfig(t), "--temp", "30", "--humidity", "50", "--time", "noon")
	assert.Error(t, err)

	_, err = execute(t, "solar", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "solar", "--config-backend", "sqlite")
	assert.Error(t, err)
}
