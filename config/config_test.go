package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/restake/internal/report"
)

func writeConfig(t *testing.T, payload string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "restake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	return path
}

func TestParse_Flags(t *testing.T) {
	settings, err := parse([]string{"--dataset", "mock.yaml", "--asof", "1663600000", "--format", "json"})
	require.NoError(t, err)
	require.Equal(t, Settings{
		Format:   report.FormatJSON,
		Datasets: []Config{{Dataset: "mock.yaml", AsOf: 1663600000}},
	}, settings)
}

func TestParse_FlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_input", args: nil},
		{name: "negative_asof", args: []string{"--dataset", "a.yaml", "--asof", "-1"}},
		{name: "bad_format", args: []string{"--dataset", "a.yaml", "--format", "xml"}},
		{name: "unknown_flag", args: []string{"--pair", "BTC_USDT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.args)
			require.Error(t, err)
		})
	}
}

func TestParse_Yaml(t *testing.T) {
	path := writeConfig(t, `
format: json
datasets:
  - name: re
    dataset: data/re.yaml
    as_of: 1663600000
  - dataset: data/recycle.yaml
`)

	settings, err := parse([]string{"--config", path})
	require.NoError(t, err)
	require.Equal(t, Settings{
		Format: report.FormatJSON,
		Datasets: []Config{
			{Name: "re", Dataset: "data/re.yaml", AsOf: 1663600000},
			{Dataset: "data/recycle.yaml"},
		},
	}, settings)
}

func TestParse_YamlDefaultsToText(t *testing.T) {
	path := writeConfig(t, "datasets:\n  - dataset: a.yaml\n")

	settings, err := parse([]string{"--config", path})
	require.NoError(t, err)
	require.Equal(t, report.FormatText, settings.Format)
}

func TestParse_YamlErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		errText string
	}{
		{name: "no_datasets", payload: "format: text\n", errText: "no datasets"},
		{name: "missing_dataset", payload: "datasets:\n  - name: x\n", errText: "missing 'dataset'"},
		{name: "negative_as_of", payload: "datasets:\n  - dataset: a.yaml\n    as_of: -5\n", errText: "as_of"},
		{name: "bad_format", payload: "format: csv\ndatasets:\n  - dataset: a.yaml\n", errText: "invalid output format"},
		{name: "broken_yaml", payload: "datasets: [", errText: "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]string{"--config", writeConfig(t, tt.payload)})
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestParse_YamlMissingFile(t *testing.T) {
	_, err := parse([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
