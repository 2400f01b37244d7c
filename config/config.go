package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/restake/internal/report"
)

// Config describes one dataset to reconcile.
type Config struct {
	Name    string
	Dataset string
	// AsOf closes still-open staking periods, unix seconds. Zero means the latest known timestamp.
	AsOf int64
}

// Settings is the full run configuration.
type Settings struct {
	Format   string
	Datasets []Config
}

type ConfigTmp struct {
	Name    string `yaml:"name,omitempty"`
	Dataset string `yaml:"dataset"`
	AsOf    int64  `yaml:"as_of,omitempty"`
}

type SettingsTmp struct {
	Format   string      `yaml:"format,omitempty"`
	Datasets []ConfigTmp `yaml:"datasets"`
}

// Get reads settings from the command line, or from the yaml file passed with --config.
func Get() (Settings, error) {
	return parse(os.Args[1:])
}

func parse(args []string) (Settings, error) {
	fs := flag.NewFlagSet("restake", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config")
	datasetPath := fs.String("dataset", "", "path to yaml dataset with deposits, withdrawals and reference windows")
	asOf := fs.Int64("asof", 0, "unix time to close open staking periods at, 0 means latest known timestamp")
	format := fs.String("format", report.FormatText, "output format: text or json")

	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	if *configPath != "" {
		return getYaml(*configPath)
	}

	if *datasetPath == "" {
		return Settings{}, errors.New("either --config or --dataset must be provided")
	}
	if *asOf < 0 {
		return Settings{}, fmt.Errorf("invalid --asof provided, --asof=%d", *asOf)
	}
	if err := checkFormat(*format); err != nil {
		return Settings{}, err
	}

	return Settings{
		Format: *format,
		Datasets: []Config{
			{
				Dataset: *datasetPath,
				AsOf:    *asOf,
			},
		},
	}, nil
}

func getYaml(path string) (Settings, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "read config")
	}

	var tmp SettingsTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Settings{}, errors.Wrap(err, "decode config")
	}

	settings := Settings{Format: tmp.Format}
	if settings.Format == "" {
		settings.Format = report.FormatText
	}
	if err := checkFormat(settings.Format); err != nil {
		return Settings{}, err
	}

	if len(tmp.Datasets) == 0 {
		return Settings{}, errors.New("no datasets in yaml config")
	}

	for i, c := range tmp.Datasets {
		if c.Dataset == "" {
			return Settings{}, fmt.Errorf("missing 'dataset' param in yaml config, entry %d", i)
		}
		if c.AsOf < 0 {
			return Settings{}, fmt.Errorf("incorrect 'as_of' param in yaml config (must not be negative), entry %d", i)
		}

		settings.Datasets = append(settings.Datasets, Config{
			Name:    c.Name,
			Dataset: c.Dataset,
			AsOf:    c.AsOf,
		})
	}

	return settings, nil
}

func checkFormat(format string) error {
	switch format {
	case report.FormatText, report.FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, use %s or %s", format, report.FormatText, report.FormatJSON)
	}
}
