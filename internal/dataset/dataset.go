// Package dataset loads materialized staking event datasets.
package dataset

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/restake/internal/domain"
)

// Dataset holds the events of one staking position and the reference windows to measure against.
type Dataset struct {
	Name             string            `yaml:"name"`
	Deposits         []domain.Event    `yaml:"deposits"`
	Withdrawals      []domain.Event    `yaml:"withdrawals"`
	ReferenceWindows []domain.Interval `yaml:"reference_windows"`
}

// Load reads a dataset file. The file name is used when the dataset has no name.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "load dataset %s", path)
	}

	if ds.Name == "" {
		base := filepath.Base(path)
		ds.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return ds, nil
}

// Decode parses a YAML dataset. Unknown fields are rejected.
func Decode(r io.Reader) (Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, errors.New("empty dataset")
		}

		return Dataset{}, errors.Wrap(err, "decode dataset")
	}

	return ds, nil
}
