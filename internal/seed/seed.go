// Package seed loads the initial weight history.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"petdiary/internal/domain"
)

//go:embed weights.yaml
var defaultWeights []byte

type file struct {
	Weights []struct {
		Date   string `yaml:"date"`
		Weight int    `yaml:"weight"`
	} `yaml:"weights"`
}

// Load reads the weight history from path, or the built-in history when
// path is empty.
func Load(path string) ([]domain.WeightRecord, error) {
	data := defaultWeights
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}
	return parse(data)
}

func parse(data []byte) ([]domain.WeightRecord, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	out := make([]domain.WeightRecord, 0, len(f.Weights))
	for i, w := range f.Weights {
		if _, err := domain.ParseDay(w.Date); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		if w.Weight <= 0 {
			return nil, fmt.Errorf("seed entry %d: weight must be > 0", i+1)
		}
		out = append(out, domain.WeightRecord{Date: w.Date, Weight: w.Weight})
	}
	return out, nil
}
