package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
)

//go:embed scenarios/mercury_baseline.yaml
var mercuryBaseline []byte

// BaselineScenarioYAML is the built-in scenario every load starts from
func BaselineScenarioYAML() []byte {
	return mercuryBaseline
}

// ScenarioLoader reads scenarios from disk over the built-in baseline
type ScenarioLoader struct{}

// NewScenarioLoader creates a scenario loader
func NewScenarioLoader() *ScenarioLoader {
	return &ScenarioLoader{}
}

// Load implements the application's scenario source
func (l *ScenarioLoader) Load(path string, overrides map[string]interface{}) (*scenario.Scenario, error) {
	return LoadScenario(path, overrides)
}

// LoadScenario builds a scenario from the baseline, an optional overlay file
// and dotted-key overrides, in that order. Defaults are applied and the
// result is validated before it is returned.
func LoadScenario(path string, overrides map[string]interface{}) (*scenario.Scenario, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(mercuryBaseline)); err != nil {
		return nil, fmt.Errorf("failed to read baseline scenario: %w", err)
	}

	if path != "" {
		if err := mergeScenarioFile(v, path); err != nil {
			return nil, err
		}
	}

	// sorted so a parent key never clobbers a child set just before it
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, overrides[k])
	}

	var sc scenario.Scenario
	if err := v.Unmarshal(&sc, scenarioDecodeHook()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}

	if err := ValidateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	scenario.ApplyDefaults(&sc)

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

func mergeScenarioFile(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open scenario %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" || ext == "yml" {
		ext = "yaml"
	}
	v.SetConfigType(ext)
	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("failed to merge scenario %s: %w", path, err)
	}
	return nil
}

// ParseOverrides turns key=value pairs into typed override values. Numbers
// and booleans are parsed; comma lists become float lists when every item
// is numeric; anything else stays a string.
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q must look like key=value", pair)
		}
		overrides[key] = parseOverrideValue(strings.TrimSpace(raw))
	}
	return overrides, nil
}

func parseOverrideValue(raw string) interface{} {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(strings.Trim(raw, "[]"), ",")
		values := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return raw
			}
			values = append(values, f)
		}
		return values
	}
	return raw
}
