package marketwatch

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config gathers the ambient settings of the tools: where the data files
// live and how to reach the measure-data API. Commands resolve a Config once
// and pass the values down explicitly.
type Config struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`

	ValueFile   string `yaml:"value_file"`
	ScoreFile   string `yaml:"score_file"`
	ProfileFile string `yaml:"profile_file"`
	OutputFile  string `yaml:"output_file"`
}

// DefaultConfig returns the stock settings, matching the historical layout of
// the data directory.
func DefaultConfig() Config {
	return Config{
		APIURL:      "https://api1.dottdot.com/api/indistock",
		APIKey:      "guest",
		ValueFile:   "data/measure_value.csv",
		ScoreFile:   "data/measure_score.csv",
		ProfileFile: "data/measure_profile.json",
		OutputFile:  "docs/report_output.csv",
	}
}

// LoadConfig reads a YAML config file over the defaults, then applies the
// API_URL and API_KEY environment overrides. A missing file is fine when
// path is empty (no explicit file was requested); an explicit path that does
// not exist is a FileAccessError.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	name := path
	if name == "" {
		name = "twmarketwatch.yaml"
	}
	content, err := os.ReadFile(name)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, &ParseError{Source: name, Err: err}
		}
	case os.IsNotExist(err) && path == "":
		// default config file is optional
	default:
		return cfg, &FileAccessError{Path: name, Err: err}
	}

	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.APIKey = v
	}
	return cfg, nil
}
