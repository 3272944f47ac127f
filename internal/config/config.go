package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag string   `yaml:"tag"`
	Any []string `yaml:"any"`
}

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"app"`

	Search struct {
		Queries   []string `yaml:"queries"`
		Locations []string `yaml:"locations"`
	} `yaml:"search"`

	Pacing struct {
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
	} `yaml:"pacing"`

	Datasets struct {
		Internships string `yaml:"internships"`
		EntryLevel  string `yaml:"entry_level"`
	} `yaml:"datasets"`

	Classify struct {
		InternshipRules []Rule `yaml:"internship_rules"`
	} `yaml:"classify"`
}

// Load reads the YAML config at path, then applies .env / environment
// overrides and defaults. A missing config file is not fatal; defaults and
// the environment carry the run.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
		log.Printf("[config] no config at %s, using defaults", path)
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if dir := os.Getenv("JOBSCOUT_DATA_DIR"); dir != "" {
		cfg.App.DataDir = dir
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "data"
	}
	if cfg.App.UserAgent == "" {
		cfg.App.UserAgent = "JobScout/1.0 (+local)"
	}
	if len(cfg.Search.Queries) == 0 {
		cfg.Search.Queries = []string{"software engineer"}
	}
	if len(cfg.Search.Locations) == 0 {
		cfg.Search.Locations = []string{"Remote"}
	}
	if cfg.Pacing.RequestsPerSec <= 0 {
		cfg.Pacing.RequestsPerSec = 0.5
	}
	if cfg.Pacing.Burst <= 0 {
		cfg.Pacing.Burst = 1
	}
	if cfg.Datasets.Internships == "" {
		cfg.Datasets.Internships = "internships"
	}
	if cfg.Datasets.EntryLevel == "" {
		cfg.Datasets.EntryLevel = "entry_level_jobs"
	}
	if len(cfg.Classify.InternshipRules) == 0 {
		cfg.Classify.InternshipRules = []Rule{
			{Tag: "internship", Any: []string{"intern", "internship", "co-op", "coop"}},
		}
	}
}
