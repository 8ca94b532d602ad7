package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one Markdown listing document to pull.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	App struct {
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Sources []Source `yaml:"sources"`

	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerHost    float64 `yaml:"rate_per_host"`
		Burst          int     `yaml:"burst"`
	} `yaml:"fetch"`

	State struct {
		Backend string `yaml:"backend"` // file | sqlite
		Path    string `yaml:"path"`
		Policy  string `yaml:"policy"` // window | accumulate
		Window  int    `yaml:"window"`
	} `yaml:"state"`

	Digest struct {
		TemplatePath      string `yaml:"template_path"`
		NoNewTemplatePath string `yaml:"no_new_template_path"`
		SubjectPrefix     string `yaml:"subject_prefix"`
	} `yaml:"digest"`

	SMTP struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Username       string   `yaml:"username"`
		From           string   `yaml:"from"`
		Recipients     []string `yaml:"recipients"`
		KeyringAccount string   `yaml:"keyring_account"`
	} `yaml:"smtp"`
}

const sourceURLEnv = "JOBDIGEST_SOURCE_URL"

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	// Lets a one-off run point at a different listing without touching
	// the config file.
	if v := os.Getenv(sourceURLEnv); v != "" {
		c.Sources = []Source{{Name: "env-override", URL: v}}
	}
}
