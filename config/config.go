package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masmgr/gitgauge-go/internal/grouping"
	"github.com/masmgr/gitgauge-go/internal/metrics"
	"github.com/masmgr/gitgauge-go/internal/output"
)

// FileName is the configuration file looked up in the working and home directories.
const FileName = ".gitgauge.json"

// Config holds all configuration for gitgauge.
type Config struct {
	Analysis AnalysisConfig `json:"analysis"`
	Filters  FilterConfig   `json:"filters"`
	Grouping GroupingConfig `json:"grouping"`
	Report   ReportConfig   `json:"report"`
	Summary  SummaryConfig  `json:"summary"`
}

// AnalysisConfig controls the commit walk and stat extraction.
type AnalysisConfig struct {
	DefaultBranch string `json:"defaultBranch"` // Empty walks from HEAD
	Pattern       string `json:"pattern"`       // Regex counted against commit messages
	Workers       int    `json:"workers"`       // <= 0 means GOMAXPROCS
}

// FilterConfig restricts which files' line counts are summed.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// GroupingConfig holds the identity-merge settings.
type GroupingConfig struct {
	DefinitionPath string `json:"definition"`
	Policy         string `json:"policy"` // "every" or "first"
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	Sort   string `json:"sort"`
	Top    int    `json:"top"`
	Metric string `json:"metric"`
}

// SummaryConfig controls the subject lines kept for summarization.
type SummaryConfig struct {
	MaxSubjects int `json:"maxSubjects"`
	Concurrency int `json:"concurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			DefaultBranch: "",
			Pattern:       "",
			Workers:       0,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Grouping: GroupingConfig{
			Policy: grouping.PolicyEveryMatch.String(),
		},
		Report: ReportConfig{
			Sort:   string(output.SortCommits),
			Top:    0,
			Metric: string(metrics.MetricCommits),
		},
		Summary: SummaryConfig{
			MaxSubjects: 10,
			Concurrency: 4,
		},
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := grouping.ParsePolicy(c.Grouping.Policy); err != nil {
		return fmt.Errorf("grouping.policy: %w", err)
	}
	if _, err := output.ParseSortKey(c.Report.Sort); err != nil {
		return fmt.Errorf("report.sort: %w", err)
	}
	if _, err := metrics.ParseMetric(c.Report.Metric); err != nil {
		return fmt.Errorf("report.metric: %w", err)
	}
	if c.Summary.MaxSubjects < 0 {
		return fmt.Errorf("summary.maxSubjects must not be negative")
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
