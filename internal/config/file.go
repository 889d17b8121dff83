package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/panelsim/expertpanel/internal/model/expert"
)

// FileConfig models the optional YAML configuration file. Every field is
// optional; set fields override the environment-derived configuration.
type FileConfig struct {
	Provider        string            `yaml:"provider,omitempty"`
	OutputDir       string            `yaml:"output_dir,omitempty"`
	Verbosity       string            `yaml:"verbosity,omitempty"`
	ResponseFormat  string            `yaml:"response_format,omitempty"`
	DiscussionStyle string            `yaml:"discussion_style,omitempty"`
	Temperature     *float64          `yaml:"temperature,omitempty"`
	MaxTokens       *int              `yaml:"max_tokens,omitempty"`
	MaxRounds       *int              `yaml:"max_rounds,omitempty"`
	ExpertCount     *int              `yaml:"expert_count,omitempty"`
	Rounds          []string          `yaml:"rounds,omitempty"`
	Experts         []expert.Template `yaml:"experts,omitempty"`
}

// LoadFile parses a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) validate() error {
	if fc.Provider != "" {
		switch strings.ToLower(fc.Provider) {
		case "openai", "anthropic":
		default:
			return fmt.Errorf("invalid provider %q", fc.Provider)
		}
	}
	if fc.Verbosity != "" {
		switch strings.ToLower(fc.Verbosity) {
		case "concise", "normal", "verbose":
		default:
			return fmt.Errorf("invalid verbosity %q", fc.Verbosity)
		}
	}
	if fc.MaxRounds != nil && *fc.MaxRounds < 1 {
		return fmt.Errorf("max_rounds must be at least 1, got %d", *fc.MaxRounds)
	}
	if fc.ExpertCount != nil && *fc.ExpertCount < 1 {
		return fmt.Errorf("expert_count must be at least 1, got %d", *fc.ExpertCount)
	}
	for i, t := range fc.Experts {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("expert %d: name is required", i)
		}
		if strings.TrimSpace(t.Expertise) == "" {
			return fmt.Errorf("expert %q: expertise is required", t.Name)
		}
	}
	return nil
}

// Apply overlays the file settings onto an environment-derived Config.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc.Provider != "" {
		cfg.Providers.Primary = strings.ToLower(fc.Provider)
	}
	if fc.OutputDir != "" {
		cfg.Output.Dir = fc.OutputDir
	}
	if fc.Verbosity != "" {
		cfg.Panel.Verbosity = strings.ToLower(fc.Verbosity)
	}
	if fc.ResponseFormat != "" {
		cfg.Panel.ResponseFormat = fc.ResponseFormat
	}
	if fc.DiscussionStyle != "" {
		cfg.Panel.DiscussionStyle = fc.DiscussionStyle
	}
	if fc.Temperature != nil {
		val := *fc.Temperature
		cfg.Providers.Temperature = &val
	}
	if fc.MaxTokens != nil {
		cfg.Providers.MaxTokens = *fc.MaxTokens
	}
	if fc.MaxRounds != nil {
		cfg.Panel.MaxRounds = *fc.MaxRounds
	}
	if fc.ExpertCount != nil {
		cfg.Panel.DefaultExpertCount = *fc.ExpertCount
	}
	if len(fc.Rounds) > 0 {
		cfg.Panel.CustomRounds = append([]string(nil), fc.Rounds...)
	}
}

// CustomExperts returns the expert definitions from the file, with keys
// derived from the names when absent.
func (fc *FileConfig) CustomExperts() []expert.Template {
	if len(fc.Experts) == 0 {
		return nil
	}

	experts := make([]expert.Template, len(fc.Experts))
	copy(experts, fc.Experts)
	for i := range experts {
		if experts[i].Key == "" {
			experts[i].Key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(experts[i].Name)), " ", "_")
		}
	}
	return experts
}
