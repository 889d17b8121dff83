package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the tool reads.
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Panel     PanelConfig
	Output    OutputConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	providers, err := loadProvidersConfig()
	if err != nil {
		return nil, err
	}

	panel, err := loadPanelConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Providers: providers,
		Panel:     panel,
		Output:    OutputConfig{Dir: getEnvOrDefault("OUTPUT_DIR", "outputs")},
	}, nil
}

// ServerConfig describes the serve-mode listen address.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ProviderConfig holds the credentials and model name for one LLM backend.
type ProviderConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether the provider has a usable key.
func (c ProviderConfig) Enabled() bool {
	return c.APIKey != ""
}

// ProvidersConfig describes the two LLM backends and shared call settings.
type ProvidersConfig struct {
	Primary     string
	OpenAI      ProviderConfig
	Anthropic   ProviderConfig
	Temperature *float64
	MaxTokens   int
	MaxRetries  int
}

func loadProvidersConfig() (ProvidersConfig, error) {
	temperature, err := parseOptionalFloatEnv("TEMPERATURE")
	if err != nil {
		return ProvidersConfig{}, err
	}

	maxTokens := 4000
	if override, err := parseOptionalIntEnv("MAX_TOKENS"); err != nil {
		return ProvidersConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	maxRetries := 3
	if override, err := parseOptionalIntEnv("LLM_MAX_RETRIES"); err != nil {
		return ProvidersConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return ProvidersConfig{}, fmt.Errorf("LLM_MAX_RETRIES must not be negative, got %d", *override)
		}
		maxRetries = *override
	}

	primary := strings.ToLower(getEnvOrDefault("PRIMARY_PROVIDER", "anthropic"))
	switch primary {
	case "openai", "anthropic":
	default:
		return ProvidersConfig{}, fmt.Errorf("invalid PRIMARY_PROVIDER value: %q", primary)
	}

	return ProvidersConfig{
		Primary: primary,
		OpenAI: ProviderConfig{
			APIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:  getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
		},
		Anthropic: ProviderConfig{
			APIKey: strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
			Model:  getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		MaxRetries:  maxRetries,
	}, nil
}

// Enabled reports whether at least one provider has credentials.
func (c ProvidersConfig) Enabled() bool {
	return c.OpenAI.Enabled() || c.Anthropic.Enabled()
}

// PanelConfig describes the discussion shape.
type PanelConfig struct {
	Verbosity          string
	MaxResponseLength  int
	ResponseFormat     string
	DiscussionStyle    string
	ExpertInteraction  bool
	MaxRounds          int
	DefaultExpertCount int
	CustomRounds       []string
}

func loadPanelConfig() (PanelConfig, error) {
	verbosity := strings.ToLower(getEnvOrDefault("VERBOSITY", "normal"))
	switch verbosity {
	case "concise", "normal", "verbose":
	default:
		return PanelConfig{}, fmt.Errorf("invalid VERBOSITY value: %q", verbosity)
	}

	maxLength := 200
	if override, err := parseOptionalIntEnv("MAX_RESPONSE_LENGTH"); err != nil {
		return PanelConfig{}, err
	} else if override != nil {
		maxLength = *override
	}

	maxRounds := 8
	if override, err := parseOptionalIntEnv("MAX_ROUNDS"); err != nil {
		return PanelConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return PanelConfig{}, fmt.Errorf("MAX_ROUNDS must be at least 1, got %d", *override)
		}
		maxRounds = *override
	}

	expertCount := 5
	if override, err := parseOptionalIntEnv("DEFAULT_EXPERT_COUNT"); err != nil {
		return PanelConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return PanelConfig{}, fmt.Errorf("DEFAULT_EXPERT_COUNT must be at least 1, got %d", *override)
		}
		expertCount = *override
	}

	interaction, err := parseBoolEnv("ENABLE_EXPERT_INTERACTION", true)
	if err != nil {
		return PanelConfig{}, err
	}

	var customRounds []string
	if raw := strings.TrimSpace(os.Getenv("CUSTOM_ROUNDS")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if title := strings.TrimSpace(part); title != "" {
				customRounds = append(customRounds, title)
			}
		}
	}

	return PanelConfig{
		Verbosity:          verbosity,
		MaxResponseLength:  maxLength,
		ResponseFormat:     getEnvOrDefault("RESPONSE_FORMAT", "paragraph"),
		DiscussionStyle:    getEnvOrDefault("DISCUSSION_STYLE", "formal"),
		ExpertInteraction:  interaction,
		MaxRounds:          maxRounds,
		DefaultExpertCount: expertCount,
		CustomRounds:       customRounds,
	}, nil
}

// OutputConfig describes where session directories are written.
type OutputConfig struct {
	Dir string
}

// Sanitized flattens the configuration for the metadata record, masking
// key material.
func (c *Config) Sanitized() map[string]string {
	masked := func(key string) string {
		if key == "" {
			return ""
		}
		return "***"
	}

	out := map[string]string{
		"PRIMARY_PROVIDER":          c.Providers.Primary,
		"OPENAI_API_KEY":            masked(c.Providers.OpenAI.APIKey),
		"OPENAI_MODEL":              c.Providers.OpenAI.Model,
		"ANTHROPIC_API_KEY":         masked(c.Providers.Anthropic.APIKey),
		"ANTHROPIC_MODEL":           c.Providers.Anthropic.Model,
		"MAX_TOKENS":                strconv.Itoa(c.Providers.MaxTokens),
		"LLM_MAX_RETRIES":           strconv.Itoa(c.Providers.MaxRetries),
		"VERBOSITY":                 c.Panel.Verbosity,
		"MAX_RESPONSE_LENGTH":       strconv.Itoa(c.Panel.MaxResponseLength),
		"RESPONSE_FORMAT":           c.Panel.ResponseFormat,
		"DISCUSSION_STYLE":          c.Panel.DiscussionStyle,
		"ENABLE_EXPERT_INTERACTION": strconv.FormatBool(c.Panel.ExpertInteraction),
		"MAX_ROUNDS":                strconv.Itoa(c.Panel.MaxRounds),
		"DEFAULT_EXPERT_COUNT":      strconv.Itoa(c.Panel.DefaultExpertCount),
		"OUTPUT_DIR":                c.Output.Dir,
	}
	if c.Providers.Temperature != nil {
		out["TEMPERATURE"] = strconv.FormatFloat(*c.Providers.Temperature, 'f', -1, 64)
	}
	if len(c.Panel.CustomRounds) > 0 {
		out["CUSTOM_ROUNDS"] = strings.Join(c.Panel.CustomRounds, ",")
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
