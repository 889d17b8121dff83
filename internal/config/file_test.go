package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelsim/expertpanel/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileAndApply(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `
provider: openai
output_dir: reviews
verbosity: verbose
temperature: 0.2
max_rounds: 4
expert_count: 3
rounds:
  - Kickoff
  - Synthesis
experts:
  - name: Jane Doe
    expertise: Compliance
    perspective: Risk first
    background: Former auditor
  - key: ops_lead
    name: Sam Lee
    expertise: Operations
`)

	fc, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	fc.Apply(cfg)

	if cfg.Providers.Primary != "openai" {
		t.Fatalf("unexpected primary: %s", cfg.Providers.Primary)
	}
	if cfg.Output.Dir != "reviews" {
		t.Fatalf("unexpected output dir: %s", cfg.Output.Dir)
	}
	if cfg.Panel.Verbosity != "verbose" {
		t.Fatalf("unexpected verbosity: %s", cfg.Panel.Verbosity)
	}
	if cfg.Providers.Temperature == nil || *cfg.Providers.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", cfg.Providers.Temperature)
	}
	if cfg.Panel.MaxRounds != 4 {
		t.Fatalf("unexpected max rounds: %d", cfg.Panel.MaxRounds)
	}
	if cfg.Panel.DefaultExpertCount != 3 {
		t.Fatalf("unexpected expert count: %d", cfg.Panel.DefaultExpertCount)
	}
	if len(cfg.Panel.CustomRounds) != 2 || cfg.Panel.CustomRounds[0] != "Kickoff" {
		t.Fatalf("unexpected rounds: %v", cfg.Panel.CustomRounds)
	}

	experts := fc.CustomExperts()
	if len(experts) != 2 {
		t.Fatalf("unexpected expert count: %d", len(experts))
	}
	if experts[0].Key != "jane_doe" {
		t.Fatalf("expected key derived from name, got %q", experts[0].Key)
	}
	if experts[1].Key != "ops_lead" {
		t.Fatalf("explicit key should be kept, got %q", experts[1].Key)
	}
}

func TestLoadFileValidation(t *testing.T) {
	cases := map[string]string{
		"bad provider":      "provider: gemini\n",
		"bad verbosity":     "verbosity: chatty\n",
		"nameless expert":   "experts:\n  - expertise: Ops\n",
		"missing expertise": "experts:\n  - name: Jane\n",
		"zero max_rounds":   "max_rounds: 0\n",
		"negative experts":  "expert_count: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTempConfig(t, content)
			if _, err := config.LoadFile(path); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyLeavesUnsetFieldsAlone(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, "output_dir: elsewhere\n")

	fc, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	fc.Apply(cfg)

	if cfg.Output.Dir != "elsewhere" {
		t.Fatalf("unexpected output dir: %s", cfg.Output.Dir)
	}
	if cfg.Providers.Primary != "anthropic" {
		t.Fatalf("primary should be untouched: %s", cfg.Providers.Primary)
	}
	if cfg.Panel.MaxRounds != 8 {
		t.Fatalf("max rounds should be untouched: %d", cfg.Panel.MaxRounds)
	}
}
