package panel_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/report"
	"github.com/panelsim/expertpanel/internal/service/llm"
	panel "github.com/panelsim/expertpanel/internal/service/panel"
)

func testConfig(outputDir string) *config.Config {
	return &config.Config{
		Providers: config.ProvidersConfig{Primary: "anthropic", MaxTokens: 4000, MaxRetries: 3},
		Panel:     testPanelConfig(),
		Output:    config.OutputConfig{Dir: outputDir},
	}
}

func TestOrchestratorStartWithoutProviders(t *testing.T) {
	store := expert.NewBuiltinStore()
	svc := panel.NewService()
	cfg := testConfig(t.TempDir())
	orch := panel.NewOrchestrator(store, svc, cfg, report.NewWriter(cfg.Output.Dir))

	_, err := orch.Start(context.Background(), panel.Spec{Topic: "x", Domain: expert.DomainBusiness})
	if !errors.Is(err, llm.ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestOrchestratorExecuteAndReport(t *testing.T) {
	store := expert.NewBuiltinStore()
	svc, disc := newTestDiscussion(t, &scriptedModel{}, testPanelConfig())
	ctx := context.Background()

	run, err := disc.Begin(ctx, store, panel.Spec{
		Topic:         "release readiness",
		CustomExperts: []expert.Template{{Key: "a", Name: "Expert A", Expertise: "Alpha"}},
		Rounds:        []string{"Only"},
	})
	if err != nil {
		t.Fatalf("Begin err: %v", err)
	}

	cfg := testConfig(t.TempDir())
	writer := report.NewWriter(cfg.Output.Dir)
	orch := panel.NewOrchestrator(store, svc, cfg, writer)

	summary, err := orch.ExecuteAndReport(ctx, run)
	if err != nil {
		t.Fatalf("ExecuteAndReport err: %v", err)
	}

	if summary.SessionID != run.Session().ID {
		t.Fatalf("unexpected summary session: %s", summary.SessionID)
	}
	if summary.TotalTokens == 0 {
		t.Fatal("expected token usage in summary")
	}

	dir := writer.SessionDir(run.Session().ID)
	for _, name := range []string{"transcript.md", "analytics.json", "metadata.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
}

func TestOrchestratorNoOutputsOnFailure(t *testing.T) {
	store := expert.NewBuiltinStore()
	svc, disc := newTestDiscussion(t, &scriptedModel{fail: true}, testPanelConfig())
	ctx := context.Background()

	run, err := disc.Begin(ctx, store, panel.Spec{
		Topic:         "doomed",
		CustomExperts: []expert.Template{{Key: "a", Name: "A", Expertise: "Alpha"}},
		Rounds:        []string{"Only"},
	})
	if err != nil {
		t.Fatalf("Begin err: %v", err)
	}

	cfg := testConfig(t.TempDir())
	writer := report.NewWriter(cfg.Output.Dir)
	orch := panel.NewOrchestrator(store, svc, cfg, writer)

	if _, err := orch.ExecuteAndReport(ctx, run); err == nil {
		t.Fatal("expected failure")
	}

	if _, err := os.Stat(writer.SessionDir(run.Session().ID)); !os.IsNotExist(err) {
		t.Fatalf("expected no session directory, stat err: %v", err)
	}
}
