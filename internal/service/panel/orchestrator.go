package panel

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/model/panel"
	"github.com/panelsim/expertpanel/internal/report"
	"github.com/panelsim/expertpanel/internal/service/llm"
)

// Orchestrator runs whole discussions: it provisions a fresh provider
// manager per run (so analytics stay per-session), executes the loop, and
// writes the output bundle.
type Orchestrator struct {
	store  expert.Store
	svc    *Service
	cfg    *config.Config
	writer *report.Writer
}

// NewOrchestrator wires the orchestrator over shared services.
func NewOrchestrator(store expert.Store, svc *Service, cfg *config.Config, writer *report.Writer) *Orchestrator {
	return &Orchestrator{store: store, svc: svc, cfg: cfg, writer: writer}
}

// Service exposes the underlying session store.
func (o *Orchestrator) Service() *Service {
	return o.svc
}

// Store exposes the expert store.
func (o *Orchestrator) Store() expert.Store {
	return o.store
}

// Start prepares a run: builds providers, compiles the chain, assembles
// the panel, and provisions the session record.
func (o *Orchestrator) Start(ctx context.Context, spec Spec) (*Run, error) {
	mgr, err := llm.NewManager(ctx, o.cfg.Providers)
	if err != nil {
		return nil, err
	}

	disc, err := NewDiscussion(ctx, o.svc, mgr, o.cfg.Panel)
	if err != nil {
		return nil, err
	}

	return disc.Begin(ctx, o.store, spec)
}

// ExecuteAndReport drives a prepared run to completion and writes the
// session outputs. No outputs are written when the discussion fails.
func (o *Orchestrator) ExecuteAndReport(ctx context.Context, run *Run) (panel.Summary, error) {
	session := run.Session()
	start := session.CreatedAt

	if err := run.Execute(ctx); err != nil {
		return panel.Summary{}, err
	}

	turns, err := o.svc.Transcript(ctx, session.ID)
	if err != nil {
		return panel.Summary{}, err
	}

	analytics := run.Analytics()
	metadata := report.BuildMetadata(session, o.cfg.Sanitized(), analytics, start, time.Now())

	summary, err := o.writer.Write(session, turns, analytics, metadata)
	if err != nil {
		return panel.Summary{}, fmt.Errorf("write session outputs: %w", err)
	}

	log.Printf("[panel] session %s complete: cost=%s tokens=%d duration=%.1fm",
		session.ID, summary.TotalCost, summary.TotalTokens, summary.DurationMins)
	return summary, nil
}
