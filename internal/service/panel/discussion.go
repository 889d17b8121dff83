package panel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/model/panel"
	"github.com/panelsim/expertpanel/internal/service/llm"
)

// ErrPanelUndefined is returned when no domain, expert selection, or custom
// expert list was provided.
var ErrPanelUndefined = errors.New("must specify a domain, expert keys, or custom experts")

// Spec describes one requested discussion.
type Spec struct {
	Topic         string
	Document      string
	Domain        string
	ExpertKeys    []string
	CustomExperts []expert.Template
	ExpertCount   int // cap when selecting a whole domain; 0 uses the config default
	Rounds        []string
}

// Discussion assembles expert panels and drives the turn-based chat loop.
// Message templating and model invocation run through a compiled eino chain;
// speaker selection is round-robin, moderator first.
type Discussion struct {
	svc     *Service
	mgr     *llm.Manager
	prompts *llm.PromptBuilder
	cfg     config.PanelConfig
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewDiscussion compiles the shared participant chain over the provider
// manager.
func NewDiscussion(ctx context.Context, svc *Service, mgr *llm.Manager, cfg config.PanelConfig) (*Discussion, error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(mgr)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile discussion chain: %w", err)
	}

	return &Discussion{
		svc:     svc,
		mgr:     mgr,
		prompts: llm.NewPromptBuilder(cfg),
		cfg:     cfg,
		chain:   runnable,
	}, nil
}

// participant binds a speaker to its system prompt.
type participant struct {
	name   string
	role   string
	system string
}

// Run holds everything needed to execute one prepared discussion.
type Run struct {
	d            *Discussion
	session      panel.Session
	spec         Spec
	participants []participant
	rounds       []string
}

// Session returns the session record created for this run.
func (r *Run) Session() panel.Session {
	return r.session
}

// Analytics snapshots the provider manager's per-session report.
func (r *Run) Analytics() panel.Analytics {
	return r.d.mgr.Analytics()
}

// Begin assembles the panel, provisions the session, and returns the
// prepared run. Execute drives the discussion itself.
func (d *Discussion) Begin(ctx context.Context, store expert.Store, spec Spec) (*Run, error) {
	experts, err := buildPanel(store, spec, d.cfg.DefaultExpertCount)
	if err != nil {
		return nil, err
	}

	rounds := spec.Rounds
	if len(rounds) == 0 {
		rounds = d.prompts.Rounds()
	}
	if len(rounds) > d.cfg.MaxRounds {
		rounds = rounds[:d.cfg.MaxRounds]
	}

	participants := make([]participant, 0, len(experts)+1)
	participants = append(participants, participant{
		name:   "Moderator",
		role:   panel.RoleModerator,
		system: d.prompts.ModeratorSystemPrompt(spec.Topic, rounds),
	})

	names := make([]string, 0, len(experts))
	for _, t := range experts {
		names = append(names, t.Name)
		participants = append(participants, participant{
			name:   t.Name,
			role:   panel.RoleExpert,
			system: d.prompts.ExpertSystemPrompt(t, spec.Topic),
		})
	}

	session, err := d.svc.CreateSession(ctx, spec.Topic, spec.Domain, names, spec.Document != "")
	if err != nil {
		return nil, err
	}

	log.Printf("[panel] created %d experts for session=%s: %v", len(experts), session.ID, names)

	return &Run{
		d:            d,
		session:      session,
		spec:         spec,
		participants: participants,
		rounds:       rounds,
	}, nil
}

// Execute drives the discussion to completion, recording every turn. The
// loop is sequential: each turn is one blocking model call.
func (r *Run) Execute(ctx context.Context) error {
	d := r.d

	if err := r.run(ctx); err != nil {
		if failErr := d.svc.Fail(ctx, r.session.ID, err); failErr != nil {
			log.Printf("[panel] failed to mark session failed: %v", failErr)
		}
		return err
	}

	return d.svc.Complete(ctx, r.session.ID)
}

func (r *Run) run(ctx context.Context) error {
	d := r.d

	opening := d.prompts.OpeningMessage(r.spec.Topic, r.spec.Document)
	turns := make([]panel.Turn, 0, len(r.rounds)*len(r.participants)+1)

	openingTurn, err := d.svc.AppendTurn(ctx, panel.Turn{
		SessionID: r.session.ID,
		Speaker:   "coordinator",
		Role:      panel.RoleCoordinator,
		Round:     0,
		Content:   opening,
	})
	if err != nil {
		return err
	}
	turns = append(turns, openingTurn)

	for roundIdx, title := range r.rounds {
		for _, p := range r.participants {
			if err := ctx.Err(); err != nil {
				return err
			}

			query := llm.ExpertTurnQuery(title)
			if p.role == panel.RoleModerator {
				query = llm.ModeratorTurnQuery(roundIdx+1, len(r.rounds), title)
			}

			start := time.Now()
			out, err := d.chain.Invoke(ctx, map[string]any{
				"system":  p.system,
				"history": historyFor(p.name, turns),
				"query":   query,
			})
			if err != nil {
				return fmt.Errorf("turn failed for %s in round %d: %w", p.name, roundIdx+1, err)
			}

			turn := panel.Turn{
				SessionID: r.session.ID,
				Speaker:   p.name,
				Role:      p.role,
				Round:     roundIdx + 1,
				RoundName: title,
				Content:   out.Content,
				Latency:   time.Since(start),
			}
			if record, ok := d.mgr.LastCall(); ok {
				turn.Provider = record.Provider
				turn.Model = record.Model
				turn.Usage = record.Usage
				turn.Latency = record.Latency
			}

			stored, err := d.svc.AppendTurn(ctx, turn)
			if err != nil {
				return err
			}
			turns = append(turns, stored)
		}
	}

	return nil
}

// historyFor maps the discussion so far into chat history for one speaker:
// its own past turns become assistant messages, everyone else's become
// attributed user messages.
func historyFor(speaker string, turns []panel.Turn) []*schema.Message {
	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		if turn.Speaker == speaker {
			history = append(history, schema.AssistantMessage(turn.Content, nil))
			continue
		}
		history = append(history, schema.UserMessage(fmt.Sprintf("%s: %s", turn.Speaker, turn.Content)))
	}
	return history
}

// buildPanel resolves the expert templates for a spec: custom definitions
// win, then an explicit key selection within a domain, then the whole
// domain capped at the expert count.
func buildPanel(store expert.Store, spec Spec, defaultCount int) ([]expert.Template, error) {
	switch {
	case len(spec.CustomExperts) > 0:
		return append([]expert.Template(nil), spec.CustomExperts...), nil

	case len(spec.ExpertKeys) > 0 && spec.Domain != "":
		selected := make([]expert.Template, 0, len(spec.ExpertKeys))
		for _, key := range spec.ExpertKeys {
			t, ok := store.Find(spec.Domain, key)
			if !ok {
				return nil, fmt.Errorf("expert %q not found in domain %q", key, spec.Domain)
			}
			selected = append(selected, t)
		}
		return selected, nil

	case spec.Domain != "":
		set, ok := store.Set(spec.Domain)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q", spec.Domain)
		}
		limit := spec.ExpertCount
		if limit <= 0 {
			limit = defaultCount
		}
		if len(set) > limit {
			set = set[:limit]
		}
		return set, nil

	default:
		return nil, ErrPanelUndefined
	}
}
