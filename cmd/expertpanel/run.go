package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/report"
	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
)

var runFlags struct {
	topic       string
	document    string
	domain      string
	expertCount int
	configPath  string
	sample      string
	provider    string
	output      string
	rounds      int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an expert panel discussion",
	Example: `  # Review a product idea with tech experts
  expertpanel run --topic "AI-powered task manager" --domain technology

  # Review a document with productivity experts
  expertpanel run --document design.md --domain productivity

  # Custom expert panel
  expertpanel run --topic "Startup idea" --config custom_config.yaml

  # Use a sample configuration
  expertpanel run --sample task_management_review --document spec.md`,
	RunE: runPanel,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.topic, "topic", "t", "", "topic or question for the expert panel to discuss")
	runCmd.Flags().StringVarP(&runFlags.document, "document", "d", "", "path to a document for the experts to review")
	runCmd.Flags().StringVar(&runFlags.domain, "domain", "", "expert domain to use")
	runCmd.Flags().IntVarP(&runFlags.expertCount, "experts", "e", 0, "number of experts, 3-7 recommended (default 5)")
	runCmd.Flags().StringVarP(&runFlags.configPath, "config", "c", "", "path to a YAML configuration file")
	runCmd.Flags().StringVar(&runFlags.sample, "sample", "", fmt.Sprintf("use a sample configuration (%s)", strings.Join(expert.SampleNames(), ", ")))
	runCmd.Flags().StringVar(&runFlags.provider, "provider", "", "override the primary LLM provider (openai or anthropic)")
	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "", "output directory override")
	runCmd.Flags().IntVarP(&runFlags.rounds, "rounds", "r", 0, "maximum number of discussion rounds")

	rootCmd.AddCommand(runCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	if runFlags.topic == "" && runFlags.document == "" && runFlags.sample == "" {
		return errors.New("must provide --topic, --document, or --sample")
	}

	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var custom []expert.Template
	var fileRounds []string
	if runFlags.configPath != "" {
		fc, err := config.LoadFile(runFlags.configPath)
		if err != nil {
			return err
		}
		fc.Apply(cfg)
		custom = fc.CustomExperts()
		fileRounds = fc.Rounds
	}

	if runFlags.provider != "" {
		switch runFlags.provider {
		case "openai", "anthropic":
			cfg.Providers.Primary = runFlags.provider
		default:
			return fmt.Errorf("invalid --provider value %q (want openai or anthropic)", runFlags.provider)
		}
	}
	if runFlags.output != "" {
		cfg.Output.Dir = runFlags.output
	}
	if runFlags.rounds > 0 {
		cfg.Panel.MaxRounds = runFlags.rounds
	}

	topic := runFlags.topic
	domain := runFlags.domain
	var expertKeys []string
	var rounds []string

	if runFlags.sample != "" {
		sample, ok := expert.Samples()[runFlags.sample]
		if !ok {
			return fmt.Errorf("unknown sample %q (available: %s)", runFlags.sample, strings.Join(expert.SampleNames(), ", "))
		}
		if domain == "" {
			domain = sample.Domain
		}
		if topic == "" {
			topic = "Review of " + sample.Focus
		}
		expertKeys = sample.Experts
		rounds = sample.Rounds
	}
	if len(fileRounds) > 0 {
		rounds = fileRounds
	}

	var documentContent string
	if runFlags.document != "" {
		data, err := os.ReadFile(runFlags.document)
		if err != nil {
			return fmt.Errorf("error loading document: %w", err)
		}
		documentContent = string(data)
		fmt.Printf("Loaded document: %s\n", runFlags.document)
	}

	if topic == "" {
		topic = "Review of " + filepath.Base(runFlags.document)
	}

	store := expert.NewBuiltinStore()
	svc := panelservice.NewService()
	writer := report.NewWriter(cfg.Output.Dir)
	orch := panelservice.NewOrchestrator(store, svc, cfg, writer)

	spec := panelservice.Spec{
		Topic:         topic,
		Document:      documentContent,
		Domain:        domain,
		ExpertKeys:    expertKeys,
		CustomExperts: custom,
		ExpertCount:   runFlags.expertCount,
		Rounds:        rounds,
	}

	fmt.Printf("Starting simulation: %s\n", topic)

	run, err := orch.Start(ctx, spec)
	if err != nil {
		return err
	}
	session := run.Session()

	fmt.Printf("Session: %s\n", session.ID)
	fmt.Printf("Experts: %s\n", strings.Join(session.ExpertNames, ", "))
	fmt.Printf("Output: %s\n", writer.SessionDir(session.ID))

	turns, cancel, err := svc.Subscribe(ctx, session.ID)
	if err != nil {
		return err
	}
	defer cancel()

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for turn := range turns {
			if turn.Round == 0 {
				continue
			}
			fmt.Printf("  [round %d] %s (%d tokens)\n", turn.Round, turn.Speaker, turn.Usage.TotalTokens)
		}
	}()

	summary, err := orch.ExecuteAndReport(ctx, run)
	<-progressDone
	if err != nil {
		log.Printf("simulation error: %v", err)
		return err
	}

	fmt.Printf("\nSimulation complete\n")
	fmt.Printf("Cost: %s\n", summary.TotalCost)
	fmt.Printf("Tokens: %d\n", summary.TotalTokens)
	fmt.Printf("Duration: %.1f minutes\n", summary.DurationMins)
	fmt.Printf("Outputs saved to: %s\n", writer.SessionDir(session.ID))

	return nil
}
