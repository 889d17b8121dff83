// Package report writes the per-session output bundle: transcript.md,
// analytics.json, and metadata.json under OUTPUT_DIR/session_<id>/.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/panelsim/expertpanel/internal/model/panel"
)

// Writer materializes session outputs under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a writer rooted at the configured output directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// SessionDir returns the output directory for a session.
func (w *Writer) SessionDir(sessionID string) string {
	return filepath.Join(w.baseDir, "session_"+sessionID)
}

// Write persists the transcript, analytics, and metadata files and returns
// the run summary.
func (w *Writer) Write(session panel.Session, turns []panel.Turn, analytics panel.Analytics, metadata panel.Metadata) (panel.Summary, error) {
	dir := w.SessionDir(session.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return panel.Summary{}, fmt.Errorf("create session directory: %w", err)
	}

	transcriptPath := filepath.Join(dir, "transcript.md")
	if err := os.WriteFile(transcriptPath, []byte(RenderTranscript(session, turns)), 0o644); err != nil {
		return panel.Summary{}, fmt.Errorf("write transcript: %w", err)
	}

	analyticsPath := filepath.Join(dir, "analytics.json")
	if err := writeJSON(analyticsPath, analytics); err != nil {
		return panel.Summary{}, fmt.Errorf("write analytics: %w", err)
	}

	metadataPath := filepath.Join(dir, "metadata.json")
	if err := writeJSON(metadataPath, metadata); err != nil {
		return panel.Summary{}, fmt.Errorf("write metadata: %w", err)
	}

	return panel.Summary{
		SessionID: session.ID,
		Topic:     session.Topic,
		Outputs: map[string]string{
			"transcript": transcriptPath,
			"analytics":  analyticsPath,
			"metadata":   metadataPath,
		},
		TotalCost:      fmt.Sprintf("$%.4f", analytics.Costs.TotalCostUSD),
		TotalTokens:    analytics.TokenUsage.TotalTokens,
		DurationMins:   analytics.SessionInfo.DurationMinutes,
		PrimaryBackend: analytics.SessionInfo.PrimaryProvider,
	}, nil
}

// RenderTranscript renders the markdown transcript: a header followed by
// one section per turn.
func RenderTranscript(session panel.Session, turns []panel.Turn) string {
	var b strings.Builder

	b.WriteString("# Expert Panel Discussion Transcript\n")
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().UTC().Format(time.RFC3339))
	b.WriteString("\n")

	for _, turn := range turns {
		fmt.Fprintf(&b, "## %s (%s)\n", turn.Speaker, turn.CreatedAt.Format("15:04:05"))
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}

// BuildMetadata assembles the metadata record from the run pieces.
func BuildMetadata(session panel.Session, sanitizedConfig map[string]string, analytics panel.Analytics, start, end time.Time) panel.Metadata {
	return panel.Metadata{
		SessionID:        session.ID,
		StartTime:        start.UTC(),
		EndTime:          end.UTC(),
		Config:           sanitizedConfig,
		Topic:            session.Topic,
		ExpertCount:      len(session.ExpertNames),
		ExpertNames:      append([]string(nil), session.ExpertNames...),
		DocumentProvided: session.DocumentProvided,
		TotalCostUSD:     analytics.Costs.TotalCostUSD,
		TotalTokens:      analytics.TokenUsage.TotalTokens,
	}
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
