package llm

import (
	"fmt"
	"strings"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/expert"
)

// PromptBuilder renders the system prompts and opening messages for panel
// participants from the discussion settings.
type PromptBuilder struct {
	cfg config.PanelConfig
}

// NewPromptBuilder creates a builder bound to the panel settings.
func NewPromptBuilder(cfg config.PanelConfig) *PromptBuilder {
	return &PromptBuilder{cfg: cfg}
}

func (b *PromptBuilder) lengthInstruction() string {
	maxLength := b.cfg.MaxResponseLength
	switch b.cfg.Verbosity {
	case "concise":
		return "Keep responses VERY brief (50-100 words max). Get straight to the point."
	case "verbose":
		return fmt.Sprintf("Provide detailed analysis (%d-400 words). Include examples and nuance.", maxLength)
	default:
		return fmt.Sprintf("Keep responses focused (100-%d words). Be clear but thorough.", maxLength)
	}
}

func (b *PromptBuilder) formatInstruction() string {
	switch b.cfg.ResponseFormat {
	case "bullet_points":
		return "Use bullet points for key insights. No long paragraphs."
	case "detailed":
		return "Provide comprehensive analysis with sections and examples."
	default:
		return "Use 1-2 clear paragraphs."
	}
}

// ExpertSystemPrompt renders the system prompt for one expert persona.
func (b *PromptBuilder) ExpertSystemPrompt(t expert.Template, topic string) string {
	interaction := "- Focus on your own expert analysis"
	if b.cfg.ExpertInteraction {
		interaction = "- Build on or respectfully disagree with other experts"
	}

	return fmt.Sprintf(`You are %s, an expert in %s.

BACKGROUND: %s

PERSPECTIVE: %s

You are participating in an expert panel discussion about: %s

RESPONSE GUIDELINES:
- VERBOSITY: %s
- %s
- FORMAT: %s

INSTRUCTIONS:
- Provide insights from your unique expertise and perspective
- Be specific and actionable in your recommendations
- Reference your professional experience when relevant
%s
- Use your authentic voice and known approaches
- Be constructive and professional

DISCUSSION STYLE: %s

CRITICAL: You MUST keep responses %s. Maximum %d words per response.

Remember: You are %s - stay true to your known methodologies and approaches.`,
		t.Name,
		t.Expertise,
		t.Background,
		t.Perspective,
		topic,
		strings.ToUpper(b.cfg.Verbosity),
		b.lengthInstruction(),
		b.formatInstruction(),
		interaction,
		b.cfg.DiscussionStyle,
		b.cfg.Verbosity,
		b.cfg.MaxResponseLength,
		t.Name,
	)
}

// ModeratorSystemPrompt renders the system prompt for the moderator,
// including the round plan.
func (b *PromptBuilder) ModeratorSystemPrompt(topic string, rounds []string) string {
	var roundsText strings.Builder
	for i, title := range rounds {
		fmt.Fprintf(&roundsText, "%d. %s\n", i+1, title)
	}

	var style string
	switch b.cfg.Verbosity {
	case "concise":
		style = "Keep introductions VERY brief (1-2 sentences). Move quickly between rounds."
	case "verbose":
		style = "Thoroughly introduce each round and synthesize discussions in detail."
	default:
		style = "Provide clear but concise round introductions. Keep the pace moving."
	}

	clarify := "- Ask clarifying questions when needed"
	synthesize := "- Synthesize key points and identify areas of agreement/disagreement"
	if b.cfg.Verbosity == "concise" {
		clarify = "- Keep discussion moving quickly"
		synthesize = "- Quick summaries only"
	}

	participation := "- Ensure quick responses"
	if len(rounds) > 3 {
		participation = "- Draw out quiet participants"
	}

	return fmt.Sprintf(`You are a professional moderator facilitating an expert panel discussion about: %s

DISCUSSION ROUNDS (%d total):
%s
MODERATION STYLE: %s
%s

YOUR ROLE:
- Guide the discussion through structured rounds
- Ensure all experts contribute meaningfully
%s
- Keep discussions focused and productive
%s
- Manage time and move discussion forward

GUIDELINES:
- Be neutral and objective
- Encourage specific, actionable insights
%s
- Highlight important consensus or disagreements
- Keep your own responses %s
- Maintain professional tone

CRITICAL: This is a %s discussion with %d rounds. Keep pace appropriate.`,
		topic,
		len(rounds),
		roundsText.String(),
		strings.ToUpper(b.cfg.Verbosity),
		style,
		clarify,
		synthesize,
		participation,
		b.cfg.Verbosity,
		b.cfg.Verbosity,
		len(rounds),
	)
}

// Rounds resolves the round plan: config override first, then the
// verbosity-keyed defaults.
func (b *PromptBuilder) Rounds() []string {
	if len(b.cfg.CustomRounds) > 0 {
		return append([]string(nil), b.cfg.CustomRounds...)
	}

	switch b.cfg.Verbosity {
	case "concise":
		return []string{
			"Quick Assessment",
			"Key Issues",
			"Recommendations",
		}
	case "verbose":
		return []string{
			"Comprehensive Analysis",
			"Detailed Examination",
			"Strengths and Opportunities",
			"Challenges and Risks",
			"Strategic Recommendations",
			"Implementation Roadmap",
			"Long-term Considerations",
			"Final Synthesis",
		}
	default:
		return []string{
			"Initial Analysis",
			"Key Considerations",
			"Potential Issues",
			"Recommendations",
			"Implementation Strategy",
			"Final Thoughts",
		}
	}
}

// OpeningMessage renders the coordinator's kickoff, with a document-review
// variant when content is attached.
func (b *PromptBuilder) OpeningMessage(topic, documentContent string) string {
	if documentContent != "" {
		return fmt.Sprintf(`We are conducting an expert panel review of the following:

TOPIC: %s

DOCUMENT:
%s

Please provide your expert analysis and recommendations. Each expert should share their perspective based on their area of expertise.`, topic, documentContent)
	}

	return fmt.Sprintf(`We are conducting an expert panel discussion on: %s

Each expert should provide their analysis, insights, and recommendations from their unique professional perspective. Feel free to build on each other's ideas or offer alternative viewpoints.`, topic)
}

// ModeratorTurnQuery is the per-turn instruction handed to the moderator.
func ModeratorTurnQuery(round int, total int, title string) string {
	return fmt.Sprintf("Open discussion round %d of %d: %q. Introduce the round, summarize the discussion so far if useful, and invite the experts to contribute.", round, total, title)
}

// ExpertTurnQuery is the per-turn instruction handed to an expert.
func ExpertTurnQuery(title string) string {
	return fmt.Sprintf("Contribute your expert analysis for the current round %q, responding to the discussion so far.", title)
}
