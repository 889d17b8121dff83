package llm

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/panelsim/expertpanel/internal/model/panel"
)

// modelPricing holds USD rates per 1K tokens.
type modelPricing struct {
	input  decimal.Decimal
	output decimal.Decimal
}

func price(input, output string) modelPricing {
	return modelPricing{
		input:  decimal.RequireFromString(input),
		output: decimal.RequireFromString(output),
	}
}

// Per-1K-token USD pricing for the supported models. Unknown models fall
// back to the provider's flagship rate.
var (
	openaiPricing = map[string]modelPricing{
		"gpt-4o":            price("0.0025", "0.010"),
		"gpt-4o-2024-08-06": price("0.0025", "0.010"),
		"gpt-4-turbo":       price("0.010", "0.030"),
		"gpt-3.5-turbo":     price("0.0005", "0.0015"),
	}
	anthropicPricing = map[string]modelPricing{
		"claude-3-5-sonnet-20241022": price("0.003", "0.015"),
		"claude-3-opus-20240229":     price("0.015", "0.075"),
		"claude-3-haiku-20240307":    price("0.00025", "0.00125"),
	}

	openaiDefaultPricing    = openaiPricing["gpt-4o"]
	anthropicDefaultPricing = anthropicPricing["claude-3-5-sonnet-20241022"]

	thousand = decimal.NewFromInt(1000)
)

func pricingFor(provider, model string) modelPricing {
	switch provider {
	case ProviderOpenAI:
		if p, ok := openaiPricing[model]; ok {
			return p
		}
		return openaiDefaultPricing
	case ProviderAnthropic:
		if p, ok := anthropicPricing[model]; ok {
			return p
		}
		return anthropicDefaultPricing
	default:
		return anthropicDefaultPricing
	}
}

// estimateCost prices a call from its token usage.
func estimateCost(provider, model string, usage panel.Usage) decimal.Decimal {
	p := pricingFor(provider, model)
	inputCost := decimal.NewFromInt(int64(usage.PromptTokens)).Div(thousand).Mul(p.input)
	outputCost := decimal.NewFromInt(int64(usage.CompletionTokens)).Div(thousand).Mul(p.output)
	return inputCost.Add(outputCost)
}

// estimateTokens approximates a token count when the API response carries
// no usage metadata. Roughly 1.3 tokens per whitespace-delimited word.
func estimateTokens(text string) int {
	words := len(strings.Fields(text))
	return (words*13 + 9) / 10
}
