package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/model/panel"
)

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrNoProviders is returned when no backend has credentials configured.
var ErrNoProviders = errors.New("no llm providers configured")

// Provider pairs a backend name with its chat model.
type Provider struct {
	Name  string
	Model string
	Chat  model.BaseChatModel
}

// CallRecord captures accounting for one completed model call.
type CallRecord struct {
	Provider string
	Model    string
	Usage    panel.Usage
	CostUSD  decimal.Decimal
	Latency  time.Duration
}

// Manager fronts the configured providers with retry, failover, and
// token/cost accounting. It satisfies eino's chat model contract so panel
// chains can use it directly.
type Manager struct {
	providers  []Provider
	primary    string
	maxRetries int

	mu           sync.Mutex
	totalUsage   panel.Usage
	totalCost    decimal.Decimal
	callCount    int
	sessionStart time.Time
	last         *CallRecord
}

// NewManager builds providers from configuration, primary first.
func NewManager(ctx context.Context, cfg config.ProvidersConfig) (*Manager, error) {
	var providers []Provider

	addOpenAI := func() error {
		if !cfg.OpenAI.Enabled() {
			return nil
		}
		chat, err := cfg.NewOpenAIModel(ctx)
		if err != nil {
			return fmt.Errorf("initialize openai provider: %w", err)
		}
		providers = append(providers, Provider{Name: ProviderOpenAI, Model: cfg.OpenAI.Model, Chat: chat})
		log.Printf("[llm] openai provider initialized (model=%s)", cfg.OpenAI.Model)
		return nil
	}
	addAnthropic := func() error {
		if !cfg.Anthropic.Enabled() {
			return nil
		}
		chat, err := cfg.NewAnthropicModel(ctx)
		if err != nil {
			return fmt.Errorf("initialize anthropic provider: %w", err)
		}
		providers = append(providers, Provider{Name: ProviderAnthropic, Model: cfg.Anthropic.Model, Chat: chat})
		log.Printf("[llm] anthropic provider initialized (model=%s)", cfg.Anthropic.Model)
		return nil
	}

	ordered := []func() error{addAnthropic, addOpenAI}
	if cfg.Primary == ProviderOpenAI {
		ordered = []func() error{addOpenAI, addAnthropic}
	}
	for _, add := range ordered {
		if err := add(); err != nil {
			return nil, err
		}
	}

	return NewManagerWith(cfg.Primary, cfg.MaxRetries, providers)
}

// NewManagerWith assembles a manager over prebuilt providers. Failover
// follows the slice order.
func NewManagerWith(primary string, maxRetries int, providers []Provider) (*Manager, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Manager{
		providers:    append([]Provider(nil), providers...),
		primary:      primary,
		maxRetries:   maxRetries,
		sessionStart: time.Now(),
	}, nil
}

// Primary returns the configured primary provider name.
func (m *Manager) Primary() string {
	return m.primary
}

// ProviderNames lists the registered providers in failover order.
func (m *Manager) ProviderNames() []string {
	names := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		names = append(names, p.Name)
	}
	return names
}

// Generate runs the input through the first provider that answers. Each
// provider is retried with exponential backoff before failing over.
func (m *Manager) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	var lastErr error
	for _, p := range m.providers {
		msg, latency, err := m.callWithRetry(ctx, p, input, opts...)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[llm] provider %s failed after %d attempts: %v", p.Name, m.maxRetries, err)
			lastErr = err
			continue
		}

		m.record(p, input, msg, latency)
		return msg, nil
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

// Stream satisfies the chat model contract. Panel turns are consumed
// whole, so the stream carries the fully generated message as one chunk.
func (m *Manager) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *Manager) callWithRetry(ctx context.Context, p Provider, input []*schema.Message, opts ...model.Option) (*schema.Message, time.Duration, error) {
	var (
		msg     *schema.Message
		latency time.Duration
	)

	operation := func() error {
		start := time.Now()
		out, err := p.Chat.Generate(ctx, input, opts...)
		if err != nil {
			return err
		}
		msg = out
		latency = time.Since(start)
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 500 * time.Millisecond
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(m.maxRetries-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, 0, err
	}
	return msg, latency, nil
}

func (m *Manager) record(p Provider, input []*schema.Message, msg *schema.Message, latency time.Duration) {
	usage := usageFrom(input, msg)
	cost := estimateCost(p.Name, p.Model, usage)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalUsage = m.totalUsage.Add(usage)
	m.totalCost = m.totalCost.Add(cost)
	m.callCount++
	m.last = &CallRecord{
		Provider: p.Name,
		Model:    p.Model,
		Usage:    usage,
		CostUSD:  cost,
		Latency:  latency,
	}
}

// usageFrom prefers the usage metadata from the response and falls back to
// a word-count estimate when the API omitted it.
func usageFrom(input []*schema.Message, msg *schema.Message) panel.Usage {
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		u := msg.ResponseMeta.Usage
		return panel.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}

	var promptText strings.Builder
	for _, in := range input {
		promptText.WriteString(in.Content)
		promptText.WriteByte('\n')
	}
	prompt := estimateTokens(promptText.String())
	completion := estimateTokens(msg.Content)
	return panel.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// LastCall returns accounting for the most recent successful call.
func (m *Manager) LastCall() (CallRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return CallRecord{}, false
	}
	return *m.last, true
}

// TotalUsage returns the running token totals.
func (m *Manager) TotalUsage() panel.Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalUsage
}

// TotalCostUSD returns the running spend.
func (m *Manager) TotalCostUSD() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalCost
}

// Analytics snapshots the session report.
func (m *Manager) Analytics() panel.Analytics {
	m.mu.Lock()
	defer m.mu.Unlock()

	durationMin := time.Since(m.sessionStart).Minutes()

	calls := m.callCount
	callsDivisor := calls
	if callsDivisor < 1 {
		callsDivisor = 1
	}

	tokensPer1K := decimal.NewFromInt(int64(m.totalUsage.TotalTokens)).Div(thousand)
	if tokensPer1K.LessThan(decimal.NewFromInt(1)) {
		tokensPer1K = decimal.NewFromInt(1)
	}

	minutesDivisor := durationMin
	if minutesDivisor < 1 {
		minutesDivisor = 1
	}

	return panel.Analytics{
		SessionInfo: panel.SessionInfo{
			DurationMinutes: round2(durationMin),
			TotalCalls:      calls,
			ProvidersUsed:   m.providerNamesLocked(),
			PrimaryProvider: m.primary,
		},
		TokenUsage: m.totalUsage,
		Costs: panel.Costs{
			TotalCostUSD:           m.totalCost.Round(4).InexactFloat64(),
			AverageCostPerCall:     m.totalCost.Div(decimal.NewFromInt(int64(callsDivisor))).Round(4).InexactFloat64(),
			EstimatedCostPer1KToks: m.totalCost.Div(tokensPer1K).Round(4).InexactFloat64(),
		},
		Performance: panel.Performance{
			CallsPerMinute:  round2(float64(calls) / minutesDivisor),
			TokensPerMinute: math.Round(float64(m.totalUsage.TotalTokens) / minutesDivisor),
		},
	}
}

func (m *Manager) providerNamesLocked() []string {
	names := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		names = append(names, p.Name)
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
