package panel

import "time"

// Usage aggregates token counts across model calls.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add returns the element-wise sum of two usages.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// Analytics is the per-session token/cost report written to analytics.json.
type Analytics struct {
	SessionInfo SessionInfo `json:"session_info"`
	TokenUsage  Usage       `json:"token_usage"`
	Costs       Costs       `json:"costs"`
	Performance Performance `json:"performance"`
}

// SessionInfo summarizes the run itself.
type SessionInfo struct {
	DurationMinutes float64  `json:"duration_minutes"`
	TotalCalls      int      `json:"total_calls"`
	ProvidersUsed   []string `json:"providers_used"`
	PrimaryProvider string   `json:"primary_provider"`
}

// Costs reports USD spend derived from per-model pricing tables.
type Costs struct {
	TotalCostUSD           float64 `json:"total_cost_usd"`
	AverageCostPerCall     float64 `json:"average_cost_per_call"`
	EstimatedCostPer1KToks float64 `json:"estimated_cost_per_1k_tokens"`
}

// Performance reports call and token throughput.
type Performance struct {
	CallsPerMinute  float64 `json:"calls_per_minute"`
	TokensPerMinute float64 `json:"tokens_per_minute"`
}

// Metadata is the run-configuration record written to metadata.json.
type Metadata struct {
	SessionID        string            `json:"session_id"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Config           map[string]string `json:"config"`
	Topic            string            `json:"topic"`
	ExpertCount      int               `json:"expert_count"`
	ExpertNames      []string          `json:"expert_names"`
	DocumentProvided bool              `json:"document_provided"`
	TotalCostUSD     float64           `json:"total_cost"`
	TotalTokens      int               `json:"total_tokens"`
}

// Summary is returned to the caller after outputs are written.
type Summary struct {
	SessionID      string            `json:"sessionId"`
	Topic          string            `json:"topic"`
	Outputs        map[string]string `json:"outputs"`
	TotalCost      string            `json:"totalCost"`
	TotalTokens    int               `json:"totalTokens"`
	DurationMins   float64           `json:"durationMinutes"`
	PrimaryBackend string            `json:"provider"`
}
