package panel

import "time"

// Speaker roles within a discussion.
const (
	RoleCoordinator = "coordinator"
	RoleModerator   = "moderator"
	RoleExpert      = "expert"
)

// Turn persists a single contribution to the discussion.
type Turn struct {
	ID        string        `json:"id"`
	SessionID string        `json:"sessionId"`
	Speaker   string        `json:"speaker"`
	Role      string        `json:"role"`
	Round     int           `json:"round"`
	RoundName string        `json:"roundName,omitempty"`
	Content   string        `json:"content"`
	Provider  string        `json:"provider,omitempty"`
	Model     string        `json:"model,omitempty"`
	Usage     Usage         `json:"usage"`
	Latency   time.Duration `json:"latencyNs,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
