package panel

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/panelsim/expertpanel/internal/model/panel"
)

var (
	ErrTopicRequired   = errors.New("topic is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Service encapsulates discussion state: sessions, their turns, and live
// subscribers watching a run in progress.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]panel.Session
	order    []string
	turns    map[string][]panel.Turn
	subs     map[string][]chan panel.Turn
}

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]panel.Session),
		turns:    make(map[string][]panel.Turn),
		subs:     make(map[string][]chan panel.Turn),
	}
}

// CreateSession provisions a session keyed by a timestamp identifier.
func (s *Service) CreateSession(_ context.Context, topic, domain string, expertNames []string, documentProvided bool) (panel.Session, error) {
	if topic == "" {
		return panel.Session{}, ErrTopicRequired
	}

	now := time.Now()
	session := panel.Session{
		ID:               panel.NewSessionID(now),
		Topic:            topic,
		Domain:           domain,
		Status:           panel.StatusRunning,
		ExpertNames:      append([]string(nil), expertNames...),
		DocumentProvided: documentProvided,
		CreatedAt:        now.UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Two runs inside the same second get distinct identifiers.
	if _, taken := s.sessions[session.ID]; taken {
		session.ID = session.ID + "_" + uuid.NewString()[:8]
	}

	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	s.turns[session.ID] = make([]panel.Turn, 0, 16)
	return session, nil
}

// AppendTurn stores a turn and fans it out to subscribers.
func (s *Service) AppendTurn(_ context.Context, turn panel.Turn) (panel.Turn, error) {
	if turn.SessionID == "" {
		return panel.Turn{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[turn.SessionID]; !ok {
		return panel.Turn{}, ErrSessionNotFound
	}

	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], turn)

	for _, sub := range s.subs[turn.SessionID] {
		select {
		case sub <- turn:
		default:
			log.Printf("[panel] dropping turn event for slow subscriber, session=%s", turn.SessionID)
		}
	}

	return turn, nil
}

// Complete marks a session finished and closes its subscriber channels.
func (s *Service) Complete(_ context.Context, sessionID string) error {
	return s.finish(sessionID, panel.StatusCompleted, "")
}

// Fail marks a session failed and closes its subscriber channels.
func (s *Service) Fail(_ context.Context, sessionID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.finish(sessionID, panel.StatusFailed, msg)
}

func (s *Service) finish(sessionID, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	session.Status = status
	session.Error = errMsg
	s.sessions[sessionID] = session

	for _, sub := range s.subs[sessionID] {
		close(sub)
	}
	delete(s.subs, sessionID)
	return nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (panel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return panel.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// ListSessions returns sessions in creation order.
func (s *Service) ListSessions(_ context.Context) []panel.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]panel.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

// Transcript returns stored turns for the provided session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]panel.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]panel.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

// turnEventBuffer holds a whole discussion: the largest built-in plan is
// well under 256 turns, so a subscriber only drops events if it stalls
// behind an over-configured run.
const turnEventBuffer = 256

// Subscribe registers a live turn feed for a running session. The channel
// is closed when the session finishes or the returned cancel runs. A
// finished session yields an immediately closed channel. Turns beyond the
// buffer are dropped for subscribers that stop reading.
func (s *Service) Subscribe(_ context.Context, sessionID string) (<-chan panel.Turn, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan panel.Turn, turnEventBuffer)
	if session.Status != panel.StatusRunning {
		close(ch)
		return ch, func() {}, nil
	}

	s.subs[sessionID] = append(s.subs[sessionID], ch)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[sessionID]
		for i, sub := range subs {
			if sub == ch {
				s.subs[sessionID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel, nil
}
