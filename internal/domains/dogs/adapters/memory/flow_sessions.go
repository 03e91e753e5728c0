package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

var _ ports.AddFlowSessions = (*FlowSessions)(nil)

// DefaultFlowTTL is how long an untouched add-dog flow stays open.
const DefaultFlowTTL = 30 * time.Minute

// FlowFactory builds a fresh, not yet started flow.
type FlowFactory func() ports.AddFlow

// FlowSessions keeps open add-dog flows in memory, keyed by a random id.
type FlowSessions struct {
	mu       sync.Mutex
	sessions map[string]*flowSession
	newFlow  FlowFactory
	ttl      time.Duration
	now      func() time.Time
}

type flowSession struct {
	flow     ports.AddFlow
	lastSeen time.Time
}

// NewFlowSessions constructs an empty registry. A non-positive ttl falls back to DefaultFlowTTL.
func NewFlowSessions(newFlow FlowFactory, ttl time.Duration) *FlowSessions {
	if ttl <= 0 {
		ttl = DefaultFlowTTL
	}
	return &FlowSessions{
		sessions: map[string]*flowSession{},
		newFlow:  newFlow,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *FlowSessions) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Open creates a flow, starts its photo fetch and registers it.
func (s *FlowSessions) Open(ctx context.Context) (string, ports.AddFlow, error) {
	flow := s.newFlow()
	id := uuid.NewString()
	flow.Start(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &flowSession{flow: flow, lastSeen: s.now()}
	return id, flow, nil
}

// Get returns an open flow and marks it as recently used.
func (s *FlowSessions) Get(_ context.Context, id string) (ports.AddFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ports.ErrFlowNotFound
	}
	session.lastSeen = s.now()
	return session.flow, nil
}

// Close unregisters the flow and cancels its pending fetch.
func (s *FlowSessions) Close(_ context.Context, id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ports.ErrFlowNotFound
	}
	session.flow.Close()
	return nil
}

// PurgeIdle closes flows untouched for longer than the ttl and returns how many were closed.
func (s *FlowSessions) PurgeIdle(_ context.Context) int {
	cutoff := s.now().Add(-s.ttl)
	var expired []ports.AddFlow
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			expired = append(expired, session.flow)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	for _, flow := range expired {
		flow.Close()
	}
	return len(expired)
}

// CloseAll closes every open flow, used on shutdown.
func (s *FlowSessions) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = map[string]*flowSession{}
	s.mu.Unlock()
	for _, session := range sessions {
		session.flow.Close()
	}
}

// Len reports the number of open flows.
func (s *FlowSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
