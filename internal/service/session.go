package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session tracks the search state of one interactive user. Starting a new
// search cancels the one in flight; a superseded search never touches the
// session state and returns ErrSuperseded.
type Session struct {
	resolver *Resolver

	mu      sync.Mutex
	state   State
	current uuid.UUID
	cancel  context.CancelFunc
}

// NewSession creates a new idle Session
func NewSession(resolver *Resolver) *Session {
	return &Session{
		resolver: resolver,
		state:    StateIdle,
	}
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ImageSearchAvailable reports whether the latest search succeeded
func (s *Session) ImageSearchAvailable() bool {
	return s.State() == StateSuccess
}

// Reset cancels any in-flight search and returns to idle
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = uuid.Nil
	s.state = StateIdle
}

// Ticket is a claimed search slot. Searches are ordered by the time their
// ticket was taken, not by the time they run.
type Ticket struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
}

// ID returns the lookup ID the search will carry
func (t *Ticket) ID() uuid.UUID {
	return t.id
}

// Search validates and decodes input. The returned Outcome is the caller's
// to keep; it is the only handle on the decoded vehicle.
func (s *Session) Search(ctx context.Context, input string) (Outcome, error) {
	return s.Run(s.Begin(ctx), input)
}

// Begin supersedes the in-flight search and enters Validating. Callers that
// run searches on other goroutines must call Begin in input order.
func (s *Session) Begin(parent context.Context) *Ticket {
	ctx, cancel := context.WithCancel(parent)
	t := &Ticket{id: uuid.New(), ctx: ctx, cancel: cancel}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.current = t.id
	s.state = StateValidating

	return t
}

// Run validates and decodes input under a ticket from Begin. It returns
// ErrSuperseded once a later ticket has been taken.
func (s *Session) Run(t *Ticket, input string) (Outcome, error) {
	defer t.cancel()

	if !s.transition(t.id, StateValidating) {
		return Outcome{}, ErrSuperseded
	}

	out := s.resolver.validate(t.id, input)
	if out.State == StateInvalid {
		return s.finish(out)
	}

	if !s.transition(t.id, StateRequesting) {
		return Outcome{}, ErrSuperseded
	}

	out = s.resolver.decode(t.ctx, out)
	out, err := s.finish(out)
	if err != nil {
		return out, err
	}

	s.resolver.record(t.ctx, out)
	return out, nil
}

func (s *Session) transition(id uuid.UUID, state State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != id {
		return false
	}
	s.state = state
	return true
}

func (s *Session) finish(out Outcome) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != out.ID {
		return Outcome{}, ErrSuperseded
	}
	s.state = out.State
	s.cancel = nil
	return out, nil
}
