package contact

import (
	"context"
	"sync"
)

// Request is one submission over HTTP
type Request struct {
	Fields
	Token string `json:"token"`
}

// Service runs stateless submissions for many senders, allowing one in
// flight per sender key
type Service struct {
	opts Options

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a Service sharing opts across all forms
func NewService(opts Options) *Service {
	return &Service{opts: opts, inflight: make(map[string]struct{})}
}

// Configured reports whether the relay credentials are all present
func (s *Service) Configured() bool {
	return s.opts.Credentials.Complete() && s.opts.Relay != nil
}

// NewForm creates a form bound to the service's relay and credentials
func (s *Service) NewForm(w Widget) *Form {
	opts := s.opts
	opts.Widget = w
	return NewForm(opts)
}

// Submit runs req through a fresh form. sender identifies the client,
// usually its address; a second submission from the same sender while the
// first is sending returns ErrBusy.
func (s *Service) Submit(ctx context.Context, sender string, req Request) (Result, error) {
	s.mu.Lock()
	if _, busy := s.inflight[sender]; busy {
		s.mu.Unlock()
		return Result{State: StateSending}, ErrBusy
	}
	s.inflight[sender] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, sender)
		s.mu.Unlock()
	}()

	f := s.NewForm(nil)
	f.SetFields(req.Fields)
	f.SetToken(req.Token)
	return f.Submit(ctx, sender)
}
