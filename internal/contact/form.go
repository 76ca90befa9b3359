// Package contact implements the contact form: its submission state machine,
// the transactional email relay it delegates to, and token verification.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is where the form is in its submission lifecycle
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Fields are the three user inputs
type Fields struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

var validate = validator.New()

// Filled reports whether every field has a value
func (f Fields) Filled() bool {
	return validate.Struct(f) == nil
}

// Result describes a finished submission
type Result struct {
	ID    string `json:"id"`
	State State  `json:"state"`
}

// Options configure a Form
type Options struct {
	Relay       Relay
	Credentials Credentials
	// Recipient fills to_name in the relay payload
	Recipient string
	// Verifier is optional; nil skips server-side verification
	Verifier Verifier
	// Widget is reset after a successful send
	Widget Widget
	Logger *zap.Logger
}

// Form is one contact form instance
type Form struct {
	opts   Options
	logger *zap.Logger

	mu     sync.Mutex
	state  State
	fields Fields
	token  string
	err    error
}

// NewForm creates an idle form
func NewForm(opts Options) *Form {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{opts: opts, logger: logger, state: StateIdle}
}

// State returns the current state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the cause of the last failed submission
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Fields returns the current input values
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces the input values. Inputs are locked while sending.
func (f *Form) SetFields(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSending {
		return
	}
	f.fields = fields
}

// SetToken stores the token issued by the verification widget.
// An empty token clears it, as when the widget expires.
func (f *Form) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

// Token returns the current verification token
func (f *Form) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// Reset returns a successful form to idle so another message can be written
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSuccess {
		f.state = StateIdle
		f.err = nil
	}
}

// Submit sends the message.
//
// Empty fields and a missing token are rejected before any transition.
// Otherwise the form moves to sending and ends in success or error.
// Missing credentials fail without calling the relay.
func (f *Form) Submit(ctx context.Context, remoteIP string) (Result, error) {
	f.mu.Lock()
	if f.state == StateSending {
		f.mu.Unlock()
		return Result{State: StateSending}, ErrBusy
	}
	if !f.fields.Filled() {
		st := f.state
		f.mu.Unlock()
		return Result{State: st}, ErrMissingFields
	}
	if f.token == "" {
		st := f.state
		f.mu.Unlock()
		return Result{State: st}, ErrMissingToken
	}
	f.state = StateSending
	f.err = nil
	fields, token := f.fields, f.token
	f.mu.Unlock()

	id := uuid.NewString()
	logger := f.logger.With(zap.String("submission_id", id))

	err := f.send(ctx, logger, fields, token, remoteIP)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.err = err
		return Result{ID: id, State: StateError}, err
	}
	f.state = StateSuccess
	f.fields = Fields{}
	f.token = ""
	if f.opts.Widget != nil {
		f.opts.Widget.Reset()
	}
	logger.Info("Message sent")
	return Result{ID: id, State: StateSuccess}, nil
}

func (f *Form) send(ctx context.Context, logger *zap.Logger, fields Fields, token, remoteIP string) error {
	if f.opts.Verifier != nil {
		if err := f.opts.Verifier.Verify(ctx, token, remoteIP); err != nil {
			logger.Warn("Verification failed", zap.Error(err))
			if errors.Is(err, ErrTokenRejected) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrTokenRejected, err)
		}
	}

	if !f.opts.Credentials.Complete() || f.opts.Relay == nil {
		logger.Error("Relay configuration missing")
		return ErrConfigMissing
	}

	err := f.opts.Relay.Send(ctx, f.opts.Credentials, Payload{
		FromName:  fields.Name,
		FromEmail: fields.Email,
		Message:   fields.Message,
		ToName:    f.opts.Recipient,
	})
	if err != nil {
		logger.Error("Error sending message via relay", zap.Error(err))
		if errors.Is(err, ErrRelayFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	return nil
}
