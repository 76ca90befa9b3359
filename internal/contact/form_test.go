package contact

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelay struct {
	mu    sync.Mutex
	calls []Payload
	err   error
	block chan struct{}
}

func (r *fakeRelay) Send(ctx context.Context, _ Credentials, p Payload) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, p)
	return r.err
}

func (r *fakeRelay) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type fakeVerifier struct{ err error }

func (v fakeVerifier) Verify(context.Context, string, string) error { return v.err }

var testCreds = Credentials{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub"}

var filled = Fields{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

func newTestForm(relay Relay, creds Credentials) (*Form, *int) {
	resets := 0
	f := NewForm(Options{
		Relay:       relay,
		Credentials: creds,
		Recipient:   "Pham Quang Vu",
		Widget:      WidgetFunc(func() { resets++ }),
	})
	return f, &resets
}

func TestSubmit_EmptyFieldIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
	}{
		{"no name", Fields{Email: "a@b.c", Message: "m"}},
		{"no email", Fields{Name: "n", Message: "m"}},
		{"no message", Fields{Name: "n", Email: "a@b.c"}},
		{"all empty", Fields{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &fakeRelay{}
			f, _ := newTestForm(relay, testCreds)
			f.SetFields(tt.fields)
			f.SetToken("tok")

			res, err := f.Submit(context.Background(), "")
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Equal(t, StateIdle, res.State)
			assert.Equal(t, StateIdle, f.State())
			assert.Equal(t, 0, relay.Calls())
		})
	}
}

func TestSubmit_MissingTokenBlocks(t *testing.T) {
	relay := &fakeRelay{}
	f, _ := newTestForm(relay, testCreds)
	f.SetFields(filled)

	_, err := f.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, 0, relay.Calls())
	assert.Equal(t, filled, f.Fields())
}

func TestSubmit_Success(t *testing.T) {
	relay := &fakeRelay{}
	f, resets := newTestForm(relay, testCreds)
	f.SetFields(filled)
	f.SetToken("tok")

	res, err := f.Submit(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, res.State)
	assert.NotEmpty(t, res.ID)

	assert.Equal(t, StateSuccess, f.State())
	assert.Equal(t, Fields{}, f.Fields())
	assert.Empty(t, f.Token())
	assert.Equal(t, 1, *resets)

	require.Equal(t, 1, relay.Calls())
	assert.Equal(t, Payload{
		FromName:  "Ada",
		FromEmail: "ada@example.com",
		Message:   "Hello",
		ToName:    "Pham Quang Vu",
	}, relay.calls[0])
}

func TestSubmit_PassesThroughSending(t *testing.T) {
	relay := &fakeRelay{block: make(chan struct{})}
	f, _ := newTestForm(relay, testCreds)
	f.SetFields(filled)
	f.SetToken("tok")

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), "")
		done <- err
	}()

	require.Eventually(t, func() bool { return f.State() == StateSending }, time1s, tick)

	// inputs are disabled and a second submit is refused while sending
	f.SetFields(Fields{Name: "x", Email: "y", Message: "z"})
	assert.Equal(t, filled, f.Fields())
	_, err := f.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrBusy)

	close(relay.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateSuccess, f.State())
	assert.Equal(t, 1, relay.Calls())
}

func TestSubmit_ConfigMissing(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no service", Credentials{TemplateID: "t", PublicKey: "k"}},
		{"no template", Credentials{ServiceID: "s", PublicKey: "k"}},
		{"no key", Credentials{ServiceID: "s", TemplateID: "t"}},
		{"nothing", Credentials{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &fakeRelay{}
			f, resets := newTestForm(relay, tt.creds)
			f.SetFields(filled)
			f.SetToken("tok")

			res, err := f.Submit(context.Background(), "")
			assert.ErrorIs(t, err, ErrConfigMissing)
			assert.Equal(t, StateError, res.State)
			assert.Equal(t, StateError, f.State())
			assert.ErrorIs(t, f.Err(), ErrConfigMissing)
			assert.Equal(t, 0, relay.Calls())
			assert.Equal(t, 0, *resets)
		})
	}
}

func TestSubmit_RelayFailureKeepsFields(t *testing.T) {
	relay := &fakeRelay{err: errors.New("network down")}
	f, resets := newTestForm(relay, testCreds)
	f.SetFields(filled)
	f.SetToken("tok")

	_, err := f.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrRelayFailed)
	assert.Equal(t, StateError, f.State())
	assert.Equal(t, filled, f.Fields())
	assert.Equal(t, 0, *resets)

	// retry from error is allowed
	relay.err = nil
	_, err = f.Submit(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, f.State())
}

func TestSubmit_VerifierRejects(t *testing.T) {
	relay := &fakeRelay{}
	f := NewForm(Options{
		Relay:       relay,
		Credentials: testCreds,
		Verifier:    fakeVerifier{err: errors.New("timeout")},
	})
	f.SetFields(filled)
	f.SetToken("tok")

	_, err := f.Submit(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenRejected)
	assert.Equal(t, StateError, f.State())
	assert.Equal(t, 0, relay.Calls())
}

func TestReset(t *testing.T) {
	f, _ := newTestForm(&fakeRelay{}, Credentials{})
	f.SetFields(filled)
	f.SetToken("tok")

	_, _ = f.Submit(context.Background(), "")
	require.Equal(t, StateError, f.State())
	f.Reset()
	assert.Equal(t, StateError, f.State(), "only success resets")

	f2, _ := newTestForm(&fakeRelay{}, testCreds)
	f2.SetFields(filled)
	f2.SetToken("tok")
	_, err := f2.Submit(context.Background(), "")
	require.NoError(t, err)
	f2.Reset()
	assert.Equal(t, StateIdle, f2.State())
}
