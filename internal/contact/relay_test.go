package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJS_Send(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	relay := NewEmailJS(srv.URL, srv.Client())
	p := Payload{FromName: "Ada", FromEmail: "ada@example.com", Message: "Hi", ToName: "Vu"}
	require.NoError(t, relay.Send(context.Background(), testCreds, p))

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, p, got.TemplateParams)
}

func TestEmailJS_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewEmailJS(srv.URL, srv.Client()).Send(context.Background(), testCreds, Payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRelayFailed)

	var re *RelayError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Equal(t, "The Public Key is invalid", re.Body)
}

func TestEmailJS_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewEmailJS(url, nil).Send(context.Background(), testCreds, Payload{})
	assert.ErrorIs(t, err, ErrRelayFailed)
}

func TestRecaptcha(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr error
	}{
		{"accepted", `{"success":true}`, http.StatusOK, nil},
		{"rejected", `{"success":false,"error-codes":["timeout-or-duplicate"]}`, http.StatusOK, ErrTokenRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "secret", r.PostForm.Get("secret"))
				assert.Equal(t, "tok", r.PostForm.Get("response"))
				assert.Equal(t, "10.0.0.1", r.PostForm.Get("remoteip"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			v := NewRecaptcha("secret", srv.URL, srv.Client())
			err := v.Verify(context.Background(), "tok", "10.0.0.1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRecaptcha_NoSecret(t *testing.T) {
	assert.Nil(t, NewRecaptcha("", "", nil))
}

func TestRelayError_Message(t *testing.T) {
	assert.Equal(t, "relay rejected message: status 500", (&RelayError{StatusCode: 500}).Error())
}
