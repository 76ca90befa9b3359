package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestContactOutcome(t *testing.T) {
	before := testutil.ToFloat64(contactSubmissions.WithLabelValues("success"))
	ContactOutcome("success")
	assert.Equal(t, before+1, testutil.ToFloat64(contactSubmissions.WithLabelValues("success")))
}

func TestLiveSessions(t *testing.T) {
	before := testutil.ToFloat64(liveSessions)
	SessionOpened()
	SessionOpened()
	SessionClosed()
	assert.Equal(t, before+1, testutil.ToFloat64(liveSessions))
	SessionClosed()
}

func TestObserveRequest_UnmatchedRoute(t *testing.T) {
	ObserveRequest("", http.MethodGet, 404, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestHandler(t *testing.T) {
	LiveMessage("scroll")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_live_messages_total")
}
