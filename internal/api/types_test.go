package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogEntryString(t *testing.T) {
	e := LogEntry{Timestamp: "2024-05-01T10:00:00Z", Level: "ERROR", Payload: "boom"}
	assert.Equal(t, "time=2024-05-01T10:00:00Z level=ERROR boom", e.String())
}

func TestDeploymentShortRef(t *testing.T) {
	assert.Equal(t, "abcdef1", Deployment{DeployedRef: "abcdef1234567"}.ShortRef())
	assert.Equal(t, "abc", Deployment{DeployedRef: "abc"}.ShortRef())
	assert.Equal(t, "", Deployment{}.ShortRef())
}

func TestTimeframeDuration(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		want time.Duration
	}{
		{TimeframeR1H, time.Hour},
		{TimeframeR24H, 24 * time.Hour},
		{TimeframeR7D, 7 * 24 * time.Hour},
		{TimeframeR30D, 30 * 24 * time.Hour},
		{Timeframe("bogus"), time.Hour},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tf.Duration())
		})
	}
}

func TestHTTPErrorClassification(t *testing.T) {
	forbidden := fmt.Errorf("fetch databases: %w", &HTTPError{StatusCode: http.StatusForbidden})
	assert.True(t, errors.Is(forbidden, ErrPermissionDenied))
	assert.False(t, errors.Is(forbidden, ErrUnauthenticated))
	assert.True(t, IsPermanent(forbidden))

	unavailable := &HTTPError{StatusCode: http.StatusServiceUnavailable, Body: "try later"}
	assert.False(t, IsPermanent(unavailable))
	assert.Equal(t, "unexpected status 503: try later", unavailable.Error())
}
