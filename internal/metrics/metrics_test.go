package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/fees", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/fees", 200, 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/fees", 200, 30*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("request count delta = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(APIRequestDuration); n == 0 {
		t.Error("expected duration histogram to have series")
	}
}

func TestRecordAuthFailure(t *testing.T) {
	counter := AuthFailuresTotal.WithLabelValues("invalid")
	before := testutil.ToFloat64(counter)

	RecordAuthFailure("invalid")

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("auth failure delta = %v, want 1", got)
	}
}
