package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGuardDenied(t *testing.T) {
	counter := guardDenials.WithLabelValues("category", "not the author")
	before := testutil.ToFloat64(counter)

	GuardDenied("category", "not the author")
	GuardDenied("category", "not the author")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestTotalsCacheLookup(t *testing.T) {
	hits := totalsCacheLookups.WithLabelValues("hit")
	misses := totalsCacheLookups.WithLabelValues("miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	TotalsCacheLookup(true)
	TotalsCacheLookup(false)
	TotalsCacheLookup(false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hits))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(misses))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.CollectAndCount(requestDuration)

	ObserveRequest("GET", "GET /api/transactions/metrics-test", 200, 12*time.Millisecond)

	assert.Equal(t, before+1, testutil.CollectAndCount(requestDuration))
}
