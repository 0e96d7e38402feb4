package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))

	RecordHTTPRequest("GET", "/api/v1/titles", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordRatingLookup(t *testing.T) {
	hits := testutil.ToFloat64(RatingCacheHits)
	misses := testutil.ToFloat64(RatingCacheMisses)

	RecordRatingLookup(true)
	RecordRatingLookup(false)
	RecordRatingLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(RatingCacheHits))
	assert.Equal(t, misses+2, testutil.ToFloat64(RatingCacheMisses))
}

func TestRecordImport(t *testing.T) {
	rows := testutil.ToFloat64(ImportRowsTotal.WithLabelValues("genre.csv"))
	fails := testutil.ToFloat64(ImportFileErrors.WithLabelValues("genre.csv"))

	RecordImport("genre.csv", 15, nil)
	RecordImport("genre.csv", 0, errors.New("bad header"))

	assert.Equal(t, rows+15, testutil.ToFloat64(ImportRowsTotal.WithLabelValues("genre.csv")))
	assert.Equal(t, fails+1, testutil.ToFloat64(ImportFileErrors.WithLabelValues("genre.csv")))
}
