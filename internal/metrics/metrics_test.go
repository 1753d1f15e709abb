package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/skills", "200"))

	RecordRequest("GET", "/api/skills", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/skills", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	RecordRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordUploadAndSession(t *testing.T) {
	before := testutil.ToFloat64(UploadsTotal.WithLabelValues("resume", ResultRejected))
	RecordUpload("resume", ResultRejected)
	assert.Equal(t, before+1, testutil.ToFloat64(UploadsTotal.WithLabelValues("resume", ResultRejected)))

	beforeDenied := testutil.ToFloat64(SessionChecksTotal.WithLabelValues("false"))
	RecordSessionCheck(false)
	assert.Equal(t, beforeDenied+1, testutil.ToFloat64(SessionChecksTotal.WithLabelValues("false")))
}
