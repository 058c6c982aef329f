package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/metrics"
	"go.trai.ch/depcache/internal/core/ports"
)

func TestRecorder_Staleness(t *testing.T) {
	t.Parallel()

	r := metrics.New()
	r.ObserveStaleness(ports.ReasonUpToDate)
	r.ObserveStaleness(ports.ReasonModified)
	r.ObserveStaleness(ports.ReasonModified)

	assert.Equal(t, 2, testutil.CollectAndCount(r.Registry(), "depcache_staleness_checks_total"))

	expected := `
# HELP depcache_staleness_checks_total Freshness decisions by reason.
# TYPE depcache_staleness_checks_total counter
depcache_staleness_checks_total{reason="modified"} 2
depcache_staleness_checks_total{reason="up_to_date"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "depcache_staleness_checks_total"))
}

func TestRecorder_SignatureAndCommit(t *testing.T) {
	t.Parallel()

	r := metrics.New()
	r.ObserveSignature(3*time.Millisecond, nil)
	r.ObserveSignature(0, errors.New("missing input"))
	r.ObserveCommit(3, nil)
	r.ObserveCommit(1, errors.New("rolled back"))

	assert.Equal(t, 1, testutil.CollectAndCount(r.Registry(), "depcache_signature_duration_seconds"))
	assert.Equal(t, 2, testutil.CollectAndCount(r.Registry(), "depcache_commits_total"))

	expected := `
# HELP depcache_committed_outputs_total Outputs written by successful commits.
# TYPE depcache_committed_outputs_total counter
depcache_committed_outputs_total 3
# HELP depcache_signature_errors_total Signature computations that failed.
# TYPE depcache_signature_errors_total counter
depcache_signature_errors_total 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"depcache_committed_outputs_total", "depcache_signature_errors_total"))
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()

	r := metrics.New()
	r.ObserveStaleness(ports.ReasonNeverBuilt)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL) //nolint:noctx // test server
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `depcache_staleness_checks_total{reason="never_built"} 1`)
}
