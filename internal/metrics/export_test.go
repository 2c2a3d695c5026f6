package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exposition = `# HELP go_gc_duration_seconds A summary of the pause duration of garbage collection cycles.
# TYPE go_gc_duration_seconds summary
go_gc_duration_seconds{quantile="0"} 2.4e-05
go_gc_duration_seconds{quantile="1"} 0.000153
go_gc_duration_seconds_sum 0.001341
go_gc_duration_seconds_count 9
# HELP go_memstats_alloc_bytes Number of bytes allocated and still in use.
# TYPE go_memstats_alloc_bytes gauge
go_memstats_alloc_bytes 2.654072e+06
# HELP go_memstats_sys_bytes Number of bytes obtained from system.
# TYPE go_memstats_sys_bytes gauge
go_memstats_sys_bytes 7.2284408e+07
# HELP go_memstats_mallocs_total Total number of mallocs.
# TYPE go_memstats_mallocs_total counter
go_memstats_mallocs_total 31112
# HELP go_memstats_frees_total Total number of frees.
# TYPE go_memstats_frees_total counter
go_memstats_frees_total 15865
`

func TestSelectDefaultSeries(t *testing.T) {
	t.Parallel()

	values, err := Select(strings.NewReader(exposition), DefaultSeries)
	require.NoError(t, err)

	assert.Len(t, values, len(DefaultSeries))
	assert.InDelta(t, 0.001341, values["go_gc_duration_seconds_sum"], 1e-9)
	assert.InDelta(t, 9, values["go_gc_duration_seconds_count"], 0)
	assert.InDelta(t, 2.654072e+06, values["go_memstats_alloc_bytes"], 0)
	assert.InDelta(t, 31112, values["go_memstats_mallocs_total"], 0)
}

func TestSelectSkipsMissingSeries(t *testing.T) {
	t.Parallel()

	values, err := Select(strings.NewReader(exposition),
		[]string{"go_memstats_alloc_bytes", "no_such_metric"})
	require.NoError(t, err)

	assert.Len(t, values, 1)
	assert.Contains(t, values, "go_memstats_alloc_bytes")
}

func TestSelectRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Select(strings.NewReader("this is { not metrics"), DefaultSeries)
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(exposition))
	}))
	defer srv.Close()

	values, err := Fetch(context.Background(), srv.Client(), srv.URL, DefaultSeries)
	require.NoError(t, err)
	assert.Len(t, values, len(DefaultSeries))
}

func TestFetchBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL, DefaultSeries)
	require.ErrorIs(t, err, ErrBadStatus)
}
