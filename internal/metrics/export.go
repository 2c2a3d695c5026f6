// Package metrics reads selected runtime metrics from a Prometheus text
// exposition endpoint. It understands just enough of the format to pull the
// Go memory and GC counters the aggregator exposes.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

var (
	ErrBadStatus = errors.New("unexpected HTTP status")
	ErrNoMetric  = errors.New("metric not found")
)

// DefaultSeries are the metrics recorded when the caller does not ask for a
// specific set. They track the memory behavior of the monitored service.
var DefaultSeries = []string{
	"go_gc_duration_seconds_sum",
	"go_gc_duration_seconds_count",
	"go_memstats_alloc_bytes",
	"go_memstats_sys_bytes",
	"go_memstats_mallocs_total",
	"go_memstats_frees_total",
}

// Select parses a Prometheus text exposition from r and returns the values
// of the named series, in the same order as names. Summary and histogram
// families resolve their _sum and _count series. Names with no matching
// series are skipped.
func Select(r io.Reader, names []string) (map[string]float64, error) {
	var parser expfmt.TextParser

	families, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return nil, fmt.Errorf("parsing metrics: %w", err)
	}

	values := make(map[string]float64, len(names))

	for _, name := range names {
		value, lookupErr := lookup(families, name)
		if errors.Is(lookupErr, ErrNoMetric) {
			continue
		}

		if lookupErr != nil {
			return nil, lookupErr
		}

		values[name] = value
	}

	return values, nil
}

func lookup(families map[string]*dto.MetricFamily, name string) (float64, error) {
	if family, ok := families[name]; ok {
		return scalarValue(family, name)
	}

	// go_gc_duration_seconds_sum lives inside the go_gc_duration_seconds
	// summary family, not under its own name.
	if base, ok := strings.CutSuffix(name, "_sum"); ok {
		if family, exists := families[base]; exists {
			return aggregateValue(family, name, true)
		}
	}

	if base, ok := strings.CutSuffix(name, "_count"); ok {
		if family, exists := families[base]; exists {
			return aggregateValue(family, name, false)
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrNoMetric, name)
}

func scalarValue(family *dto.MetricFamily, name string) (float64, error) {
	if len(family.Metric) == 0 {
		return 0, fmt.Errorf("%w: %s has no samples", ErrNoMetric, name)
	}

	metric := family.Metric[0]

	switch {
	case metric.Gauge != nil:
		return metric.Gauge.GetValue(), nil
	case metric.Counter != nil:
		return metric.Counter.GetValue(), nil
	case metric.Untyped != nil:
		return metric.Untyped.GetValue(), nil
	}

	return 0, fmt.Errorf("%w: %s is not a scalar metric", ErrNoMetric, name)
}

func aggregateValue(family *dto.MetricFamily, name string, wantSum bool) (float64, error) {
	if len(family.Metric) == 0 {
		return 0, fmt.Errorf("%w: %s has no samples", ErrNoMetric, name)
	}

	metric := family.Metric[0]

	switch {
	case metric.Summary != nil:
		if wantSum {
			return metric.Summary.GetSampleSum(), nil
		}

		return float64(metric.Summary.GetSampleCount()), nil

	case metric.Histogram != nil:
		if wantSum {
			return metric.Histogram.GetSampleSum(), nil
		}

		return float64(metric.Histogram.GetSampleCount()), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrNoMetric, name)
}

// Fetch retrieves the exposition from url and selects the named series.
func Fetch(ctx context.Context, client *http.Client, url string, names []string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrBadStatus, url, resp.Status)
	}

	return Select(resp.Body, names)
}
