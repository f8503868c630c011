// Package datadog implements a Datadog backend for the internal/metrics
// facade.
//
// The backend buffers counters in memory, flushes them on a ticker (loads
// can run for a while on big catalogs), and flushes one final time on
// Close(). Only Flush touches the network; Count is a map increment under a
// mutex.
package datadog

import (
	"context"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// Options controls backend configuration.
type Options struct {
	// JobName becomes tag "job:<name>" on every metric. Defaults to "load".
	JobName string

	// Tags are extra Datadog tags (e.g. []string{"service:mediaload"}).
	Tags []string

	// FlushEvery controls the periodic submission interval. Defaults to 60s.
	FlushEvery time.Duration

	// Unexported test seams; production code never sets them.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker
	submitter metricsSubmitter
}

// metricsSubmitter is the minimal slice of the Datadog SDK we need. The SDK
// exposes a concrete *datadogV2.MetricsApi; depending on this interface
// instead lets unit tests submit to a fake.
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

// Backend implements metrics.Backend for Datadog.
type Backend struct {
	api metricsSubmitter
	ctx context.Context

	flushEvery time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	baseTags []string

	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker

	mu     sync.Mutex
	counts map[string]float64 // metric name + "|" + sorted tags -> value
}

// ParseTagsCSV parses a comma-separated tag list ("team:data,source:batch")
// into a slice, dropping empty entries.
func ParseTagsCSV(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func resolveEnvTag() string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return "env:" + v
	}
	if v := strings.TrimSpace(os.Getenv("DD_ENV")); v != "" {
		return "env:" + v
	}
	return "env:unknown"
}

// NewBackend constructs a Datadog backend using the official client and
// starts its periodic flush loop. Close() stops the loop and performs one
// final Flush; network errors surface there, never from Count.
func NewBackend(parent context.Context, opts Options) (*Backend, error) {
	job := opts.JobName
	if job == "" {
		job = "load"
	}

	flushEvery := opts.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 60 * time.Second
	}

	baseTags := make([]string, 0, 2+len(opts.Tags))
	baseTags = append(baseTags, resolveEnvTag(), "job:"+job)
	baseTags = append(baseTags, opts.Tags...)

	nowFn := opts.now
	if nowFn == nil {
		nowFn = time.Now
	}
	newTicker := opts.newTicker
	if newTicker == nil {
		newTicker = time.NewTicker
	}

	submitter := opts.submitter
	if submitter == nil {
		cfg := dd.NewConfiguration()
		client := dd.NewAPIClient(cfg)
		submitter = datadogV2.NewMetricsApi(client)
	}

	b := &Backend{
		api:        submitter,
		ctx:        dd.NewDefaultContext(parent),
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		baseTags:   baseTags,
		now:        nowFn,
		newTicker:  newTicker,
		counts:     make(map[string]float64),
	}

	go b.loop()
	return b, nil
}

func (b *Backend) loop() {
	defer close(b.doneCh)

	t := b.newTicker(b.flushEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			_ = b.Flush()
		case <-b.stopCh:
			return
		}
	}
}

// Close stops the flush loop and performs one final Flush. Call once.
func (b *Backend) Close() error {
	close(b.stopCh)
	<-b.doneCh
	return b.Flush()
}

// Count implements metrics.Backend.
func (b *Backend) Count(name string, delta float64, tags []string) {
	if delta <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[counterKey(name, tags)] += delta
}

func counterKey(name string, tags []string) string {
	if len(tags) == 0 {
		return name
	}
	cp := append([]string(nil), tags...)
	sort.Strings(cp)
	return name + "|" + strings.Join(cp, ",")
}

func splitCounterKey(key string) (name string, tags []string) {
	name, rest, ok := strings.Cut(key, "|")
	if !ok || rest == "" {
		return name, nil
	}
	return name, strings.Split(rest, ",")
}

// Flush submits buffered counters to Datadog and resets the buffer. The
// buffer is reset even when submission fails; lost points are preferable to
// unbounded growth on a broken network.
func (b *Backend) Flush() error {
	b.mu.Lock()
	snap := b.counts
	b.counts = make(map[string]float64)
	b.mu.Unlock()

	if len(snap) == 0 {
		return nil
	}

	series := b.buildSeries(snap, b.now().Unix())
	payload := datadogV2.MetricPayload{Series: series}

	_, _, err := b.api.SubmitMetrics(b.ctx, payload, *datadogV2.NewSubmitMetricsOptionalParameters())
	return err
}

// buildSeries is pure (no locks, clocks, or network), which keeps the
// naming/tagging contract unit-testable.
func (b *Backend) buildSeries(snap map[string]float64, nowUnix int64) []datadogV2.MetricSeries {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]datadogV2.MetricSeries, 0, len(keys))
	for _, k := range keys {
		v := snap[k]
		if v == 0 {
			continue
		}
		name, tags := splitCounterKey(k)
		allTags := append(append([]string(nil), b.baseTags...), tags...)

		series = append(series, datadogV2.MetricSeries{
			Metric: name,
			Type:   datadogV2.METRICINTAKETYPE_COUNT.Ptr(),
			Points: []datadogV2.MetricPoint{
				{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(v)},
			},
			Tags: allTags,
		})
	}
	return series
}
