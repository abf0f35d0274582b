package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadsStartedTotal     atomic.Uint64
	uploadsCompletedTotal   atomic.Uint64
	recordsDistributedTotal atomic.Uint64

	rejections = newLabeledCounter()

	uploadDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncUploadStarted increments the started counter.
func IncUploadStarted() {
	uploadsStartedTotal.Add(1)
}

// IncUploadCompleted records a successful distribution of n records.
func IncUploadCompleted(n int) {
	uploadsCompletedTotal.Add(1)
	if n > 0 {
		recordsDistributedTotal.Add(uint64(n))
	}
}

// IncUploadRejected counts a failed upload by error kind.
func IncUploadRejected(kind string) {
	if kind == "" {
		kind = "internal"
	}
	rejections.Inc(kind)
}

// ObserveUploadDurationMs records an upload duration in milliseconds.
func ObserveUploadDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	uploadDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "list_uploads_started_total", "Total list uploads started", uploadsStartedTotal.Load())
	writeCounter(&buf, "list_uploads_completed_total", "Total list uploads distributed", uploadsCompletedTotal.Load())
	writeCounter(&buf, "list_records_distributed_total", "Total records assigned to agents", recordsDistributedTotal.Load())
	writeLabeledCounter(&buf, "list_uploads_rejected_total", "Total list uploads rejected by kind", "kind", rejections.Snapshot())
	writeHistogram(&buf, "list_upload_duration_ms", "List upload duration in milliseconds", uploadDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	l.values[label]++
	l.mu.Unlock()
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound covers it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
