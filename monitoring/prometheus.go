package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledgerscan/logx"
)

// BlockSkipReason labels why a height inside a scanned range produced no
// records.
type BlockSkipReason string

var (
	BlockSkipMissing BlockSkipReason = "missing"
	BlockSkipCorrupt BlockSkipReason = "corrupt"
)

type scanPromMetrics struct {
	serviceUpUnixSeconds prometheus.Gauge
	scansTotal           prometheus.Counter
	scanDuration         prometheus.Histogram
	blocksScanned        prometheus.Counter
	blocksSkipped        *prometheus.CounterVec
	transfersReturned    prometheus.Counter
	latestHeight         prometheus.Gauge
	panicCount           prometheus.Counter
}

func newScanPromMetrics() *scanPromMetrics {
	return &scanPromMetrics{
		serviceUpUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerscan_up_timestamp_unix_seconds",
				Help: "Unix timestamp when the service started",
			},
		),
		scansTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerscan_scans_total",
				Help: "The total number of transfer range scans served",
			},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "ledgerscan_scan_duration_seconds",
				Help: "Duration in seconds of a transfer range scan",
			},
		),
		blocksScanned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerscan_blocks_scanned_total",
				Help: "The total number of blocks read during scans",
			},
		),
		blocksSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerscan_blocks_skipped_total",
				Help: "The total number of heights skipped during scans",
			},
			[]string{"reason"},
		),
		transfersReturned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerscan_transfers_returned_total",
				Help: "The total number of transfer records returned to callers",
			},
		),
		latestHeight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerscan_latest_height",
				Help: "The latest block height known to the chain store",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgerscan_panic_count",
				Help: "The total number of recovered panics in background goroutines",
			},
		),
	}
}

var scanMetrics *scanPromMetrics

// InitMetrics initializes metrics but does not expose them yet.
func InitMetrics() {
	scanMetrics = newScanPromMetrics()
	scanMetrics.serviceUpUnixSeconds.SetToCurrentTime()
}

// RegisterMetrics exposes the /metrics endpoint on the given mux.
func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func RecordScan(duration time.Duration) {
	if scanMetrics == nil {
		return
	}
	scanMetrics.scansTotal.Inc()
	scanMetrics.scanDuration.Observe(duration.Seconds())
}

func IncreaseBlocksScanned() {
	if scanMetrics == nil {
		return
	}
	scanMetrics.blocksScanned.Inc()
}

func IncreaseBlocksSkipped(reason BlockSkipReason) {
	if scanMetrics == nil {
		return
	}
	scanMetrics.blocksSkipped.WithLabelValues(string(reason)).Inc()
}

func AddTransfersReturned(n int) {
	if scanMetrics == nil {
		return
	}
	scanMetrics.transfersReturned.Add(float64(n))
}

func SetLatestHeight(height uint64) {
	if scanMetrics == nil {
		return
	}
	scanMetrics.latestHeight.Set(float64(height))
}

func IncreasePanicCount() {
	if scanMetrics == nil {
		return
	}
	scanMetrics.panicCount.Inc()
}
