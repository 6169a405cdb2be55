package monitoring

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics is a point-in-time snapshot of the request counters.
type Metrics struct {
	RequestCount   int64            `json:"request_count"`
	ErrorCount     int64            `json:"error_count"`
	ActiveRequests int64            `json:"active_requests"`
	TotalLatencyMS int64            `json:"total_latency_ms"`
	StatusCodes    map[int]int64    `json:"status_codes"`
	Endpoints      map[string]int64 `json:"endpoints"`
	Goroutines     int              `json:"goroutines"`
	UptimeSeconds  int64            `json:"uptime_seconds"`
}

type metricsState struct {
	mu             sync.Mutex
	requestCount   int64
	errorCount     int64
	activeRequests int64
	totalLatency   time.Duration
	statusCodes    map[int]int64
	endpoints      map[string]int64
	startedAt      time.Time
}

var global = newMetricsState()

func newMetricsState() *metricsState {
	return &metricsState{
		statusCodes: make(map[int]int64),
		endpoints:   make(map[string]int64),
		startedAt:   time.Now(),
	}
}

func resetGlobalMetrics() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.requestCount = 0
	global.errorCount = 0
	global.activeRequests = 0
	global.totalLatency = 0
	global.statusCodes = make(map[int]int64)
	global.endpoints = make(map[string]int64)
	global.startedAt = time.Now()
}

// MetricsMiddleware counts every request, its latency, status code, and
// route. Statuses >= 500 count as errors.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		global.mu.Lock()
		global.activeRequests++
		global.mu.Unlock()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		global.mu.Lock()
		global.activeRequests--
		global.requestCount++
		global.totalLatency += latency
		global.statusCodes[status]++
		global.endpoints[endpoint]++
		if status >= http.StatusInternalServerError {
			global.errorCount++
		}
		global.mu.Unlock()
	}
}

// GetMetrics returns a copy of the current counters.
func GetMetrics() Metrics {
	global.mu.Lock()
	defer global.mu.Unlock()

	statusCodes := make(map[int]int64, len(global.statusCodes))
	for k, v := range global.statusCodes {
		statusCodes[k] = v
	}
	endpoints := make(map[string]int64, len(global.endpoints))
	for k, v := range global.endpoints {
		endpoints[k] = v
	}

	return Metrics{
		RequestCount:   global.requestCount,
		ErrorCount:     global.errorCount,
		ActiveRequests: global.activeRequests,
		TotalLatencyMS: global.totalLatency.Milliseconds(),
		StatusCodes:    statusCodes,
		Endpoints:      endpoints,
		Goroutines:     runtime.NumGoroutine(),
		UptimeSeconds:  int64(time.Since(global.startedAt).Seconds()),
	}
}

// MetricsHandler serves the snapshot as JSON.
func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, GetMetrics())
	}
}
