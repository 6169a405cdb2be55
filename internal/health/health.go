package health

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Phase is the startup-phase enumeration reported by the readiness endpoint.
type Phase string

const (
	PhaseStarting        Phase = "STARTING"
	PhaseDBConnecting    Phase = "DB_CONNECTING"
	PhaseMigrating       Phase = "MIGRATING"
	PhaseCacheConnecting Phase = "CACHE_CONNECTING"
	PhaseReady           Phase = "READY"
	PhaseUnhealthy       Phase = "UNHEALTHY"
)

// Tracker records the server's startup phase. main advances it as
// initialization proceeds; the readiness handler reads it.
type Tracker struct {
	mu      sync.RWMutex
	phase   Phase
	since   time.Time
	started time.Time
}

func NewTracker() *Tracker {
	now := time.Now()
	return &Tracker{phase: PhaseStarting, since: now, started: now}
}

func (t *Tracker) SetPhase(p Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = p
	t.since = time.Now()
}

func (t *Tracker) Phase() Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase
}

// LivenessHandler is the basic liveness probe: the process is up.
func LivenessHandler(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// ReadinessHandler is the full readiness probe: startup phase plus a live
// database ping. 202 while starting, 200 when ready, 503 when unhealthy.
func ReadinessHandler(tracker *Tracker, db *gorm.DB, cacheHealth func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		phase := tracker.Phase()

		body := gin.H{
			"phase":     string(phase),
			"timestamp": time.Now().Format(time.RFC3339),
		}

		if phase != PhaseReady {
			if phase == PhaseUnhealthy {
				body["ready"] = false
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["ready"] = false
			c.JSON(http.StatusAccepted, body)
			return
		}

		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			body["ready"] = false
			body["phase"] = string(PhaseUnhealthy)
			body["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "up"

		if cacheHealth != nil {
			if err := cacheHealth(); err != nil {
				body["cache"] = "down"
			} else {
				body["cache"] = "up"
			}
		}

		body["ready"] = true
		c.JSON(http.StatusOK, body)
	}
}
