package sandbox

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ModeNormal      = "normal"
	ModeServerError = "server_error"
	ModeFailWrites  = "fail_writes"
	ModeFailReads   = "fail_reads"
)

// Faults switches the sandbox into failure modes for resilience tests.
type Faults struct {
	mu       sync.RWMutex
	mode     string
	injected atomic.Int64
	log      *zap.Logger
}

func NewFaults(log *zap.Logger) *Faults {
	if log == nil {
		log = zap.NewNop()
	}
	return &Faults{mode: ModeNormal, log: log}
}

func (f *Faults) Mode() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// Set changes the mode; unknown modes are rejected.
func (f *Faults) Set(mode string) bool {
	switch mode {
	case ModeNormal, ModeServerError, ModeFailWrites, ModeFailReads:
	default:
		return false
	}
	f.mu.Lock()
	f.mode = mode
	f.mu.Unlock()
	f.injected.Store(0)
	f.log.Info("fault.mode", zap.String("mode", mode))
	return true
}

func (f *Faults) Reset() { f.Set(ModeNormal) }

func (f *Faults) Injected() int64 { return f.injected.Load() }

// Middleware fails requests according to the current mode. Admin and
// health endpoints are never affected.
func (f *Faults) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/admin") || p == "/health" {
			c.Next()
			return
		}
		mode := f.Mode()
		write := c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead
		if mode == ModeServerError || (mode == ModeFailWrites && write) || (mode == ModeFailReads && !write) {
			f.injected.Add(1)
			f.log.Warn("fault.injected", zap.String("mode", mode), zap.String("path", p))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"data":       nil,
				"errors":     []string{"Internal server error (simulated)"},
				"statusCode": http.StatusInternalServerError,
			})
			return
		}
		c.Next()
	}
}
