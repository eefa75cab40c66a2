package perf

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// enabled is read from every Log call and cleared if the log can't be opened.
	enabled  atomic.Bool
	logFile  *os.File
	logMutex sync.Mutex
	initOnce sync.Once

	logPath = "/tmp/tabdeck-perf.log"
)

func init() {
	// Set TABDECK_PERF=1 to enable the timing log
	enabled.Store(os.Getenv("TABDECK_PERF") == "1")
}

func openLog() {
	initOnce.Do(func() {
		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			enabled.Store(false)
		}
	})
}

// Timer tracks elapsed time for a named operation
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing an operation
func Start(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop ends timing and logs the result
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Log("%s: %v", t.name, elapsed)
	return elapsed
}

// Track is a convenience function that times a function call
func Track(name string, fn func()) time.Duration {
	t := Start(name)
	fn()
	return t.Stop()
}

// Log writes a custom message to the perf log
func Log(format string, args ...interface{}) {
	if !enabled.Load() {
		return
	}
	openLog()
	if logFile == nil {
		return
	}
	logMutex.Lock()
	fmt.Fprintf(logFile, "%s: ", time.Now().Format("15:04:05.000"))
	fmt.Fprintf(logFile, format+"\n", args...)
	logMutex.Unlock()
}

// IsEnabled returns whether performance logging is enabled
func IsEnabled() bool {
	return enabled.Load()
}
