//go:build linux

package runner

import (
	"os"
	"syscall"
	"time"
)

// measureUsage extracts real CPU time and peak RSS from a finished
// child's rusage, replacing the constant-1 stubs the design otherwise
// reserves for platforms without this accounting.
func measureUsage(state *os.ProcessState) (timeMs, memKB int64) {
	if state == nil {
		return 1, 1
	}
	usage, ok := state.SysUsage().(*syscall.Rusage)
	if !ok {
		return 1, 1
	}
	utime := time.Duration(usage.Utime.Sec)*time.Second + time.Duration(usage.Utime.Usec)*time.Microsecond
	stime := time.Duration(usage.Stime.Sec)*time.Second + time.Duration(usage.Stime.Usec)*time.Microsecond
	return utime.Milliseconds() + stime.Milliseconds(), usage.Maxrss
}
