package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile guards against two simulation daemons running against the
// same save database at once.
type PIDFile struct {
	path string
}

// New returns a PIDFile at the given path; nothing is written until
// Acquire.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire claims the PID file, replacing a stale one left by a dead
// process. It fails if a live daemon already holds it.
func (p *PIDFile) Acquire() error {
	if _, err := os.Stat(p.path); err == nil {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return fmt.Errorf("failed to read existing PID file: %w", err)
		}

		pidStr := strings.TrimSpace(string(data))
		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			// Garbage in the file; reclaim it
			_ = os.Remove(p.path)
		} else {
			if isProcessRunning(pid) {
				return fmt.Errorf("daemon is already running (PID %d)", pid)
			}
			_ = os.Remove(p.path)
		}
	}

	pid := os.Getpid()
	pidData := fmt.Sprintf("%d\n", pid)

	if err := os.WriteFile(p.path, []byte(pidData), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// Release removes the PID file; a missing file is not an error.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func isProcessRunning(pid int) bool {
	// FindProcess always succeeds on Unix; signal 0 performs the
	// actual existence check without delivering anything.
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}

	if err == syscall.ESRCH {
		return false
	}
	if err == syscall.EPERM {
		// Alive but owned by someone else
		return true
	}

	return false
}
