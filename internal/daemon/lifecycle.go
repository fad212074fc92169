package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/breakminder/breakminder/internal/config"
	"github.com/breakminder/breakminder/internal/logging"
)

// Status describes the daemon process as seen from outside.
type Status struct {
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Addr    string `json:"addr,omitempty"`
}

// GetStatus inspects the PID file and reports the daemon status.
func GetStatus() *Status {
	status := &Status{}
	pid := NewPIDFile().GetRunningPID()
	if pid > 0 {
		status.Running = true
		status.PID = pid
		status.Addr = config.Global.Bus.ListenAddr
	}
	return status
}

// StartBackground launches "breakminder daemon run" as a detached process
// and waits briefly to confirm it came up.
func StartBackground() error {
	pidFile := NewPIDFile()
	if pidFile.IsRunning() {
		return ErrAlreadyRunning
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot locate executable: %w", err)
	}

	cmd := exec.Command(exe, "daemon", "run")
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	// Detach; the child writes its own PID file.
	if err := cmd.Process.Release(); err != nil {
		logging.DebugLog("process release failed", logging.KeyError, err)
	}

	time.Sleep(config.Global.Daemon.StartupWait)
	if !pidFile.IsRunning() {
		return fmt.Errorf("daemon did not start; run 'breakminder daemon run' to see why")
	}
	return nil
}

// StopBackground signals the running daemon to shut down, escalating to
// SIGKILL after the configured timeout.
func StopBackground() error {
	pidFile := NewPIDFile()
	pid := pidFile.GetRunningPID()
	if pid == 0 {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal daemon: %w", err)
	}

	deadline := time.Now().Add(config.Global.Daemon.KillTimeout)
	for time.Now().Before(deadline) {
		if !IsProcessRunning(pid) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	logging.Warn("daemon did not exit in time, killing", "pid", pid)
	if err := process.Kill(); err != nil {
		return fmt.Errorf("failed to kill daemon: %w", err)
	}
	return pidFile.Remove()
}
