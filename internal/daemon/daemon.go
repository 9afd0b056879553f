package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrNotRunning is returned by Stop when no live monitor owns the PID file.
var ErrNotRunning = errors.New("monitor is not running or PID file is stale")

// Linux reports at most this many bytes of a process name.
const commLen = 15

type Daemon struct {
	pidFile string
	name    string // executable the PID must belong to
}

func New(pidFile string) *Daemon {
	return &Daemon{pidFile: pidFile, name: executableName()}
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Base(exe)
}

func (d *Daemon) PIDFile() string {
	return d.pidFile
}

func (d *Daemon) WritePID() error {
	if err := os.MkdirAll(filepath.Dir(d.pidFile), 0o700); err != nil {
		return errors.Wrap(err, "failed to create PID file directory")
	}
	pid := os.Getpid()
	if err := os.WriteFile(d.pidFile, fmt.Appendf([]byte{}, "%d", pid), 0o644); err != nil {
		return errors.Wrap(err, "failed to write PID file")
	}
	return nil
}

// ReadPID returns 0 when there is no PID file.
func (d *Daemon) ReadPID() (int, error) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read PID file")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errors.Errorf("invalid PID in file: %q", strings.TrimSpace(string(data)))
	}

	return pid, nil
}

func (d *Daemon) RemovePID() error {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove PID file")
	}
	return nil
}

// IsRunning reports whether the PID file names a live process running this
// executable. A stale file, including one whose PID was reused by another
// program, is removed.
func (d *Daemon) IsRunning() (bool, int, error) {
	pid, err := d.ReadPID()
	if err != nil {
		return false, 0, err
	}

	if pid == 0 {
		return false, 0, nil
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil || !exists || !d.owns(int32(pid)) {
		_ = d.RemovePID()
		return false, 0, nil
	}

	return true, pid, nil
}

// Stop asks the running monitor to terminate (SIGTERM on Unix).
func (d *Daemon) Stop() error {
	running, pid, err := d.IsRunning()
	if err != nil {
		return errors.Wrap(err, "error checking monitor status")
	}

	if !running {
		return ErrNotRunning
	}

	if pid == os.Getpid() {
		return errors.New("refusing to stop the current process")
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		_ = d.RemovePID()
		return errors.Wrap(err, "monitor process already terminated")
	}

	if err := proc.Terminate(); err != nil {
		return errors.Wrap(err, "failed to terminate monitor")
	}

	return d.RemovePID()
}

// owns reports whether pid runs the same executable as this process. A
// process whose name cannot be read is not ours.
func (d *Daemon) owns(pid int32) bool {
	if d.name == "" {
		return true
	}
	proc, err := process.NewProcess(pid)
	if err != nil {
		return false
	}
	name, err := proc.Name()
	if err != nil {
		return false
	}
	return sameProgram(name, d.name)
}

func sameProgram(procName, exeName string) bool {
	if procName == exeName {
		return true
	}
	return len(procName) == commLen && strings.HasPrefix(exeName, procName)
}
