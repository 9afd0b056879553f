package process

import (
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// Lookup resolves PIDs to executable names. Names are cached per PID until
// Retain is called without that PID.
type Lookup struct {
	mu    sync.Mutex
	names map[int32]string
	query func(pid int32) (string, error)
}

func NewLookup() *Lookup {
	return &Lookup{
		names: make(map[int32]string),
		query: queryName,
	}
}

func queryName(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return p.Name()
}

// Name returns the executable name of pid, or "" when it cannot be read
// (the process exited, or belongs to another user on a locked-down system).
func (l *Lookup) Name(pid int32) string {
	if pid <= 0 {
		return ""
	}

	l.mu.Lock()
	name, ok := l.names[pid]
	l.mu.Unlock()
	if ok {
		return name
	}

	name, err := l.query(pid)
	if err != nil {
		return ""
	}

	l.mu.Lock()
	l.names[pid] = name
	l.mu.Unlock()
	return name
}

// Retain drops cached names for every PID not in live, so a PID that exits
// and is later reused gets looked up again.
func (l *Lookup) Retain(live []int32) {
	keep := make(map[int32]struct{}, len(live))
	for _, pid := range live {
		keep[pid] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for pid := range l.names {
		if _, ok := keep[pid]; !ok {
			delete(l.names, pid)
		}
	}
}
