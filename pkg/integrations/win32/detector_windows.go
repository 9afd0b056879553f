//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

const swMinimize = 6

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetParent      = user32.NewProc("GetParent")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procShowWindow     = user32.NewProc("ShowWindow")
)

// The runtime only has room for a limited number of callbacks, so there is
// exactly one and EnumWindows calls are serialized around it.
var (
	enumMu      sync.Mutex
	enumHandles []windows.HWND
	enumProc    = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

// Detector implements window.Backend with user32.
type Detector struct{}

func NewDetector() (*Detector, error) {
	if err := user32.Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load user32.dll")
	}
	return &Detector{}, nil
}

func (d *Detector) IsAvailable() bool {
	return user32.Load() == nil
}

func (d *Detector) GetDisplayServer() string {
	return "win32"
}

func (d *Detector) Close() error {
	return nil
}

// Enumerate lists visible, parentless, titled top-level windows in
// z-order.
func (d *Detector) Enumerate() (window.Snapshot, error) {
	handles, err := topLevelWindows()
	if err != nil {
		return window.Snapshot{}, &window.EnumerationError{Op: "EnumWindows", Err: err}
	}

	snap := window.Snapshot{Records: make([]window.Record, 0, len(handles))}
	for _, hwnd := range handles {
		if !windows.IsWindowVisible(hwnd) {
			continue
		}
		if parent, _, _ := procGetParent.Call(uintptr(hwnd)); parent != 0 {
			continue
		}

		title, truncated := windowText(hwnd)
		if title == "" {
			continue
		}

		var pid uint32
		_, _ = windows.GetWindowThreadProcessId(hwnd, &pid)

		snap.Records = append(snap.Records, window.Record{
			Handle:    window.Handle(hwnd),
			Title:     title,
			ClassName: className(hwnd),
			PID:       int32(pid),
			Truncated: truncated,
		})
	}
	return snap, nil
}

func topLevelWindows() ([]windows.HWND, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	err := windows.EnumWindows(enumProc, unsafe.Pointer(nil))
	handles := enumHandles
	enumHandles = nil
	return handles, err
}

func windowText(hwnd windows.HWND) (string, bool) {
	buf := make([]uint16, window.TextBufferUnits)
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return window.DecodeUTF16(buf, int(n), window.MaxTextUnits)
}

func className(hwnd windows.HWND) string {
	buf := make([]uint16, window.TextBufferUnits)
	n, err := windows.GetClassName(hwnd, &buf[0], int32(len(buf)))
	if err != nil {
		return ""
	}
	name, _ := window.DecodeUTF16(buf, int(n), window.MaxTextUnits)
	return name
}

func (d *Detector) FocusedWindow() (window.Handle, error) {
	return window.Handle(windows.GetForegroundWindow()), nil
}

// Minimize sends SW_MINIMIZE. ShowWindow reports the previous visibility,
// not success, so only a vanished window is an error.
func (d *Detector) Minimize(h window.Handle) error {
	hwnd := windows.HWND(h)
	if !windows.IsWindow(hwnd) {
		return &window.ActuationError{Handle: h, Err: errors.New("window no longer exists")}
	}
	procShowWindow.Call(uintptr(hwnd), swMinimize)
	return nil
}
