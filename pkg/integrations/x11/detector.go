package x11

import (
	"bytes"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// ICCCM WM_STATE values.
const iconicState = 3

// Enough 32-bit units to hold MaxTextUnits bytes plus one more, so a cut
// can be told apart from an exact fit.
const textLength = (window.MaxTextUnits + 4) / 4

const maxClients = 1 << 16

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"WM_NAME",
	"WM_CLASS",
	"WM_CHANGE_STATE",
	"UTF8_STRING",
}

// Detector implements window.Backend over a single X server connection.
// xgb connections are safe for concurrent use.
type Detector struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewDetector connects to the display named by $DISPLAY.
func NewDetector() (*Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	d := &Detector{
		conn:  conn,
		root:  setup.DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom, len(atomNames)),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		d.atoms[name] = reply.Atom
	}

	return d, nil
}

func (d *Detector) IsAvailable() bool {
	return d.conn != nil
}

func (d *Detector) GetDisplayServer() string {
	return "x11"
}

func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}

func (d *Detector) getProperty(w xproto.Window, atom, atomType xproto.Atom, length uint32) (*xproto.GetPropertyReply, error) {
	return xproto.GetProperty(d.conn, false, w, atom, atomType, 0, length).Reply()
}

// Enumerate lists managed client windows in stacking-list order. Windows
// that are unmapped, transient for another window, or untitled are left out.
func (d *Detector) Enumerate() (window.Snapshot, error) {
	ids, err := d.clientList()
	if err != nil {
		return window.Snapshot{}, err
	}

	snap := window.Snapshot{Records: make([]window.Record, 0, len(ids))}
	for _, id := range ids {
		rec, ok := d.describe(id)
		if ok {
			snap.Records = append(snap.Records, rec)
		}
	}
	return snap, nil
}

// clientList prefers the EWMH client list and falls back to the root
// window's children when no compliant window manager is running.
func (d *Detector) clientList() ([]xproto.Window, error) {
	reply, err := d.getProperty(d.root, d.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, maxClients)
	if err == nil && reply.Format == 32 && reply.ValueLen > 0 {
		return decodeWindows(reply.Value), nil
	}

	tree, err := xproto.QueryTree(d.conn, d.root).Reply()
	if err != nil {
		return nil, &window.EnumerationError{Op: "query tree", Err: err}
	}
	return tree.Children, nil
}

// describe reads one window. Windows that vanish mid-pass are skipped.
func (d *Detector) describe(id xproto.Window) (window.Record, bool) {
	attrs, err := xproto.GetWindowAttributes(d.conn, id).Reply()
	if err != nil || attrs.MapState != xproto.MapStateViewable {
		return window.Record{}, false
	}

	if owner, err := d.getProperty(id, xproto.AtomWmTransientFor, xproto.AtomWindow, 1); err == nil && len(owner.Value) >= 4 && xgb.Get32(owner.Value) != 0 {
		return window.Record{}, false
	}

	title, truncated := d.windowName(id)
	if title == "" {
		return window.Record{}, false
	}

	return window.Record{
		Handle:    window.Handle(id),
		Title:     title,
		ClassName: d.windowClass(id),
		PID:       d.windowPID(id),
		Truncated: truncated,
	}, true
}

// windowName prefers the EWMH title. The ICCCM WM_NAME fallback is read
// with any type since clients set it as STRING or UTF8_STRING.
func (d *Detector) windowName(id xproto.Window) (string, bool) {
	reply, err := d.getProperty(id, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], textLength)
	if err != nil || len(reply.Value) == 0 {
		reply, err = d.getProperty(id, d.atoms["WM_NAME"], xproto.GetPropertyTypeAny, textLength)
	}
	if err != nil || len(reply.Value) == 0 {
		return "", false
	}

	title, cut := d.decodeText(reply.Type)(reply.Value, window.MaxTextUnits)
	return title, cut || reply.BytesAfter > 0
}

func (d *Detector) windowClass(id xproto.Window) string {
	reply, err := d.getProperty(id, d.atoms["WM_CLASS"], xproto.GetPropertyTypeAny, textLength)
	if err != nil {
		return ""
	}
	return parseWMClass(reply.Value, d.decodeText(reply.Type))
}

type textDecoder func(raw []byte, limit int) (string, bool)

// decodeText picks the decoder for a text property type. STRING is
// ISO-8859-1; COMPOUND_TEXT is treated the same since its initial state is
// Latin-1.
func (d *Detector) decodeText(typ xproto.Atom) textDecoder {
	if typ == d.atoms["UTF8_STRING"] {
		return window.DecodeUTF8
	}
	return window.DecodeLatin1
}

func (d *Detector) windowPID(id xproto.Window) int32 {
	reply, err := d.getProperty(id, d.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(reply.Value) < 4 {
		return 0
	}
	return int32(xgb.Get32(reply.Value))
}

// FocusedWindow returns the active client window, or 0 when nothing has
// focus.
func (d *Detector) FocusedWindow() (window.Handle, error) {
	reply, err := d.getProperty(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err == nil && len(reply.Value) >= 4 {
		if id := xgb.Get32(reply.Value); id != 0 {
			return window.Handle(id), nil
		}
	}

	focus, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get input focus")
	}
	if focus.Focus == 0 || focus.Focus == d.root || focus.Focus == xproto.InputFocusPointerRoot {
		return 0, nil
	}
	return window.Handle(d.topLevelParent(focus.Focus)), nil
}

func (d *Detector) topLevelParent(w xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(d.conn, w).Reply()
		if err != nil || reply.Parent == d.root || reply.Parent == 0 {
			return w
		}
		w = reply.Parent
	}
}

// Minimize asks the window manager to iconify h with an ICCCM
// WM_CHANGE_STATE client message.
func (d *Detector) Minimize(h window.Handle) error {
	id := xproto.Window(h)

	if _, err := xproto.GetWindowAttributes(d.conn, id).Reply(); err != nil {
		return &window.ActuationError{Handle: h, Err: errors.Wrap(err, "window no longer exists")}
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: id,
		Type:   d.atoms["WM_CHANGE_STATE"],
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)

	if err := xproto.SendEventChecked(d.conn, false, d.root, mask, string(ev.Bytes())).Check(); err != nil {
		return &window.ActuationError{Handle: h, Err: errors.Wrap(err, "failed to send WM_CHANGE_STATE")}
	}
	return nil
}

// parseWMClass returns the class half of a WM_CLASS value
// ("instance\0class\0"), or the instance when the class is empty.
func parseWMClass(raw []byte, decode textDecoder) string {
	parts := bytes.Split(bytes.TrimRight(raw, "\x00"), []byte{0})

	var instance, class string
	if len(parts) >= 1 {
		instance, _ = decode(parts[0], window.MaxTextUnits)
	}
	if len(parts) >= 2 {
		class, _ = decode(parts[1], window.MaxTextUnits)
	}

	if class != "" {
		return class
	}
	return instance
}

func decodeWindows(raw []byte) []xproto.Window {
	out := make([]xproto.Window, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		out = append(out, xproto.Window(xgb.Get32(raw[i:])))
	}
	return out
}
