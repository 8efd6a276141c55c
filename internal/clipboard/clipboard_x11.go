//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the viewer owns the CLIPBOARD selection itself through a
// hidden X11 window and answers conversion requests until another client
// takes ownership.

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage publishes img as PNG data.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return owner.publish(content{image: data})
}

// WriteText publishes UTF-8 text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(content{text: []byte(text)})
}

type content struct {
	text  []byte
	image []byte
}

type atoms struct {
	clipboard, targets, utf8, plain, png xproto.Atom
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu      sync.RWMutex
	current content
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create selection window: %w", err)
	}
	o := &selectionOwner{conn: conn, window: window}
	names := map[string]*xproto.Atom{
		"CLIPBOARD":                &o.atoms.clipboard,
		"TARGETS":                  &o.atoms.targets,
		"UTF8_STRING":              &o.atoms.utf8,
		"text/plain;charset=utf-8": &o.atoms.plain,
		"image/png":                &o.atoms.png,
	}
	for name, dst := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) publish(c content) error {
	o.mu.Lock()
	o.current = c
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.current = content{}
			o.mu.Unlock()
		}
	}
}

// answer converts the held content to the requested target, or refuses
// with a None property.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	o.mu.RLock()
	c := o.current
	o.mu.RUnlock()

	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	typ, format, data := o.convert(c, e.Target)
	if data == nil {
		prop = xproto.AtomNone
	} else {
		n := uint32(len(data))
		if format == 32 {
			n /= 4
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, typ, format, n, data)
	}
	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

func (o *selectionOwner) convert(c content, target xproto.Atom) (xproto.Atom, byte, []byte) {
	switch target {
	case o.atoms.targets:
		list := []xproto.Atom{o.atoms.targets}
		if len(c.text) > 0 {
			list = append(list, o.atoms.utf8, xproto.AtomString, o.atoms.plain)
		}
		if len(c.image) > 0 {
			list = append(list, o.atoms.png)
		}
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		return xproto.AtomAtom, 32, buf
	case o.atoms.utf8, o.atoms.plain, xproto.AtomString:
		if len(c.text) > 0 {
			return o.atoms.utf8, 8, c.text
		}
	case o.atoms.png:
		if len(c.image) > 0 {
			return o.atoms.png, 8, c.image
		}
	}
	return xproto.AtomNone, 0, nil
}
