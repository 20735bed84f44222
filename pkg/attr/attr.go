// Package attr exposes a display session as named attributes.
//
// The four attributes (text, icons, mode, text_style) accept raw writes and
// render their current value on read, the way the driver's attribute files
// do. A Dispatcher serializes every access to its session.
package attr

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Attribute names.
const (
	Text      = "text"
	Icons     = "icons"
	Mode      = "mode"
	TextStyle = "text_style"
)

// ErrUnknownAttribute is returned for names other than the four attributes.
var ErrUnknownAttribute = errors.New("unknown attribute")

type attribute struct {
	show  func(s *display.Session) string
	store func(s *display.Session, value []byte) error
}

var attributes = map[string]attribute{
	Text: {
		show:  func(s *display.Session) string { return string(s.Text()) },
		store: func(s *display.Session, v []byte) error { return s.WriteText(v) },
	},
	Icons: {
		show:  func(s *display.Session) string { return s.Icons() },
		store: func(s *display.Session, v []byte) error { return s.WriteIcons(string(v)) },
	},
	Mode: {
		show:  func(s *display.Session) string { return s.Mode() + "\n" },
		store: func(s *display.Session, v []byte) error { return s.WriteMode(string(v)) },
	},
	TextStyle: {
		show:  func(s *display.Session) string { return s.TextStyle() + "\n" },
		store: func(s *display.Session, v []byte) error { return s.WriteTextStyle(string(v)) },
	},
}

// Dispatcher routes attribute reads and writes to one session.
type Dispatcher struct {
	mu      sync.Mutex
	session *display.Session
}

// New creates a dispatcher for s. The dispatcher must be the only user of s.
func New(s *display.Session) *Dispatcher {
	return &Dispatcher{session: s}
}

// Store writes value to the named attribute.
func (d *Dispatcher) Store(name string, value []byte) error {
	a, ok := attributes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := a.store(d.session, value); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	vfd.LogDebug(vfd.ComponentSession, "attribute stored", "name", name, "len", len(value))
	return nil
}

// Show returns the rendered value of the named attribute, newline
// terminated.
func (d *Dispatcher) Show(name string) (string, error) {
	a, ok := attributes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return a.show(d.session), nil
}

// Do runs fn with exclusive access to the session.
func (d *Dispatcher) Do(fn func(s *display.Session) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.session)
}

// Names lists the attribute names in sorted order.
func Names() []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
