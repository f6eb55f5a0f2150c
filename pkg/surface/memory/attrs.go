package memory

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/surface"
)

// ApplyAttributes implements surface.Surface.
//
//   - on<Event> props holding a func(Event) or func() are listeners.
//   - "style" holds a map[string]string (or map[string]any) of inline styles.
//   - "className" is stored as the class attribute.
//   - true sets an empty attribute; false and nil remove it, listeners
//     included.
//   - any other value is formatted with fmt.Sprint.
func (s *Surface) ApplyAttributes(h surface.Handle, props, prev surface.Props) {
	n := node(h)
	s.stats.AttrUpdates++

	for name, old := range prev {
		if name == "children" {
			continue
		}
		if _, ok := props[name]; ok {
			continue
		}
		switch {
		case isListener(name, old):
			delete(n.Listeners, eventName(name))
		case name == "style":
			n.Style = nil
		default:
			delete(n.Attrs, attrName(name))
		}
	}

	for name, value := range props {
		if name == "children" {
			continue
		}
		if isListener(name, value) {
			setListener(n, eventName(name), value)
			continue
		}
		if isListener(name, prev[name]) {
			delete(n.Listeners, eventName(name))
		}
		if name == "style" {
			n.Style = styleMap(value)
			continue
		}
		switch v := value.(type) {
		case nil:
			delete(n.Attrs, attrName(name))
		case bool:
			if v {
				setAttr(n, attrName(name), "")
			} else {
				delete(n.Attrs, attrName(name))
			}
		default:
			setAttr(n, attrName(name), fmt.Sprint(v))
		}
	}
}

func isListener(name string, value any) bool {
	if len(name) <= 2 || !strings.HasPrefix(name, "on") {
		return false
	}
	switch value.(type) {
	case func(Event), func():
		return true
	}
	return false
}

func eventName(prop string) string {
	return strings.ToLower(prop[2:])
}

func attrName(prop string) string {
	if prop == "className" {
		return "class"
	}
	return prop
}

func setAttr(n *Node, name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

func setListener(n *Node, event string, value any) {
	if n.Listeners == nil {
		n.Listeners = make(map[string]func(Event))
	}
	switch fn := value.(type) {
	case func(Event):
		n.Listeners[event] = fn
	case func():
		n.Listeners[event] = func(Event) { fn() }
	}
}

func styleMap(value any) map[string]string {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, s := range v {
			if s == nil {
				continue
			}
			out[k] = fmt.Sprint(s)
		}
		return out
	default:
		return nil
	}
}
