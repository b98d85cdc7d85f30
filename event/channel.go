// Package event implements the in-process event channel shared by the
// features of one editor instance.
//
// Listeners receive the arguments of Emit after they pass through the hook
// pipeline registered for the same event name. A Channel is not safe for
// concurrent use; it is driven from the UI goroutine.
package event

// Listener receives the (possibly hook-transformed) arguments of an event.
type Listener func(args ...any)

// Hook transforms an event's argument list before listeners see it. The
// returned slice becomes the input of the next hook.
type Hook func(args ...any) []any

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

// HookID identifies a registered hook for removal.
type HookID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

type hookEntry struct {
	id HookID
	fn Hook
}

// Channel maps event names to ordered listeners and hooks.
type Channel struct {
	handlers map[string][]listenerEntry
	hooks    map[string][]hookEntry
	nextID   uint64
}

func New() *Channel {
	return &Channel{
		handlers: make(map[string][]listenerEntry),
		hooks:    make(map[string][]hookEntry),
	}
}

// AddListener appends fn to the listeners of name.
func (c *Channel) AddListener(name string, fn Listener) ListenerID {
	c.nextID++
	id := ListenerID(c.nextID)
	c.handlers[name] = append(c.handlers[name], listenerEntry{id: id, fn: fn})
	return id
}

// RemoveListener removes the listener id from name. Unknown ids and names
// are ignored.
func (c *Channel) RemoveListener(name string, id ListenerID) {
	entries := c.handlers[name]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		next := make([]listenerEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		if len(next) == 0 {
			delete(c.handlers, name)
		} else {
			c.handlers[name] = next
		}
		return
	}
}

// RemoveAllListeners clears the listeners of the given events, or of every
// event when called without arguments. Hooks are kept.
func (c *Channel) RemoveAllListeners(names ...string) {
	if len(names) == 0 {
		c.handlers = make(map[string][]listenerEntry)
		return
	}
	for _, name := range names {
		delete(c.handlers, name)
	}
}

// HookListener appends fn to the hook pipeline of name.
func (c *Channel) HookListener(name string, fn Hook) HookID {
	c.nextID++
	id := HookID(c.nextID)
	c.hooks[name] = append(c.hooks[name], hookEntry{id: id, fn: fn})
	return id
}

// RemoveHookListener removes the hook id from name. Unknown ids and names are
// ignored.
func (c *Channel) RemoveHookListener(name string, id HookID) {
	entries := c.hooks[name]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		next := make([]hookEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		if len(next) == 0 {
			delete(c.hooks, name)
		} else {
			c.hooks[name] = next
		}
		return
	}
}

// Emit runs the hooks of name in registration order and delivers the final
// argument list to every listener in registration order. Without listeners
// Emit does nothing, hooks included.
//
// Listener and hook lists are captured when Emit starts; registrations made
// by a listener take effect on the next Emit.
func (c *Channel) Emit(name string, args ...any) {
	handlers := c.handlers[name]
	if len(handlers) == 0 {
		return
	}
	hooks := c.hooks[name]

	for _, h := range hooks {
		args = h.fn(args...)
	}
	for _, l := range handlers {
		l.fn(args...)
	}
}

// ListenerCount returns the number of listeners registered for name.
func (c *Channel) ListenerCount(name string) int { return len(c.handlers[name]) }

// HookCount returns the number of hooks registered for name.
func (c *Channel) HookCount(name string) int { return len(c.hooks[name]) }
