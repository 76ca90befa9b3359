package gallery

import "sync"

// Body is the page-level state the modal touches: the scroll lock
type Body interface {
	SetScrollLocked(locked bool)
}

// KeyListener receives key names such as "Escape"
type KeyListener func(key string)

// KeySource lets components subscribe to keyboard events
type KeySource interface {
	AddKeyListener(fn KeyListener) (remove func())
}

// Document is an in-memory Body and KeySource
type Document struct {
	mu        sync.Mutex
	locked    bool
	nextID    int
	listeners map[int]KeyListener
}

// NewDocument creates a Document with scrolling enabled
func NewDocument() *Document {
	return &Document{listeners: make(map[int]KeyListener)}
}

// SetScrollLocked implements Body
func (d *Document) SetScrollLocked(locked bool) {
	d.mu.Lock()
	d.locked = locked
	d.mu.Unlock()
}

// ScrollLocked reports whether page scrolling is disabled
func (d *Document) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// AddKeyListener implements KeySource. The returned func removes the
// listener and may be called any number of times.
func (d *Document) AddKeyListener(fn KeyListener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.listeners, id)
			d.mu.Unlock()
		})
	}
}

// KeyListeners returns the number of installed listeners
func (d *Document) KeyListeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// DispatchKey delivers a key press to every listener
func (d *Document) DispatchKey(key string) {
	d.mu.Lock()
	fns := make([]KeyListener, 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
