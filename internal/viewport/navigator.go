package viewport

import "sync"

// NotFoundHash switches the whole page to the not-found view
const NotFoundHash = "#404"

// Route is what the page body currently shows
type Route struct {
	NotFound bool    `json:"notFound"`
	Hash     string  `json:"hash"`
	Target   Section `json:"target,omitempty"` // in-page scroll target, if any
}

// Navigator owns the URL fragment and keeps the tracker in step with it.
// While the not-found view is up the tracker is suspended.
type Navigator struct {
	mu      sync.Mutex
	tracker *Tracker
	route   Route
}

// NewNavigator creates a Navigator driving the given tracker
func NewNavigator(tracker *Tracker) *Navigator {
	return &Navigator{tracker: tracker}
}

// HandleHash applies a fragment change. "#404" shows the not-found view;
// any recognised section fragment becomes a scroll target.
func (n *Navigator) HandleHash(hash string) Route {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := Route{Hash: hash, NotFound: hash == NotFoundHash}
	if !r.NotFound {
		if s, ok := ParseSection(hash); ok {
			r.Target = s
		}
	}
	n.route = r

	if n.tracker != nil {
		if r.NotFound {
			n.tracker.Suspend()
		} else {
			n.tracker.Resume()
		}
	}
	return r
}

// GoHome leaves the not-found view, points the fragment at #home and
// returns the scroll offset to jump to (the top of the page).
func (n *Navigator) GoHome() (Route, float64) {
	return n.HandleHash(SectionHome.Anchor()), 0
}

// Route returns the current route
func (n *Navigator) Route() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// NotFound reports whether the not-found view is showing
func (n *Navigator) NotFound() bool {
	return n.Route().NotFound
}
