package gallery

import (
	"sync"

	"github.com/iamLuCat/portfolio/internal/models"
)

// EscapeKey closes the modal
const EscapeKey = "Escape"

// Modal is the project detail overlay. While open it locks page scrolling
// and listens for Escape; both are released on every close path.
type Modal struct {
	body       Body
	keys       KeySource
	onNotFound func()

	mu        sync.Mutex
	project   *models.Project
	removeKey func()
}

// NewModal creates a closed modal. onNotFound is called when a placeholder
// demo or source link is followed.
func NewModal(body Body, keys KeySource, onNotFound func()) *Modal {
	return &Modal{body: body, keys: keys, onNotFound: onNotFound}
}

// Open shows p. Opening while already open swaps the project without
// installing a second listener.
func (m *Modal) Open(p *models.Project) {
	if p == nil {
		m.Close()
		return
	}
	m.mu.Lock()
	m.project = p
	if m.removeKey != nil {
		m.mu.Unlock()
		return
	}
	m.body.SetScrollLocked(true)
	m.removeKey = m.keys.AddKeyListener(func(key string) {
		if key == EscapeKey {
			m.Close()
		}
	})
	m.mu.Unlock()
}

// Close hides the modal. Closing a closed modal does nothing.
func (m *Modal) Close() {
	m.mu.Lock()
	remove := m.removeKey
	wasOpen := remove != nil
	m.removeKey = nil
	m.project = nil
	if wasOpen {
		m.body.SetScrollLocked(false)
	}
	m.mu.Unlock()

	if remove != nil {
		remove()
	}
}

// ClickBackdrop closes the modal
func (m *Modal) ClickBackdrop() { m.Close() }

// Dispose releases everything the modal holds, e.g. when the page unmounts
func (m *Modal) Dispose() { m.Close() }

// Project returns the open project, or nil
func (m *Modal) Project() *models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.project
}

// IsOpen reports whether a project is showing
func (m *Modal) IsOpen() bool {
	return m.Project() != nil
}

// FollowLink resolves a demo or source link on p. Placeholder targets are
// not followed: the not-found view is shown instead and ok is false.
func (m *Modal) FollowLink(p *models.Project, kind models.LinkKind) (target string, ok bool) {
	url, known := p.Link(kind)
	if !known || models.IsPlaceholderLink(url) {
		if m.onNotFound != nil {
			m.onNotFound()
		}
		return "", false
	}
	return url, true
}
