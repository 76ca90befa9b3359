// Package live runs the interactive side of the page for one browser tab:
// it mirrors the tab's scroll position and layout, drives the section
// tracker, reveals, counters, progress bars and the project modal, and
// streams the resulting updates back over a websocket.
package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamLuCat/portfolio/internal/gallery"
	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/motion"
	"github.com/iamLuCat/portfolio/internal/viewport"
)

// ErrClosed is returned by Apply after Close
var ErrClosed = errors.New("session closed")

// Options configure a Session
type Options struct {
	Data   *models.PortfolioData
	Clock  motion.Clock
	Logger *zap.Logger
	// FrameInterval is the counter tick; zero uses motion.FrameInterval
	FrameInterval time.Duration
}

type counterEntry struct {
	counter *motion.Counter
	obs     *motion.Observer
}

// Session is the server-side model of one open page
type Session struct {
	ID string

	clock    motion.Clock
	interval time.Duration
	logger   *zap.Logger
	sink     func(Event)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	scene   *motion.Scene
	tracker *viewport.Tracker
	nav     *viewport.Navigator
	doc     *gallery.Document
	modal   *gallery.Modal
	gallery *gallery.Gallery

	mu       sync.Mutex
	closed   bool
	boxes    map[string]*motion.Box
	reveals  map[string]*motion.Reveal
	bars     map[string]*motion.ProgressBar
	counters map[string]*counterEntry
}

// NewSession creates a session that reports through sink. sink may be
// called from counter goroutines and must be safe for concurrent use.
func NewSession(opts Options, sink func(Event)) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = motion.RealClock()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = motion.FrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:       uuid.NewString(),
		clock:    clock,
		interval: interval,
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
		scene:    motion.NewScene(motion.Viewport{}),
		tracker:  viewport.NewTracker(nil),
		doc:      gallery.NewDocument(),
		boxes:    make(map[string]*motion.Box),
		reveals:  make(map[string]*motion.Reveal),
		bars:     make(map[string]*motion.ProgressBar),
		counters: make(map[string]*counterEntry),
	}
	s.logger = logger.With(zap.String("session_id", s.ID))
	s.nav = viewport.NewNavigator(s.tracker)
	s.modal = gallery.NewModal(s.doc, s.doc, s.showNotFound)
	if opts.Data != nil {
		s.gallery = gallery.New(opts.Data.Projects)
	} else {
		s.gallery = gallery.New(nil)
	}

	s.tracker.OnChange(func(sec viewport.Section) {
		s.emit(Event{Type: EventActive, Section: sec})
	})
	return s
}

func (s *Session) emit(e Event) {
	if s.ctx.Err() != nil {
		return
	}
	s.sink(e)
}

// Apply handles one inbound message
func (s *Session) Apply(msg Inbound) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	switch msg.Type {
	case MsgLayout:
		s.applyLayout(msg)
	case MsgScroll:
		s.scene.ScrollTo(msg.ScrollY)
		s.tracker.Update(msg.ScrollY)
	case MsgResize:
		s.scene.Resize(msg.Height)
	case MsgHash:
		s.applyHash(msg.Hash)
	case MsgHome:
		s.goHome()
	case MsgNavigate:
		sec, ok := viewport.ParseSection(msg.Section)
		if !ok {
			return fmt.Errorf("unknown section: %s", msg.Section)
		}
		y := viewport.ScrollTarget(msg.ElementTop, msg.PageYOffset)
		s.emit(Event{Type: EventRoute, Hash: sec.Anchor(), ScrollTo: &y})
	case MsgKey:
		s.doc.DispatchKey(msg.Key)
		s.emitModal()
	case MsgOpen:
		p, ok := s.gallery.Find(msg.Project)
		if !ok {
			return fmt.Errorf("unknown project: %s", msg.Project)
		}
		s.modal.Open(p)
		s.emitModal()
	case MsgClose:
		s.modal.Close()
		s.emitModal()
	case MsgLink:
		return s.followLink(msg.Project, models.LinkKind(msg.Kind))
	default:
		return fmt.Errorf("unknown message type: %q", msg.Type)
	}
	return nil
}

func (s *Session) applyLayout(msg Inbound) {
	layout := make(viewport.StaticLayout, len(msg.Sections))
	for id, r := range msg.Sections {
		if sec, ok := viewport.ParseSection(id); ok {
			layout[sec] = viewport.Bounds{Top: r.Top, Height: r.Height}
		}
	}
	s.tracker.SetLayout(layout)

	if msg.ViewportHeight > 0 {
		s.scene.Resize(msg.ViewportHeight)
	}
	s.scene.ScrollTo(msg.ScrollY)

	for _, el := range msg.Elements {
		s.mount(el)
	}
	s.scene.Refresh()

	s.tracker.Update(msg.ScrollY)
	s.emit(Event{Type: EventActive, Section: s.tracker.Highlighted()})
}

// mount creates the component for el, or moves it if it already exists
func (s *Session) mount(el Element) {
	rect := motion.Rect{Top: el.Top, Height: el.Height}

	s.mu.Lock()
	if box, ok := s.boxes[el.ID]; ok {
		s.mu.Unlock()
		box.SetRect(rect)
		return
	}
	box := motion.NewBox(el.ID, rect)
	s.boxes[el.ID] = box
	s.mu.Unlock()

	switch el.Kind {
	case KindReveal:
		s.mountReveal(el, box)
	case KindCounter:
		s.mountCounter(el, box)
	case KindProgress:
		s.mountProgress(el, box)
	default:
		s.logger.Debug("Ignoring element of unknown kind", zap.String("id", el.ID), zap.String("kind", el.Kind))
	}
}

func (s *Session) mountReveal(el Element, box *motion.Box) {
	opts := motion.RevealOptions{
		Effect:    motion.Effect(el.Effect),
		Delay:     time.Duration(el.Delay) * time.Millisecond,
		Threshold: el.Threshold,
		Repeat:    el.Repeat,
	}
	r := motion.NewReveal(s.scene, box, opts, s.clock)
	report := func(visible bool) {
		s.emit(Event{
			Type:    EventReveal,
			ID:      el.ID,
			Visible: visible,
			CSS:     r.Style().CSS() + " " + r.Transition().CSS(),
		})
	}
	r.OnChange(report)
	// the initial observation may already have revealed it
	if r.Visible() {
		report(true)
	}

	s.mu.Lock()
	s.reveals[el.ID] = r
	s.mu.Unlock()
}

func (s *Session) mountCounter(el Element, box *motion.Box) {
	c := motion.NewCounter(motion.ParseCounterValue(el.Value), 0, s.clock)
	entry := &counterEntry{counter: c}

	s.mu.Lock()
	s.counters[el.ID] = entry
	s.mu.Unlock()

	entry.obs = motion.OnceVisible(s.scene, box, motion.DefaultCounterThreshold, func() {
		s.startCounter(el.ID, c)
	})
}

func (s *Session) startCounter(id string, c *motion.Counter) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		err := c.Run(s.ctx, s.interval, func(text string) {
			s.emit(Event{Type: EventCounter, ID: id, Text: text, Done: c.Done()})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Counter stopped", zap.String("id", id), zap.Error(err))
		}
	}()
}

func (s *Session) mountProgress(el Element, box *motion.Box) {
	b := motion.NewProgressBar(s.scene, box, el.Percentage, el.Index, s.clock)
	report := func() {
		s.emit(Event{
			Type:  EventProgress,
			ID:    el.ID,
			Width: b.TargetWidth(),
			Delay: b.Delay().Milliseconds(),
		})
	}
	b.OnTrigger(report)
	if b.Triggered() {
		report()
	}

	s.mu.Lock()
	s.bars[el.ID] = b
	s.mu.Unlock()
}

func (s *Session) applyHash(hash string) {
	wasNotFound := s.nav.NotFound()
	route := s.nav.HandleHash(hash)
	s.emit(Event{Type: EventRoute, NotFound: route.NotFound, Hash: route.Hash})

	switch {
	case route.NotFound:
		s.emit(Event{Type: EventActive, Section: viewport.SectionNone})
	case wasNotFound:
		s.emit(Event{Type: EventActive, Section: s.tracker.Highlighted()})
	}
}

func (s *Session) goHome() {
	wasNotFound := s.nav.NotFound()
	route, y := s.nav.GoHome()
	s.scene.ScrollTo(y)
	s.tracker.Update(y)
	s.emit(Event{Type: EventRoute, Hash: route.Hash, ScrollTo: &y, Reload: wasNotFound})
	s.emit(Event{Type: EventActive, Section: s.tracker.Highlighted()})
}

func (s *Session) showNotFound() {
	s.modal.Close()
	s.applyHash(viewport.NotFoundHash)
}

func (s *Session) followLink(id string, kind models.LinkKind) error {
	p, ok := s.gallery.Find(id)
	if !ok {
		return fmt.Errorf("unknown project: %s", id)
	}
	url, ok := s.modal.FollowLink(p, kind)
	if !ok {
		s.emitModal()
		return nil
	}
	s.emit(Event{Type: EventRoute, URL: url})
	return nil
}

func (s *Session) emitModal() {
	e := Event{Type: EventModal, ScrollLocked: s.doc.ScrollLocked()}
	if p := s.modal.Project(); p != nil {
		e.Open = true
		e.Project = p.ID
	}
	s.emit(e)
}

// Active returns the highlighted navbar section
func (s *Session) Active() viewport.Section {
	return s.tracker.Highlighted()
}

// Observers returns the number of visibility observers still attached
func (s *Session) Observers() int {
	return s.scene.Observers()
}

// Close releases every observer, stops every counter and unlocks scrolling.
// It waits for running counters to exit and is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	reveals := s.reveals
	bars := s.bars
	counters := s.counters
	s.reveals = map[string]*motion.Reveal{}
	s.bars = map[string]*motion.ProgressBar{}
	s.counters = map[string]*counterEntry{}
	s.mu.Unlock()

	s.cancel()
	for _, r := range reveals {
		r.Close()
	}
	for _, b := range bars {
		b.Close()
	}
	for _, c := range counters {
		if c.obs != nil {
			c.obs.Disconnect()
		}
	}
	s.modal.Dispose()
	s.wg.Wait()
}
