package live

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iamLuCat/portfolio/internal/metrics"
	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/motion"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
	outboxSize     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

func sendJSON(ws *websocket.Conn, v any) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return ws.WriteJSON(v)
}

// Handler upgrades requests on /live and runs one Session per connection
type Handler struct {
	data     *models.PortfolioData
	logger   *zap.Logger
	clock    motion.Clock
	interval time.Duration
	base     context.Context
}

// NewHandler creates a live session handler
func NewHandler(d *models.PortfolioData, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{data: d, logger: logger, clock: motion.RealClock()}
}

// WithClock replaces the animation clock and frame interval, for tests
func (h *Handler) WithClock(c motion.Clock, interval time.Duration) *Handler {
	h.clock = c
	h.interval = interval
	return h
}

// WithBaseContext ends every session when ctx is done. Hijacked connections
// are not tracked by http.Server.Shutdown, so the server passes its own
// lifetime here.
func (h *Handler) WithBaseContext(ctx context.Context) *Handler {
	h.base = ctx
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade the websocket", zap.Error(err))
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	if h.base != nil {
		stop := context.AfterFunc(h.base, cancel)
		defer stop()
	}

	if err := h.Serve(ctx, ws); err != nil {
		h.logger.Warn("Live session ended with error", zap.Error(err))
	}
}

// Serve runs a session over an established connection until the client
// goes away or ctx ends. The session is closed on every return path.
func (h *Handler) Serve(ctx context.Context, ws *websocket.Conn) error {
	ws.SetReadLimit(maxMessageSize)

	g, gctx := errgroup.WithContext(ctx)
	outbox := make(chan Event, outboxSize)

	sess := NewSession(Options{
		Data:          h.data,
		Clock:         h.clock,
		Logger:        h.logger,
		FrameInterval: h.interval,
	}, func(e Event) {
		select {
		case outbox <- e:
		case <-gctx.Done():
		}
	})
	defer sess.Close()

	metrics.SessionOpened()
	defer metrics.SessionClosed()

	logger := h.logger.With(zap.String("session_id", sess.ID))
	logger.Info("Live session started")

	// reader
	g.Go(func() error {
		for {
			var msg Inbound
			if err := ws.ReadJSON(&msg); err != nil {
				return err
			}
			metrics.LiveMessage(messageLabel(msg.Type))
			if err := sess.Apply(msg); err != nil {
				logger.Debug("Rejected live message", zap.String("type", msg.Type), zap.Error(err))
				select {
				case outbox <- Event{Type: EventError, Message: err.Error()}:
				case <-gctx.Done():
					return nil
				}
			}
		}
	})

	// writer
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case e := <-outbox:
				if err := sendJSON(ws, e); err != nil {
					return err
				}
			}
		}
	})

	// unblock the reader once anything else stops
	g.Go(func() error {
		<-gctx.Done()
		_ = ws.SetReadDeadline(time.Now())
		return nil
	})

	err := g.Wait()
	logger.Info("Live session closed")
	if ctx.Err() != nil || isNormalClose(err) {
		return nil
	}
	return err
}

func isNormalClose(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
