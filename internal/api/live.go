package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sandfort/BlackJackML/internal/sim"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API binds to loopback by default; cross-origin browsers are
	// allowed so a local dashboard can subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveHub fans training checkpoints out to websocket subscribers, one
// feed per active run.
type liveHub struct {
	mu   sync.Mutex
	runs map[string]*liveFeed
}

type liveFeed struct {
	subs map[chan sim.Checkpoint]struct{}
	done bool
}

func newLiveHub() *liveHub {
	return &liveHub{runs: make(map[string]*liveFeed)}
}

// Open registers a feed for a starting run.
func (h *liveHub) Open(runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs[runID] = &liveFeed{subs: make(map[chan sim.Checkpoint]struct{})}
}

// Publish sends a checkpoint to every subscriber of the run. Slow
// subscribers drop checkpoints rather than stalling training.
func (h *liveHub) Publish(runID string, cp sim.Checkpoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	feed, ok := h.runs[runID]
	if !ok {
		return
	}
	for ch := range feed.subs {
		select {
		case ch <- cp:
		default:
		}
	}
}

// Finish closes the run's feed and all subscriber channels.
func (h *liveHub) Finish(runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	feed, ok := h.runs[runID]
	if !ok {
		return
	}
	feed.done = true
	for ch := range feed.subs {
		close(ch)
	}
	feed.subs = make(map[chan sim.Checkpoint]struct{})
	delete(h.runs, runID)
}

// Subscribe attaches to a run's feed. The returned cancel must be
// called when the subscriber goes away; ok is false when the run is
// not streaming.
func (h *liveHub) Subscribe(runID string) (ch chan sim.Checkpoint, cancel func(), ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	feed, exists := h.runs[runID]
	if !exists || feed.done {
		return nil, nil, false
	}
	ch = make(chan sim.Checkpoint, 16)
	feed.subs[ch] = struct{}{}
	cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if f, still := h.runs[runID]; still {
			if _, sub := f.subs[ch]; sub {
				delete(f.subs, ch)
				close(ch)
			}
		}
	}
	return ch, cancel, true
}

// handleLive upgrades to a websocket and streams checkpoints for an
// in-flight training run until it completes.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, cancel, ok := s.live.Subscribe(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "run is not streaming")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	defer cancel()

	// Drain client frames so close handshakes are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for cp := range ch {
		if err := conn.WriteJSON(cp); err != nil {
			return
		}
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
}
