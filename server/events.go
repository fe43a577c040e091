package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/fintrack"
)

// handleEvents streams the state as server-sent events: once on connection,
// then after every committed change. A slow client only gets the latest state.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}
	// the stream outlives the server write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	last := newLatest()
	cancel := s.store.Subscribe(last.push)
	defer cancel()
	last.push(s.store.Snapshot())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	var sent uint64
	for {
		select {
		case <-last.ready:
		case <-r.Context().Done():
			return
		case <-s.done:
			return
		}
		st, version := last.get()
		if version == sent && sent != 0 {
			continue
		}
		if err := writeEvent(w, st); err != nil {
			s.logger.Debug("event stream closed", "err", err)
			return
		}
		flusher.Flush()
		sent = version
	}
}

func writeEvent(w http.ResponseWriter, st fintrack.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
	return err
}

// latest keeps the newest state pushed to it. Older versions are dropped, ready
// is signaled when a newer one arrives.
type latest struct {
	mu      sync.Mutex
	st      fintrack.State
	version uint64
	set     bool
	ready   chan struct{}
}

func newLatest() *latest { return &latest{ready: make(chan struct{}, 1)} }

func (l *latest) push(st fintrack.State, version uint64) {
	l.mu.Lock()
	if l.set && version <= l.version {
		l.mu.Unlock()
		return
	}
	l.st, l.version, l.set = st, version, true
	l.mu.Unlock()
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

func (l *latest) get() (fintrack.State, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.st, l.version
}
