package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
)

// Event is the payload of one "update" message on the event stream.
type Event struct {
	Paths []string `json:"paths"`
}

// broadcaster fans file change events out to Server-Sent Event clients.
// Each client only keeps its latest undelivered event.
type broadcaster struct {
	m       sync.Mutex
	clients []chan Event
}

func newBroadcaster() *broadcaster {
	return &broadcaster{}
}

func (b *broadcaster) subscribe() chan Event {
	ch := make(chan Event, 1)
	b.m.Lock()
	b.clients = append(b.clients, ch)
	b.m.Unlock()
	return ch
}

func (b *broadcaster) unsubscribe(ch chan Event) {
	b.m.Lock()
	defer b.m.Unlock()

	if idx := slices.Index(b.clients, ch); idx != -1 {
		b.clients = slices.Delete(b.clients, idx, idx+1)
	}
}

func (b *broadcaster) clientCount() int {
	b.m.Lock()
	defer b.m.Unlock()
	return len(b.clients)
}

// Publish hands ev to every client. A client that has not read its previous
// event gets the union of both path lists instead.
func (b *broadcaster) Publish(ev Event) {
	b.m.Lock()
	defer b.m.Unlock()

	for _, ch := range b.clients {
		select {
		case ch <- ev:
		case prev := <-ch:
			merged := slices.Concat(prev.Paths, ev.Paths)
			slices.Sort(merged)
			ch <- Event{Paths: slices.Compact(merged)}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: update\ndata: %s\n\n", data)
	return err
}

func (b *broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := b.subscribe()
	defer b.unsubscribe(events)

	w.Write([]byte(":ok\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := writeEvent(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

var _ http.Handler = (*broadcaster)(nil)
