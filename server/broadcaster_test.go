package server

import (
	"slices"
	"testing"
)

func TestPublishDelivers(t *testing.T) {
	b := newBroadcaster()
	ch := b.subscribe()

	b.Publish(Event{Paths: []string{"index.html"}})

	ev := <-ch
	if !slices.Equal(ev.Paths, []string{"index.html"}) {
		t.Errorf("Expected [index.html], got %v", ev.Paths)
	}
}

func TestPublishMergesUnread(t *testing.T) {
	b := newBroadcaster()
	ch := b.subscribe()

	b.Publish(Event{Paths: []string{"js/builder.js", "index.html"}})
	b.Publish(Event{Paths: []string{"index.html", "css/app.css"}})

	ev := <-ch
	want := []string{"css/app.css", "index.html", "js/builder.js"}
	if !slices.Equal(ev.Paths, want) {
		t.Errorf("Expected %v, got %v", want, ev.Paths)
	}

	select {
	case extra := <-ch:
		t.Errorf("Expected a single pending event, got %v", extra)
	default:
	}
}

func TestUnsubscribe(t *testing.T) {
	b := newBroadcaster()
	ch := b.subscribe()
	b.subscribe()

	b.unsubscribe(ch)
	if got := b.clientCount(); got != 1 {
		t.Errorf("Expected 1 client, got %d", got)
	}

	b.unsubscribe(ch)
	if got := b.clientCount(); got != 1 {
		t.Errorf("Expected unsubscribe to be idempotent, got %d clients", got)
	}

	b.Publish(Event{Paths: []string{"a"}})
}
