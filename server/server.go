package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/rs/cors"
)

type Options struct {
	Dir            string
	Watch          bool
	DebounceTime   time.Duration
	EventsPath     string
	AllowedOrigins []string
}

func DefaultOptions() Options {
	return Options{
		Dir:            ".",
		DebounceTime:   DEFAULT_DEBOUNCE_TIME,
		EventsPath:     "/_events",
		AllowedOrigins: []string{"*"},
	}
}

// Server serves a directory tree, optionally streaming the paths of files
// that change below it.
type Server struct {
	options Options

	files       http.Handler
	broadcaster *broadcaster
	watcher     *Watcher
}

func New(opt Options) (*Server, error) {
	if opt.Dir == "" {
		opt.Dir = "."
	}
	if opt.DebounceTime <= 0 {
		opt.DebounceTime = DEFAULT_DEBOUNCE_TIME
	}
	if opt.EventsPath == "" {
		opt.EventsPath = "/_events"
	}
	opt.EventsPath = path.Clean("/" + opt.EventsPath)

	info, err := os.Stat(opt.Dir)
	if err != nil {
		return nil, fmt.Errorf("Unable to serve %v: %w", opt.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("Unable to serve %v: not a directory", opt.Dir)
	}

	out := &Server{
		options: opt,
		files:   http.FileServer(http.Dir(opt.Dir)),
	}

	if opt.Watch {
		watcher, err := WatchDir(opt.Dir, opt.DebounceTime)
		if err != nil {
			return nil, fmt.Errorf("Unable to watch %v: %w", opt.Dir, err)
		}

		out.watcher = watcher
		out.broadcaster = newBroadcaster()

		go out.forwardUpdates()
	}

	return out, nil
}

func (s *Server) forwardUpdates() {
	for change := range s.watcher.Update {
		if change.Err != nil {
			log.Print(change.Err)
			continue
		}
		log.Printf("Changed in %v: %v", s.options.Dir, change.Paths)
		s.broadcaster.Publish(Event{Paths: change.Paths})
	}
}

func (s *Server) Handler() http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.broadcaster != nil && r.URL.Path == s.options.EventsPath {
			s.broadcaster.ServeHTTP(w, r)
			return
		}
		s.files.ServeHTTP(w, r)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})

	return c.Handler(inner)
}

func (s *Server) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
