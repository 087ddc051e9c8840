package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/syirilrakhulh/oddbit-player/log"
)

// EventCallback receives an observed property name with its new value, or an event name with the raw event.
type EventCallback func(name string, data any)

// observed lists the properties a playback session follows.
var observed = []string{
	"pause",
	"time-pos",
	"duration",
	"eof-reached",
	"dwidth",
	"dheight",
	"fullscreen",
}

// forwarded lists the broadcast events passed to the callback.
var forwarded = map[string]bool{
	"file-loaded": true,
	"end-file":    true,
}

// EventListener follows mpv state over a dedicated IPC connection.
// Observers are registered on that same connection since mpv scopes them per client.
type EventListener struct {
	socketPath string
	callback   EventCallback
	conn       net.Conn
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the mpv socket at socketPath.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start registers the observers and begins dispatching events in the background.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, requestIDs.Add(1), []any{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	el.listening = true
	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection; the read loop exits on the resulting error.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}
	el.listening = false
	el.conn.Close()
	<-el.done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		el.dispatch(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// dispatch decodes one line and hands property changes and forwarded events to the callback.
func (el *EventListener) dispatch(line []byte) {
	if el.callback == nil {
		return
	}

	var event map[string]any
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	name, _ := event["event"].(string)
	switch {
	case name == "property-change":
		if property, _ := event["name"].(string); property != "" {
			el.callback(property, event["data"])
		}
	case forwarded[name]:
		el.callback(name, event)
	}
}
