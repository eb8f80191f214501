package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrInspectorClosed is returned for calls made after the inspector connection went away.
var ErrInspectorClosed = errors.New("inspector connection closed")

// Inspector speaks the Chrome DevTools Protocol to a single debug target.
type Inspector interface {
	// Call sends method with params and decodes the response into result.
	// A nil params omits the field; a nil result discards the response.
	Call(ctx context.Context, method string, params, result any) error

	// Subscribe returns a new channel receiving every event named in methods,
	// in the order they arrive. Events nobody subscribed to are dropped. A
	// subscriber must keep reading: a full channel stalls the connection.
	Subscribe(methods ...string) <-chan Event

	// Done is closed once the connection stops reading.
	Done() <-chan struct{}

	// Close shuts the connection down.
	Close() error
}

// Event is a protocol notification.
type Event struct {
	Method string
	Params json.RawMessage
}

// ProtocolError is an error reported by the debug target for a call.
type ProtocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *ProtocolError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("protocol error %d: %s (%s)", e.Code, e.Message, e.Data)
	}

	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

type request struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type message struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *ProtocolError  `json:"error"`
}

const eventBuffer = 16

// WebSocketInspector is an Inspector over a gorilla websocket connection.
type WebSocketInspector struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu          sync.Mutex
	nextID      int64
	pending     map[int64]chan message
	subscribers map[string][]chan Event

	done      chan struct{}
	closing   chan struct{}
	closeOnce sync.Once
	stopOnce  sync.Once
	err       error
}

// DialInspector connects to the inspector websocket at url.
func DialInspector(ctx context.Context, url string) (*WebSocketInspector, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial inspector %s: %w", url, err)
	}

	return newWebSocketInspector(conn), nil
}

func newWebSocketInspector(conn *websocket.Conn) *WebSocketInspector {
	i := &WebSocketInspector{
		conn:        conn,
		pending:     make(map[int64]chan message),
		subscribers: make(map[string][]chan Event),
		done:        make(chan struct{}),
		closing:     make(chan struct{}),
	}

	go i.readLoop()

	return i
}

// Call sends a request and waits for the matching response.
func (i *WebSocketInspector) Call(ctx context.Context, method string, params, result any) error {
	id, responses, err := i.register()
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	defer i.unregister(id)

	i.writeMu.Lock()
	err = i.conn.WriteJSON(request{ID: id, Method: method, Params: params})
	i.writeMu.Unlock()

	if err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case msg := <-responses:
		if msg.Error != nil {
			return fmt.Errorf("%s: %w", method, msg.Error)
		}

		if result == nil || len(msg.Result) == 0 {
			return nil
		}

		if err := json.Unmarshal(msg.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}

		return nil
	case <-i.done:
		return fmt.Errorf("%s: %w", method, i.Err())
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a channel for methods.
func (i *WebSocketInspector) Subscribe(methods ...string) <-chan Event {
	ch := make(chan Event, eventBuffer)

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, method := range methods {
		i.subscribers[method] = append(i.subscribers[method], ch)
	}

	return ch
}

// Done is closed when the read loop exits.
func (i *WebSocketInspector) Done() <-chan struct{} {
	return i.done
}

// Err returns the reason the connection stopped, if it did.
func (i *WebSocketInspector) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.err
}

// Close sends a close frame and tears the connection down.
func (i *WebSocketInspector) Close() error {
	i.stopOnce.Do(func() { close(i.closing) })

	i.writeMu.Lock()
	_ = i.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	i.writeMu.Unlock()

	err := i.conn.Close()
	<-i.done

	return err
}

func (i *WebSocketInspector) register() (int64, chan message, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.err != nil {
		return 0, nil, i.err
	}

	i.nextID++
	ch := make(chan message, 1)
	i.pending[i.nextID] = ch

	return i.nextID, ch, nil
}

func (i *WebSocketInspector) unregister(id int64) {
	i.mu.Lock()
	delete(i.pending, id)
	i.mu.Unlock()
}

func (i *WebSocketInspector) readLoop() {
	for {
		var msg message
		if err := i.conn.ReadJSON(&msg); err != nil {
			i.shutdown(err)
			return
		}

		// Responses carry the id of their request, notifications carry none.
		if msg.ID == 0 {
			i.dispatch(Event{Method: msg.Method, Params: msg.Params})
			continue
		}

		i.mu.Lock()
		ch := i.pending[msg.ID]
		i.mu.Unlock()

		if ch != nil {
			ch <- msg
		}
	}
}

func (i *WebSocketInspector) dispatch(ev Event) {
	i.mu.Lock()
	subscribers := i.subscribers[ev.Method]
	i.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- ev:
		case <-i.closing:
			return
		}
	}
}

func (i *WebSocketInspector) shutdown(err error) {
	i.closeOnce.Do(func() {
		i.mu.Lock()
		i.err = fmt.Errorf("%w: %v", ErrInspectorClosed, err)
		i.mu.Unlock()

		close(i.done)
	})
}
