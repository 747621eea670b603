package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gitlab.com/lologarithm/cydonia/dashboard"
	"gitlab.com/lologarithm/cydonia/reading"
)

const (
	// sendBuffer is how many views may queue up for one client before it is
	// dropped as too slow.
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{} // use default options

// Request is sent from websocket client to server to ask for a change.
type Request struct {
	Location *reading.ID
}

// clientStream is one connected browser. Only its write goroutine writes to
// conn; everyone else queues on send.
type clientStream struct {
	conn *websocket.Conn
	send chan []byte
}

// hub keeps the connected websocket clients and pushes every new view to them.
type hub struct {
	ctx  context.Context
	ctrl *dashboard.Controller

	clientslock   *sync.Mutex
	clientStreams []*clientStream
}

func newHub(ctx context.Context, ctrl *dashboard.Controller) *hub {
	h := &hub{
		ctx:         ctx,
		ctrl:        ctrl,
		clientslock: &sync.Mutex{},
	}
	ctrl.Subscribe(h.broadcast)
	return h
}

// broadcast queues v for every client and never waits on a socket. A client
// whose queue is full is disconnected.
func (h *hub) broadcast(v dashboard.View) {
	d, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Error] Failed to marshal view to json: %s", err)
		return
	}
	h.clientslock.Lock()
	defer h.clientslock.Unlock()
	live := h.clientStreams[:0]
	for _, cs := range h.clientStreams {
		select {
		case cs.send <- d:
			live = append(live, cs)
		default:
			log.Printf("[Error] Dropping websocket client %s, it is not keeping up", cs.conn.RemoteAddr())
			cs.drop()
		}
	}
	for i := len(live); i < len(h.clientStreams); i++ {
		h.clientStreams[i] = nil
	}
	h.clientStreams = live
}

func (h *hub) clients() int {
	h.clientslock.Lock()
	defer h.clientslock.Unlock()
	return len(h.clientStreams)
}

func (h *hub) clientStreamHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade failure:", err)
		return
	}

	cs := &clientStream{conn: c, send: make(chan []byte, sendBuffer)}
	var failed bool
	// Registering inside WithView puts the first view ahead of any broadcast.
	h.ctrl.WithView(func(v dashboard.View) {
		d, err := json.Marshal(v)
		if err != nil {
			log.Printf("[Error] Failed to send first view: %s", err)
			failed = true
			return
		}
		cs.send <- d
		h.clientslock.Lock()
		h.clientStreams = append(h.clientStreams, cs)
		h.clientslock.Unlock()
	})
	if failed {
		c.Close()
		return
	}

	go cs.write()
	go h.read(cs)
}

// write sends queued views until the queue is closed or a write fails.
func (cs *clientStream) write() {
	defer cs.conn.Close()
	for d := range cs.send {
		cs.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cs.conn.WriteMessage(websocket.TextMessage, d); err != nil {
			log.Println("Write to client failed:", err)
			return
		}
	}
}

// drop ends the client. Callers hold clientslock and remove cs from the list.
func (cs *clientStream) drop() {
	close(cs.send)
	cs.conn.Close()
}

// read handles requests from one websocket client until it disconnects.
func (h *hub) read(cs *clientStream) {
	for {
		v := &Request{}
		if err := cs.conn.ReadJSON(v); err != nil {
			log.Println("Disconnecting client:", err)
			break
		}
		if v.Location == nil {
			continue
		}
		if _, ok := h.ctrl.Catalog().Location(*v.Location); !ok {
			log.Printf("Client asked for unknown location %q", *v.Location)
			continue
		}
		h.ctrl.SetLocation(h.ctx, *v.Location)
	}
	h.remove(cs)
}

func (h *hub) remove(cs *clientStream) {
	h.clientslock.Lock()
	defer h.clientslock.Unlock()
	for i, c := range h.clientStreams {
		if c == cs {
			h.clientStreams = append(h.clientStreams[:i], h.clientStreams[i+1:]...)
			cs.drop()
			return
		}
	}
}
