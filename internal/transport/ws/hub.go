// Package ws is the real-time transport: a room-per-game hub that
// broadcasts the public projection and per-player private draw events over
// gorilla/websocket connections.
package ws

import (
	"encoding/json"
	"log"
	"time"
)

// Hub manages websocket clients and room-based broadcasts. One Hub serves
// every game; rooms are keyed by gameId.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan joinReq
	broadcast  chan Broadcast
	quit       chan struct{}

	rooms map[string]map[*Client]bool
}

type joinReq struct {
	Client *Client
	Room   string
}

// Broadcast is one message destined for every client in Room.
type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

// NewHub returns an unstarted Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinReq),
		broadcast:  make(chan Broadcast, 256),
		quit:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

// Run processes register/unregister/join/broadcast events until Stop is
// called; it owns h.rooms so every mutation happens on this one goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if c.Room == "" {
				c.Room = "lobby:global"
			}
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = map[*Client]bool{}
			}
			h.rooms[c.Room][c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case jr := <-h.join:
			h.moveClientToRoom(jr.Client, jr.Room)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case <-h.quit:
			for _, clients := range h.rooms {
				for c := range clients {
					c.SendCloseOnce.Do(func() { close(c.Send) })
				}
			}
			return
		}
	}
}

// Stop ends Run's loop and closes every currently-registered client's send
// channel, so WritePump goroutines unwind instead of leaking past shutdown.
func (h *Hub) Stop() {
	select {
	case <-h.quit:
	default:
		close(h.quit)
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Join moves c into room, removing it from any previous room.
func (h *Hub) Join(c *Client, room string) {
	h.join <- joinReq{Client: c, Room: room}
}

// Broadcast sends payload, tagged typ, to every client currently in room,
// used both for the public GameState projection and for lobby/system
// notices.
func (h *Hub) Broadcast(room, typ string, payload any) {
	h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}
}

// Unicast sends payload only to clients in room belonging to playerID, used
// for the private per-player draw events, which must never reach an
// opponent's connection even though they share the room.
func (h *Hub) Unicast(room, playerID, typ string, payload any) {
	h.broadcast <- Broadcast{Room: room, Type: typ, Payload: unicastEnvelope{PlayerID: playerID, Payload: payload}}
}

type unicastEnvelope struct {
	PlayerID string `json:"-"`
	Payload  any    `json:"-"`
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.SendCloseOnce.Do(func() { close(c.Send) })
}

func (h *Hub) moveClientToRoom(c *Client, room string) {
	if c == nil {
		return
	}
	if room == "" {
		room = "lobby:global"
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.Room = room
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][c] = true
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	if env, ok := payload.(unicastEnvelope); ok {
		data, err := marshalEnvelope(typ, env.Payload)
		if err != nil {
			log.Printf("ws unicast marshal error: room=%s type=%s err=%v", room, typ, err)
			return
		}
		for c := range clients {
			if c.PlayerID != env.PlayerID {
				continue
			}
			h.send(c, data)
		}
		return
	}

	data, err := marshalEnvelope(typ, payload)
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}
	for c := range clients {
		h.send(c, data)
	}
}

func marshalEnvelope(typ string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Hub) send(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.removeClient(c)
	}
}
