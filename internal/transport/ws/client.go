package ws

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is a single websocket connection registered to a room (a game).
type Client struct {
	Conn *websocket.Conn
	Hub  *Hub

	Room     string
	PlayerID string

	CloseOnce     sync.Once
	SendCloseOnce sync.Once
	Send          chan []byte
}

// NewClient creates a Client for a connection in room on behalf of
// playerID. It does not register the client; the caller does that with
// Hub.Register.
func NewClient(conn *websocket.Conn, hub *Hub, room, playerID string) (*Client, error) {
	if conn == nil {
		return nil, fmt.Errorf("NewClient: conn cannot be nil")
	}
	if hub == nil {
		return nil, fmt.Errorf("NewClient: hub cannot be nil")
	}
	if room == "" {
		return nil, fmt.Errorf("NewClient: room cannot be empty")
	}
	if playerID == "" {
		return nil, fmt.Errorf("NewClient: playerID cannot be empty")
	}
	return &Client{
		Conn:     conn,
		Hub:      hub,
		Room:     room,
		PlayerID: playerID,
		Send:     make(chan []byte, 256),
	}, nil
}

// Close unregisters from the hub and closes the underlying connection,
// exactly once regardless of how many goroutines call it.
func (c *Client) Close() {
	c.CloseOnce.Do(func() {
		if c.Hub != nil {
			c.Hub.Unregister(c)
		} else if c.Send != nil {
			c.SendCloseOnce.Do(func() { close(c.Send) })
		}
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

// ReadPump reads incoming frames (submitted moves) until the connection
// closes, handing each decoded message to onMessage.
func (c *Client) ReadPump(onMessage func([]byte)) {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}
		if onMessage != nil {
			onMessage(message)
		}
	}
}

// WritePump drains c.Send to the connection and keeps it alive with pings
// until Send is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("ws ping error: %v", err)
				return
			}
		}
	}
}
