package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/transport/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	if s.Config.AppEnv != "production" && s.Config.DevWebSocketsAllowAll {
		return true
	}
	if s.Config.AppEnv != "production" && isLocalhostOrigin(origin) {
		return true
	}
	for _, allowed := range s.Config.WSAllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler upgrades an already-authenticated request (RequireAuth
// ran as this route's middleware) and registers the connection to the
// game:<id> room. Incoming frames are decoded as engine.Move and submitted
// through the same pipeline the REST move endpoint uses.
func (s *Server) WebSocketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := playerIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		gameID := c.Param("id")

		hub, ok := s.Hub.Get()
		if !ok || hub == nil {
			log.Printf("WebSocketHandler: no active hub, game_id=%s", gameID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		upgrader.CheckOrigin = s.checkOrigin
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocketHandler upgrade failed: game_id=%s remote=%s err=%v", gameID, c.ClientIP(), err)
			return
		}

		room := "game:" + gameID
		client, err := ws.NewClient(conn, hub, room, playerID)
		if err != nil {
			log.Printf("WebSocketHandler NewClient failed: %v", err)
			_ = conn.Close()
			return
		}
		hub.Register(client)

		go client.WritePump()
		client.ReadPump(func(msg []byte) {
			s.handleWSMove(c, hub, client, gameID, playerID, msg)
		})
	}
}

func (s *Server) handleWSMove(c *gin.Context, hub *ws.Hub, client *ws.Client, gameID, playerID string, msg []byte) {
	var mv engine.Move
	if err := json.Unmarshal(msg, &mv); err != nil {
		hub.Unicast(client.Room, playerID, "error", gin.H{"error": "invalid move payload"})
		return
	}
	mv.GameID = gameID
	mv.PlayerID = playerID
	if mv.ID == "" {
		mv.ID = uuid.NewString()
	}

	res, err := s.Games.Submit(c.Request.Context(), gameID, mv)
	if err != nil {
		hub.Unicast(client.Room, playerID, "error", gin.H{"error": err.Error()})
		return
	}
	s.broadcastCommit(gameID, res)
}
