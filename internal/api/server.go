// Package api wires gin HTTP/WebSocket handlers around the engine pipeline.
package api

import (
	"sleeping-queens-engine/internal/accounts"
	"sleeping-queens-engine/internal/config"
	"sleeping-queens-engine/internal/lobby"
	"sleeping-queens-engine/internal/runtime"
	"sleeping-queens-engine/internal/transport/ws"

	"github.com/gin-gonic/gin"
)

// Server holds every dependency gin handlers need: the game manager
// (pipeline + single-writer locks + defense scheduler), the lobby registry,
// the websocket hub, the user directory, and server config.
type Server struct {
	Games    *runtime.GameManager
	Lobbies  *lobby.Registry
	Users    *accounts.Directory
	Hub      *ws.HubRef
	Config   config.Config
}

// NewServer assembles a Server from its collaborators.
func NewServer(games *runtime.GameManager, lobbies *lobby.Registry, users *accounts.Directory, hub *ws.HubRef, cfg config.Config) *Server {
	return &Server{Games: games, Lobbies: lobbies, Users: users, Hub: hub, Config: cfg}
}

// RegisterRoutes mounts every handler group onto rg.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup, protected *gin.RouterGroup) {
	rg.POST("/auth/register", s.RegisterHandler())
	rg.POST("/auth/login", s.LoginHandler())

	protected.GET("/auth/me", s.MeHandler())

	protected.POST("/lobbies", s.CreateLobbyHandler())
	protected.POST("/lobbies/:id/join", s.JoinLobbyHandler())
	protected.POST("/lobbies/:id/start", s.StartLobbyHandler())
	protected.GET("/lobbies/:id", s.GetLobbyHandler())

	protected.GET("/games/:id", s.GetGameHandler())
	protected.POST("/games/:id/move", s.MoveHandler())
	protected.GET("/games/:id/ws", s.WebSocketHandler())
}
