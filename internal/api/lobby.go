package api

import (
	"net/http"

	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createLobbyRequest struct {
	MinPlayers int `json:"minPlayers"`
	MaxPlayers int `json:"maxPlayers"`
}

func (s *Server) CreateLobbyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := playerIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := s.Users.ByID(playerID)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		var req createLobbyRequest
		_ = c.ShouldBindJSON(&req)

		id := uuid.NewString()
		roomCode := id[:6]
		l := s.Lobbies.Create(id, roomCode, playerID, u.Username, req.MinPlayers, req.MaxPlayers)

		if _, err := s.Games.CreateGame(c.Request.Context(), id, roomCode); err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusCreated, l)
	}
}

func (s *Server) JoinLobbyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := playerIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := s.Users.ByID(playerID)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		lobbyID := c.Param("id")
		l, err := s.Lobbies.Join(lobbyID, playerID, u.Username)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		s.broadcastLobby(l.ID, "lobby.updated", l)
		c.JSON(http.StatusOK, l)
	}
}

func (s *Server) GetLobbyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := s.Lobbies.Get(c.Param("id"))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

// StartLobbyHandler transitions the lobby to started and submits StartGame
// through the pipeline, seating every lobby member as a GameState player in
// join order.
func (s *Server) StartLobbyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := playerIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		lobbyID := c.Param("id")
		l, err := s.Lobbies.MarkStarted(lobbyID, playerID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ctx := c.Request.Context()
		players := make([]engine.Player, 0, len(l.Seats))
		for i, seat := range l.Seats {
			players = append(players, engine.Player{
				ID:        seat.PlayerID,
				Name:      seat.Name,
				Position:  i,
				Connected: true,
			})
		}
		if _, err := s.Games.SeatPlayers(ctx, l.ID, players); err != nil {
			writeAPIError(c, err)
			return
		}

		mv := engine.Move{
			ID:          uuid.NewString(),
			GameID:      l.ID,
			PlayerID:    playerID,
			Kind:        engine.MoveStartGame,
			SubmittedAt: 0,
		}
		res, err := s.Games.Submit(ctx, l.ID, mv)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		s.broadcastCommit(l.ID, res)
		c.JSON(http.StatusOK, pipeline.Project(res.State))
	}
}
