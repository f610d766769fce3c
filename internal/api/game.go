package api

import (
	"net/http"

	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetGameHandler returns the public projection of gameID's current state.
// A player's own hand never travels this path; drawn cards are delivered
// as private events over the websocket instead.
func (s *Server) GetGameHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("id")
		st, err := s.Games.Load(c.Request.Context(), gameID)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, pipeline.Project(st))
	}
}

// MoveHandler submits one move for gameID through the pipeline, broadcasts
// the resulting projection to the room, and returns it to the caller too
// (so a client that missed the broadcast still sees its own move commit).
func (s *Server) MoveHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := playerIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		gameID := c.Param("id")

		var mv engine.Move
		if err := c.ShouldBindJSON(&mv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		mv.GameID = gameID
		mv.PlayerID = playerID
		if mv.ID == "" {
			mv.ID = uuid.NewString()
		}

		res, err := s.Games.Submit(c.Request.Context(), gameID, mv)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		s.broadcastCommit(gameID, res)
		c.JSON(http.StatusOK, pipeline.Project(res.State))
	}
}
