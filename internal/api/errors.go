package api

import (
	"errors"
	"log"
	"net/http"

	"sleeping-queens-engine/internal/accounts"
	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/lobby"
	"sleeping-queens-engine/internal/store"

	"github.com/gin-gonic/gin"
)

// writeAPIError maps a pipeline/store/lobby sentinel error to the right
// HTTP status, logging anything it doesn't recognize rather than leaking it
// to the client verbatim.
func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch {
	case errors.Is(err, engine.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{"error": "not-your-turn"})
	case errors.Is(err, engine.ErrIllegalMove):
		c.JSON(http.StatusBadRequest, gin.H{"error": "illegal-move", "detail": err.Error()})
	case errors.Is(err, engine.ErrStaleVersion), errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "stale-version"})
	case errors.Is(err, engine.ErrGameNotFound), errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game-not-found"})
	case errors.Is(err, engine.ErrGameEnded):
		c.JSON(http.StatusConflict, gin.H{"error": "game-ended"})
	case errors.Is(err, engine.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
	case errors.Is(err, engine.ErrUnknownMoveKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "illegal-move", "detail": "unknown move kind"})
	case errors.Is(err, lobby.ErrLobbyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "lobby-not-found"})
	case errors.Is(err, lobby.ErrLobbyFull):
		c.JSON(http.StatusConflict, gin.H{"error": "lobby-full"})
	case errors.Is(err, lobby.ErrAlreadySeated):
		c.JSON(http.StatusConflict, gin.H{"error": "already-seated"})
	case errors.Is(err, lobby.ErrNotHost):
		c.JSON(http.StatusForbidden, gin.H{"error": "not-host"})
	case errors.Is(err, lobby.ErrTooFewPlayers):
		c.JSON(http.StatusBadRequest, gin.H{"error": "too-few-players"})
	case errors.Is(err, accounts.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username-taken"})
	case errors.Is(err, accounts.ErrNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid-credentials"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
