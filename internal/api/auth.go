package api

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"sleeping-queens-engine/internal/authn"

	"github.com/gin-gonic/gin"
)

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
}

// fakeHash normalizes login timing when the username doesn't exist, so a
// failed lookup takes the same bcrypt-compare time as a wrong password.
const fakeHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8lvZ9i8a9kaI0s5momkGLumZ5qX6e."

func (s *Server) RegisterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if n := utf8.RuneCountInString(req.Username); n < 3 || n > 32 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-32 characters"})
			return
		}
		if utf8.RuneCountInString(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
			return
		}

		hash, err := authn.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash error"})
			return
		}
		u, err := s.Users.Create(req.Username, hash)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		token, err := authn.GenerateToken(u.ID, u.Username, s.Config)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusCreated, authResponse{Token: token, PlayerID: u.ID, Username: u.Username})
	}
}

func (s *Server) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		u, err := s.Users.ByUsername(req.Username)
		pwHash := fakeHash
		found := err == nil
		if found {
			pwHash = u.PasswordHash
		}
		// Always compare exactly once per request, win or lose, to avoid a
		// timing side channel that distinguishes "no such user" from "wrong
		// password".
		ok := authn.CheckPassword(pwHash, req.Password)
		if !ok || !found {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid-credentials"})
			return
		}

		token, err := authn.GenerateToken(u.ID, u.Username, s.Config)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, authResponse{Token: token, PlayerID: u.ID, Username: u.Username})
	}
}

func (s *Server) MeHandler() gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"playerId": u.ID, "username": u.Username})
	}
}
