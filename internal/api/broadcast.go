package api

import (
	"sleeping-queens-engine/internal/pipeline"
)

// broadcastLobby pushes a lobby-room notice to every websocket client
// sitting in lobby:<id>, so the waiting-room view updates without a poll.
func (s *Server) broadcastLobby(lobbyID, typ string, payload any) {
	hub, ok := s.Hub.Get()
	if !ok {
		return
	}
	hub.Broadcast("lobby:"+lobbyID, typ, payload)
}

// broadcastCommit publishes the public projection of a just-committed move
// to game:<id>, then unicasts each player's private draw event to that
// player alone.
func (s *Server) broadcastCommit(gameID string, res *pipeline.Result) {
	hub, ok := s.Hub.Get()
	if !ok || res == nil {
		return
	}
	room := "game:" + gameID
	hub.Broadcast(room, "game.updated", pipeline.Project(res.State))
	for _, ev := range pipeline.PrivateEventsFor(gameID, res.State.Version, res.Draws) {
		hub.Unicast(room, ev.Recipient, "cards.drawn", ev)
	}
}
