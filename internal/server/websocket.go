package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsClient is one participant connection. Writes are serialized per
// connection; gorilla allows only one concurrent writer.
type wsClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu    sync.Mutex
	rooms map[string]map[*wsClient]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms: make(map[string]map[*wsClient]struct{}),
	}
}

func (h *wsHub) Add(roomID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.rooms[roomID] = group
	}
	group[client] = struct{}{}
}

func (h *wsHub) Remove(roomID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	if group == nil {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.rooms, roomID)
	}
}

// DropRoom forgets the room's membership without closing connections;
// evicted clients stay connected and may create or join another room.
func (h *wsHub) DropRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomID)
}

func (h *wsHub) Broadcast(roomID string, payload any) {
	h.mu.Lock()
	group := h.rooms[roomID]
	clients := make([]*wsClient, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.send(payload); err != nil {
			h.Remove(roomID, client)
		}
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &wsClient{id: uuid.NewString(), conn: conn}
	log.Printf("ws connected participant_id=%s remote=%s", client.id, c.Request.RemoteAddr)
	_ = client.send(message(msgConnected, gin.H{"participant_id": client.id}))
	go s.readWS(client)
}

func (s *Server) readWS(client *wsClient) {
	defer func() {
		_ = client.conn.Close()
		s.reconcileDisconnect(client)
	}()
	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected participant_id=%s error=%v", client.id, err)
			return
		}
		s.dispatchIntent(client, payload)
	}
}

func (s *Server) reconcileDisconnect(client *wsClient) {
	defer s.limiter.Forget(client.id)
	if roomID, ok := s.store.RoomForParticipant(client.id); ok {
		s.ws.Remove(roomID, client)
	}
	s.ReconcileDisconnect(client.id)
}

// ReconcileDisconnect applies a transport-level disconnect to engine
// state: a moderator loss tears the room down, a player loss marks the
// player disconnected and skips their turn if it was in progress.
func (s *Server) ReconcileDisconnect(participantID string) {
	roomID, ok := s.store.RoomForParticipant(participantID)
	if !ok {
		return
	}
	room, found := s.store.GetRoom(roomID)
	if !found {
		return
	}
	if room.ModeratorID == participantID {
		s.closeRoom(roomID, "moderator disconnected")
		return
	}

	var (
		playerName string
		skipped    bool
		ended      bool
	)
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		for i := range room.Players {
			if room.Players[i].ID == participantID {
				room.Players[i].Connected = false
				playerName = room.Players[i].Username
			}
		}
		game := room.Game
		if game == nil {
			return nil
		}
		for i := range game.Players {
			if game.Players[i].ID == participantID {
				game.Players[i].Connected = false
			}
		}
		if game.Status == gameActive && game.CurrentPlayer == playerName {
			advanceTurn(game, timeNowUTC())
			skipped = true
			if game.Status != gameActive {
				room.Status = roomEnded
				ended = true
			}
		}
		return nil
	})
	if err != nil || playerName == "" {
		return
	}
	s.store.DetachParticipant(participantID)

	payload := gin.H{"player": playerName}
	if room.Game != nil {
		payload["current_player"] = room.Game.CurrentPlayer
		payload["players"] = playersPayload(room.Game.Players)
	} else {
		payload["players"] = playersPayload(room.Players)
	}
	s.ws.Broadcast(roomID, message(msgPlayerDisconnected, payload))
	log.Printf("player disconnected room_id=%s player=%s", roomID, playerName)
	if err := s.persistEvent(room, "player_disconnected", EventPayload{Player: playerName}); err != nil {
		log.Printf("persist disconnect failed room_id=%s error=%v", roomID, err)
	}

	switch {
	case ended:
		s.stopTurnTimer(roomID)
		s.cancelWordTransition(roomID)
	case skipped:
		s.startTurnTimer(roomID)
	}
}

// closeRoom tears the room down unconditionally: timers cancelled,
// mappings evicted, room deleted from the registry.
func (s *Server) closeRoom(roomID, reason string) {
	s.stopTurnTimer(roomID)
	s.cancelWordTransition(roomID)
	room, ok := s.store.RemoveRoom(roomID)
	if !ok {
		return
	}
	s.ws.Broadcast(roomID, message(msgModeratorDisconnected, gin.H{"room_id": roomID}))
	s.ws.DropRoom(roomID)
	log.Printf("room closed room_id=%s reason=%q", roomID, reason)
	if err := s.persistEvent(room, "room_closed", EventPayload{Reason: reason}); err != nil {
		log.Printf("persist room close failed room_id=%s error=%v", roomID, err)
	}
}
