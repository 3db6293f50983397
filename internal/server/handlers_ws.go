package server

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

type wsEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type createLobbyRequest struct {
	Username     string `json:"username" validate:"required"`
	MaxPlayers   int    `json:"max_players" validate:"omitempty,min=2,max=12"`
	WordsPerGame int    `json:"words_per_game" validate:"omitempty,min=1,max=50"`
}

type joinLobbyRequest struct {
	RoomID   string `json:"room_id" validate:"required,len=8"`
	Username string `json:"username" validate:"required"`
}

type submitWordsRequest struct {
	RoomID   string   `json:"room_id" validate:"required"`
	Words    []string `json:"words" validate:"required,min=1"`
	Category string   `json:"category"`
}

type startGameRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type makeGuessRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Letter string `json:"letter" validate:"required"`
}

func (s *Server) dispatchIntent(client *wsClient, payload []byte) {
	var envelope wsEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.sendError(client, "malformed message")
		return
	}
	switch envelope.Type {
	case "create-lobby":
		s.handleCreateLobby(client, envelope.Data)
	case "join-lobby":
		s.handleJoinLobby(client, envelope.Data)
	case "submit-words":
		s.handleSubmitWords(client, envelope.Data)
	case "start-game":
		s.handleStartGame(client, envelope.Data)
	case "make-guess":
		s.handleMakeGuess(client, envelope.Data)
	default:
		s.sendError(client, "unknown message type")
	}
}

func (s *Server) sendError(client *wsClient, text string) {
	_ = client.send(message(msgError, gin.H{"message": text}))
}

func decodeIntent(data json.RawMessage, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return err
	}
	return validate.Struct(dest)
}

func (s *Server) handleCreateLobby(client *wsClient, data json.RawMessage) {
	if !s.limiter.Allow(client.id) {
		s.sendError(client, "too many requests")
		return
	}
	var req createLobbyRequest
	if err := decodeIntent(data, &req); err != nil {
		s.sendError(client, "username is required")
		return
	}
	username, err := validateUsername(req.Username)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	maxPlayers := req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = s.cfg.DefaultMaxPlayers
	}
	if maxPlayers > maxRoomPlayers {
		maxPlayers = maxRoomPlayers
	}
	wordsPerGame := req.WordsPerGame
	if wordsPerGame == 0 {
		wordsPerGame = s.cfg.DefaultWordsPerGame
	}

	var room *Room
	for attempts := 0; attempts < 5; attempts++ {
		room, err = s.store.CreateLobby(newRoomID(), client.id, username, maxPlayers, wordsPerGame)
		if err != ErrRoomExists {
			break
		}
	}
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	s.ws.Add(room.ID, client)
	log.Printf("lobby created room_id=%s moderator=%s max_players=%d words_per_game=%d",
		room.ID, username, maxPlayers, wordsPerGame)
	if err := s.persistRoom(room); err != nil {
		log.Printf("persist room failed room_id=%s error=%v", room.ID, err)
	}
	_ = client.send(message(msgLobbyCreated, lobbySnapshot(room)))
}

func (s *Server) handleJoinLobby(client *wsClient, data json.RawMessage) {
	var req joinLobbyRequest
	if err := decodeIntent(data, &req); err != nil {
		s.sendError(client, "room id and username are required")
		return
	}
	username, err := validateUsername(req.Username)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	roomID := strings.ToUpper(req.RoomID)

	room, player, err := s.store.JoinLobby(roomID, client.id, username)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	s.ws.Add(roomID, client)
	log.Printf("player joined room_id=%s player=%s", roomID, username)
	if err := s.persistPlayer(room, player); err != nil {
		log.Printf("persist player failed room_id=%s error=%v", roomID, err)
	}
	_ = client.send(message(msgLobbyJoined, lobbySnapshot(room)))
	s.ws.Broadcast(roomID, message(msgPlayerJoined, gin.H{
		"players":    playersPayload(room.Players),
		"new_player": username,
	}))
}

func (s *Server) handleSubmitWords(client *wsClient, data json.RawMessage) {
	var req submitWordsRequest
	if err := decodeIntent(data, &req); err != nil {
		s.sendError(client, "room id and words are required")
		return
	}
	if err := validateWords(req.Words); err != nil {
		s.sendError(client, err.Error())
		return
	}
	category, err := validateCategory(req.Category)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	room, count, err := s.SubmitWords(req.RoomID, client.id, req.Words, category)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	log.Printf("words submitted room_id=%s category=%s count=%d", room.ID, category, count)
	if err := s.persistEvent(room, "words_submitted", EventPayload{Category: category, Count: count}); err != nil {
		log.Printf("persist words failed room_id=%s error=%v", room.ID, err)
	}
	s.ws.Broadcast(room.ID, message(msgWordsSubmitted, gin.H{
		"category":   category,
		"word_count": count,
		"ready":      true,
	}))
}

func (s *Server) handleStartGame(client *wsClient, data json.RawMessage) {
	var req startGameRequest
	if err := decodeIntent(data, &req); err != nil {
		s.sendError(client, "room id is required")
		return
	}
	room, err := s.StartGame(req.RoomID, client.id, timeNowUTC())
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	log.Printf("game started room_id=%s words=%d current_player=%s",
		room.ID, room.Game.TotalWords, room.Game.CurrentPlayer)
	if err := s.persistEvent(room, "game_started", EventPayload{Count: room.Game.TotalWords}); err != nil {
		log.Printf("persist start failed room_id=%s error=%v", room.ID, err)
	}
	s.ws.Broadcast(room.ID, message(msgGameStarted, gameSnapshot(room, s.cfg.TurnSeconds)))
	s.startTurnTimer(room.ID)
}

func (s *Server) handleMakeGuess(client *wsClient, data json.RawMessage) {
	if !s.limiter.Allow(client.id) {
		s.sendError(client, "too many requests")
		return
	}
	var req makeGuessRequest
	if err := decodeIntent(data, &req); err != nil {
		s.sendError(client, "room id and letter are required")
		return
	}
	letter, err := validateLetter(req.Letter)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	room, result, err := s.MakeGuess(req.RoomID, client.id, letter, timeNowUTC())
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	game := room.Game
	log.Printf("guess made room_id=%s player=%s letter=%s correct=%t score_change=%d",
		room.ID, result.Username, result.Letter, result.Correct, result.ScoreChange)
	if err := s.persistEvent(room, "guess_made", EventPayload{
		Player:      result.Username,
		Letter:      result.Letter,
		Correct:     result.Correct,
		ScoreChange: result.ScoreChange,
	}); err != nil {
		log.Printf("persist guess failed room_id=%s error=%v", room.ID, err)
	}
	s.ws.Broadcast(room.ID, message(msgGuessMade, gin.H{
		"letter":          result.Letter,
		"player":          result.Username,
		"correct":         result.Correct,
		"score_change":    result.ScoreChange,
		"display_word":    game.DisplayWord,
		"guessed_letters": game.GuessedLetters,
		"current_player":  game.CurrentPlayer,
		"players":         playersPayload(game.Players),
	}))

	if result.WordSolved {
		s.stopTurnTimer(room.ID)
		s.ws.Broadcast(room.ID, message(msgWordSolved, gin.H{
			"solver":  result.Username,
			"word":    game.CurrentWord.Word,
			"players": playersPayload(game.Players),
		}))
		s.scheduleWordTransition(room.ID)
		return
	}
	if game.Status == gameActive {
		s.startTurnTimer(room.ID)
	}
}
