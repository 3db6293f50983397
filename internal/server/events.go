package server

// Outbound message types the transport broadcasts to room members.
const (
	msgConnected             = "connected"
	msgError                 = "error"
	msgLobbyCreated          = "lobby-created"
	msgLobbyJoined           = "lobby-joined"
	msgPlayerJoined          = "player-joined"
	msgWordsSubmitted        = "words-submitted"
	msgGameStarted           = "game-started"
	msgGuessMade             = "guess-made"
	msgWordSolved            = "word-solved"
	msgNextWord              = "next-word"
	msgGameEnded             = "game-ended"
	msgTimeUpdate            = "time-update"
	msgTurnSkipped           = "turn-skipped"
	msgPlayerDisconnected    = "player-disconnected"
	msgModeratorDisconnected = "moderator-disconnected"
)

func message(msgType string, data any) map[string]any {
	return map[string]any{
		"type": msgType,
		"data": data,
	}
}

// EventPayload is the JSON body of a persisted history event.
type EventPayload struct {
	RoomID      string `json:"room_id,omitempty"`
	Player      string `json:"player,omitempty"`
	Moderator   string `json:"moderator,omitempty"`
	Category    string `json:"category,omitempty"`
	Count       int    `json:"count,omitempty"`
	Letter      string `json:"letter,omitempty"`
	Correct     bool   `json:"correct,omitempty"`
	ScoreChange int    `json:"score_change,omitempty"`
	Word        string `json:"word,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Status      string `json:"status,omitempty"`
}
