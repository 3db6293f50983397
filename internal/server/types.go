package server

import "time"

const (
	roomWaiting = "waiting"
	roomPlaying = "playing"
	roomEnded   = "ended"
)

const (
	gameActive     = "active"
	gameWordSolved = "word_solved"
	gameEnded      = "ended"
)

const hiddenLetter = "_"

type RoomSummary struct {
	ID      string
	Status  string
	Players int
}

type Room struct {
	ID           string
	DBID         uint
	Moderator    string
	ModeratorID  string
	Players      []Player
	MaxPlayers   int
	WordsPerGame int
	Words        []WordEntry
	Game         *GameState
	Status       string
}

type Player struct {
	ID        string
	DBID      uint
	Username  string
	Score     int
	Connected bool
}

type WordEntry struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

// GameState snapshots the roster at start-game; Players here is the
// turn-order source of truth for the round, not Room.Players.
type GameState struct {
	Words              []WordEntry
	TotalWords         int
	CurrentWordIndex   int
	CurrentWord        WordEntry
	DisplayWord        []string
	GuessedLetters     []string
	CurrentPlayerIndex int
	CurrentPlayer      string
	Players            []Player
	Status             string
	TurnStartedAt      time.Time
}

// GuessResult describes one resolved guess for the caller and the
// room broadcast.
type GuessResult struct {
	Username    string
	Letter      string
	Correct     bool
	ScoreChange int
	WordSolved  bool
}

// FinalScore is one row of the descending leaderboard at game end.
type FinalScore struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}
