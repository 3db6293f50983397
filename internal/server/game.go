package server

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

const initialScore = 10

// NextWordResult reports whether advancing the word finished the round.
type NextWordResult struct {
	GameEnded   bool
	FinalScores []FinalScore
	Winner      FinalScore
}

// SubmitWords stores the moderator's word list, fully replacing any
// prior submission. Words are lowercased and trimmed; empty entries are
// dropped.
func (s *Server) SubmitWords(roomID, participantID string, words []string, category string) (*Room, int, error) {
	if category == "" {
		category = "Custom"
	}
	stored := 0
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		if room.ModeratorID != participantID {
			return ErrNotModerator
		}
		entries := make([]WordEntry, 0, len(words))
		for _, word := range words {
			normalized := strings.ToLower(strings.TrimSpace(word))
			if normalized == "" {
				continue
			}
			entries = append(entries, WordEntry{Word: normalized, Category: category})
		}
		room.Words = entries
		stored = len(entries)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return room, stored, nil
}

// StartGame resets scores, shuffles the submission, truncates the queue
// to wordsPerGame and moves the room to playing. The player roster is
// snapshotted into the game state; turn order is fixed from here on.
func (s *Server) StartGame(roomID, participantID string, now time.Time) (*Room, error) {
	return s.store.UpdateRoom(roomID, func(room *Room) error {
		if room.ModeratorID != participantID {
			return ErrNotModerator
		}
		if len(room.Players) < s.cfg.MinPlayersToStart {
			return ErrNotEnoughPlayers
		}
		if len(room.Words) == 0 {
			return ErrNoWords
		}

		for i := range room.Players {
			room.Players[i].Score = initialScore
		}

		queue := make([]WordEntry, len(room.Words))
		copy(queue, room.Words)
		s.shuffleWords(queue)

		total := room.WordsPerGame
		if len(queue) < total {
			total = len(queue)
		}
		queue = queue[:total]

		game := &GameState{
			Words:          queue,
			TotalWords:     total,
			CurrentWord:    queue[0],
			DisplayWord:    hiddenMask(queue[0].Word),
			GuessedLetters: []string{},
			Players:        snapshotPlayers(room.Players),
			Status:         gameActive,
			TurnStartedAt:  now,
		}
		active := connectedPlayers(game.Players)
		if len(active) == 0 {
			return ErrNotEnoughPlayers
		}
		game.CurrentPlayer = active[0].Username

		room.Game = game
		room.Status = roomPlaying
		return nil
	})
}

// MakeGuess resolves one letter guess for the participant whose turn it
// is. Every failure leaves the room untouched. The turn advances on
// success whether or not the guess was correct, including the guess
// that solves the word.
func (s *Server) MakeGuess(roomID, participantID, letter string, now time.Time) (*Room, *GuessResult, error) {
	var result GuessResult
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		game := room.Game
		if game == nil {
			return ErrGameNotFound
		}
		player := findGamePlayer(game, participantID)
		if player == nil {
			return ErrPlayerNotFound
		}
		if game.CurrentPlayer != player.Username {
			return ErrNotYourTurn
		}
		if game.Status != gameActive {
			return ErrGameNotActive
		}
		guess := strings.ToLower(letter)
		if lo.Contains(game.GuessedLetters, guess) {
			return ErrLetterGuessed
		}

		game.GuessedLetters = append(game.GuessedLetters, guess)
		word := game.CurrentWord.Word
		result = GuessResult{Username: player.Username, Letter: guess}

		if strings.Contains(word, guess) {
			for i, ch := range strings.Split(word, "") {
				if ch == guess {
					game.DisplayWord[i] = guess
				}
			}
			player.Score++
			result.Correct = true
			result.ScoreChange = 1
			if !lo.Contains(game.DisplayWord, hiddenLetter) {
				player.Score++ // bonus for solving the word
				result.ScoreChange = 2
				result.WordSolved = true
				game.Status = gameWordSolved
			}
		} else {
			if player.Score > 0 {
				player.Score--
			}
			result.ScoreChange = -1
		}

		advanceTurn(game, now)
		return nil
	})
	if err != nil {
		if err == ErrRoomNotFound {
			err = ErrGameNotFound
		}
		return nil, nil, err
	}
	return room, &result, nil
}

// NextWord moves the round to the next queued word, or finalizes the
// game when the queue is exhausted: scores are ranked descending with
// roster order breaking ties, and both game and room end.
func (s *Server) NextWord(roomID string, now time.Time) (*Room, *NextWordResult, error) {
	var result NextWordResult
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		game := room.Game
		if game == nil {
			return ErrGameNotFound
		}
		if game.CurrentWordIndex+1 >= game.TotalWords {
			result.FinalScores = rankScores(game.Players)
			result.Winner = result.FinalScores[0]
			result.GameEnded = true
			game.Status = gameEnded
			room.Status = roomEnded
			return nil
		}
		game.CurrentWordIndex++
		game.CurrentWord = game.Words[game.CurrentWordIndex]
		game.DisplayWord = hiddenMask(game.CurrentWord.Word)
		game.GuessedLetters = []string{}
		game.Status = gameActive

		// Turn order restarts at the first connected player each word.
		active := connectedPlayers(game.Players)
		if len(active) == 0 {
			game.Status = gameEnded
			room.Status = roomEnded
			result.FinalScores = rankScores(game.Players)
			result.Winner = result.FinalScores[0]
			result.GameEnded = true
			return nil
		}
		game.CurrentPlayerIndex = 0
		game.CurrentPlayer = active[0].Username
		game.TurnStartedAt = now
		return nil
	})
	if err != nil {
		if err == ErrRoomNotFound {
			err = ErrGameNotFound
		}
		return nil, nil, err
	}
	return room, &result, nil
}

// advanceTurn hands the turn to the next connected player in snapshot
// order, wrapping around. With nobody connected the game degrades to
// ended instead of indexing into an empty rotation.
func advanceTurn(game *GameState, now time.Time) {
	active := connectedPlayers(game.Players)
	if len(active) == 0 {
		game.Status = gameEnded
		return
	}
	current := -1
	for i := range active {
		if active[i].Username == game.CurrentPlayer {
			current = i
			break
		}
	}
	next := (current + 1) % len(active)
	game.CurrentPlayerIndex = next
	game.CurrentPlayer = active[next].Username
	game.TurnStartedAt = now
}

func connectedPlayers(players []Player) []Player {
	return lo.Filter(players, func(p Player, _ int) bool {
		return p.Connected
	})
}

func findGamePlayer(game *GameState, participantID string) *Player {
	for i := range game.Players {
		if game.Players[i].ID == participantID {
			return &game.Players[i]
		}
	}
	return nil
}

func snapshotPlayers(players []Player) []Player {
	snapshot := make([]Player, len(players))
	copy(snapshot, players)
	return snapshot
}

func hiddenMask(word string) []string {
	mask := make([]string, len(word))
	for i := range mask {
		mask[i] = hiddenLetter
	}
	return mask
}

// rankScores sorts descending by score; the stable sort keeps roster
// order for ties.
func rankScores(players []Player) []FinalScore {
	scores := lo.Map(players, func(p Player, _ int) FinalScore {
		return FinalScore{Username: p.Username, Score: p.Score}
	})
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
