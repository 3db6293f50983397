package server

import "github.com/samber/lo"

func lobbySnapshot(room *Room) map[string]any {
	return map[string]any{
		"room_id":        room.ID,
		"moderator":      room.Moderator,
		"players":        playersPayload(room.Players),
		"max_players":    room.MaxPlayers,
		"words_per_game": room.WordsPerGame,
		"status":         room.Status,
	}
}

// gameSnapshot never includes the secret word; clients only see the
// mask, the category and the guessed set.
func gameSnapshot(room *Room, timeLeft int) map[string]any {
	game := room.Game
	if game == nil {
		return lobbySnapshot(room)
	}
	return map[string]any{
		"room_id":         room.ID,
		"display_word":    game.DisplayWord,
		"category":        game.CurrentWord.Category,
		"current_player":  game.CurrentPlayer,
		"players":         playersPayload(game.Players),
		"word_number":     game.CurrentWordIndex + 1,
		"total_words":     game.TotalWords,
		"guessed_letters": game.GuessedLetters,
		"status":          game.Status,
		"time_left":       timeLeft,
	}
}

func playersPayload(players []Player) []map[string]any {
	return lo.Map(players, func(p Player, _ int) map[string]any {
		return map[string]any{
			"username":  p.Username,
			"score":     p.Score,
			"connected": p.Connected,
		}
	})
}
