package server

import (
	"encoding/json"
	"time"

	"hangman-online/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Persistence is best-effort history, never on the game path: every
// writer tolerates a nil connection and callers only log failures.

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	record := db.Room{
		Code:         room.ID,
		Moderator:    room.Moderator,
		MaxPlayers:   room.MaxPlayers,
		WordsPerGame: room.WordsPerGame,
		Status:       room.Status,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	return s.persistEvent(room, "room_created", EventPayload{
		RoomID:    room.ID,
		Moderator: room.Moderator,
	})
}

func (s *Server) persistPlayer(room *Room, player *Player) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 || player.DBID != 0 {
		return nil
	}
	record := db.Player{
		RoomID:   room.DBID,
		Username: player.Username,
		Score:    player.Score,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	player.DBID = record.ID
	return s.persistEvent(room, "player_joined", EventPayload{
		Player: player.Username,
	})
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return nil
	}
	if payload.RoomID == "" {
		payload.RoomID = room.ID
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		RoomID:  room.DBID,
		Type:    eventType,
		Payload: datatypes.JSON(body),
	}
	return s.db.Create(&record).Error
}

// persistGameEnd records the final leaderboard and flips the room row
// to ended.
func (s *Server) persistGameEnd(room *Room, result *NextWordResult) error {
	if s.db == nil {
		return nil
	}
	if room.DBID == 0 {
		return nil
	}
	for _, score := range result.FinalScores {
		err := s.db.Model(&db.Player{}).
			Where("room_id = ? AND username = ?", room.DBID, score.Username).
			Update("score", score.Score).Error
		if err != nil {
			return err
		}
	}
	if err := s.db.Model(&db.Room{}).
		Where("id = ?", room.DBID).
		Update("status", roomEnded).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "game_ended", EventPayload{
		Winner: result.Winner.Username,
		Status: roomEnded,
	})
}
