package server

import (
	"sort"
	"sync"
)

// Store owns every live room and the participant -> room reverse index.
// All mutations of a room happen under the store mutex, one event at a
// time; transport and timers never touch room state directly.
type Store struct {
	mu              sync.Mutex
	rooms           map[string]*Room
	participantRoom map[string]string
}

func NewStore() *Store {
	return &Store{
		rooms:           make(map[string]*Room),
		participantRoom: make(map[string]string),
	}
}

func (s *Store) CreateLobby(roomID, participantID, username string, maxPlayers, wordsPerGame int) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; ok {
		return nil, ErrRoomExists
	}
	room := &Room{
		ID:           roomID,
		Moderator:    username,
		ModeratorID:  participantID,
		Players:      []Player{},
		MaxPlayers:   maxPlayers,
		WordsPerGame: wordsPerGame,
		Status:       roomWaiting,
	}
	s.rooms[roomID] = room
	s.participantRoom[participantID] = roomID
	return room, nil
}

func (s *Store) JoinLobby(roomID, participantID, username string) (*Room, *Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	if room.Status != roomWaiting {
		return nil, nil, ErrGameInProgress
	}
	if len(room.Players) >= room.MaxPlayers {
		return nil, nil, ErrRoomFull
	}
	for i := range room.Players {
		if room.Players[i].Username == username {
			return nil, nil, ErrUsernameTaken
		}
	}
	room.Players = append(room.Players, Player{
		ID:        participantID,
		Username:  username,
		Score:     initialScore,
		Connected: true,
	})
	s.participantRoom[participantID] = roomID
	return room, &room.Players[len(room.Players)-1], nil
}

func (s *Store) GetRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	return room, ok
}

// UpdateRoom runs update as one atomic step against the room. The room
// is left untouched when update returns an error.
func (s *Store) UpdateRoom(id string, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := update(room); err != nil {
		return nil, err
	}
	return room, nil
}

// RemoveRoom deletes the room and evicts every participant mapping that
// pointed at it, the moderator's included.
func (s *Store) RemoveRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	delete(s.rooms, id)
	delete(s.participantRoom, room.ModeratorID)
	for i := range room.Players {
		delete(s.participantRoom, room.Players[i].ID)
	}
	return room, true
}

func (s *Store) RoomForParticipant(participantID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roomID, ok := s.participantRoom[participantID]
	return roomID, ok
}

func (s *Store) DetachParticipant(participantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participantRoom, participantID)
}

func (s *Store) ListRoomSummaries() []RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]RoomSummary, 0, len(s.rooms))
	for _, room := range s.rooms {
		list = append(list, RoomSummary{
			ID:      room.ID,
			Status:  room.Status,
			Players: len(room.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}
