package server

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// turnTimer is one countdown for one room. Stopping is idempotent so a
// supersede and a natural expiry cannot double-close the channel.
type turnTimer struct {
	cancel chan struct{}
	once   sync.Once
}

func (t *turnTimer) stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}

// startTurnTimer begins the countdown for the room's current turn,
// cancelling and replacing any countdown already live for that room.
func (s *Server) startTurnTimer(roomID string) {
	t := &turnTimer{cancel: make(chan struct{})}
	s.timersMu.Lock()
	if prev, ok := s.timers[roomID]; ok {
		prev.stop()
	}
	s.timers[roomID] = t
	s.timersMu.Unlock()
	go s.runTurnTimer(roomID, t)
}

func (s *Server) stopTurnTimer(roomID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if t, ok := s.timers[roomID]; ok {
		t.stop()
		delete(s.timers, roomID)
	}
}

// clearTurnTimer removes t from the registry only if it is still the
// room's registered timer; a false return means t was superseded.
func (s *Server) clearTurnTimer(roomID string, t *turnTimer) bool {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if current, ok := s.timers[roomID]; ok && current == t {
		delete(s.timers, roomID)
		return true
	}
	return false
}

func (s *Server) runTurnTimer(roomID string, t *turnTimer) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	remaining := s.cfg.TurnSeconds
	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			remaining--
			if remaining > 0 {
				s.ws.Broadcast(roomID, message(msgTimeUpdate, gin.H{
					"time_left": remaining,
				}))
				continue
			}
			if !s.clearTurnTimer(roomID, t) {
				return
			}
			s.skipTurn(roomID)
			return
		}
	}
}

// skipTurn advances past a player who ran out the clock. No scoring
// effect; same rotation as a resolved guess.
func (s *Server) skipTurn(roomID string) {
	stillActive := false
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		game := room.Game
		if game == nil || game.Status != gameActive {
			return ErrGameNotActive
		}
		advanceTurn(game, timeNowUTC())
		stillActive = game.Status == gameActive
		if !stillActive {
			room.Status = roomEnded
		}
		return nil
	})
	if err != nil {
		return
	}
	s.ws.Broadcast(roomID, message(msgTurnSkipped, gin.H{
		"current_player": room.Game.CurrentPlayer,
		"players":        playersPayload(room.Game.Players),
		"time_left":      s.cfg.TurnSeconds,
	}))
	log.Printf("turn skipped room_id=%s next_player=%s", roomID, room.Game.CurrentPlayer)
	if stillActive {
		s.startTurnTimer(roomID)
		return
	}
	if err := s.persistEvent(room, "game_ended", EventPayload{Reason: "no connected players"}); err != nil {
		log.Printf("persist game end failed room_id=%s error=%v", roomID, err)
	}
}

// scheduleWordTransition paces the word-solved -> next-word transition
// so clients can show the solved word before the round moves on.
func (s *Server) scheduleWordTransition(roomID string) {
	delay := time.Duration(s.cfg.WordTransitionSeconds) * time.Second
	s.transitionsMu.Lock()
	if prev, ok := s.transitions[roomID]; ok {
		prev.Stop()
	}
	s.transitions[roomID] = time.AfterFunc(delay, func() {
		s.transitionsMu.Lock()
		delete(s.transitions, roomID)
		s.transitionsMu.Unlock()
		s.advanceWord(roomID)
	})
	s.transitionsMu.Unlock()
}

func (s *Server) cancelWordTransition(roomID string) {
	s.transitionsMu.Lock()
	defer s.transitionsMu.Unlock()
	if timer, ok := s.transitions[roomID]; ok {
		timer.Stop()
		delete(s.transitions, roomID)
	}
}

func (s *Server) advanceWord(roomID string) {
	room, result, err := s.NextWord(roomID, timeNowUTC())
	if err != nil {
		return
	}
	if result.GameEnded {
		s.stopTurnTimer(roomID)
		s.ws.Broadcast(roomID, message(msgGameEnded, gin.H{
			"final_scores": result.FinalScores,
			"winner":       result.Winner,
		}))
		log.Printf("game ended room_id=%s winner=%s score=%d", roomID, result.Winner.Username, result.Winner.Score)
		if err := s.persistGameEnd(room, result); err != nil {
			log.Printf("persist game end failed room_id=%s error=%v", roomID, err)
		}
		return
	}
	s.ws.Broadcast(roomID, message(msgNextWord, gameSnapshot(room, s.cfg.TurnSeconds)))
	s.startTurnTimer(roomID)
}
