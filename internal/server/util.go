package server

import (
	"crypto/rand"
	"time"
)

// newRoomID returns an 8-character uppercase alphanumeric token.
// Uniqueness is enforced by the store at creation time.
func newRoomID() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

// shuffleWords applies a uniform Fisher-Yates permutation in place
// using the server's seedable source.
func (s *Server) shuffleWords(words []WordEntry) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := len(words) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		words[i], words[j] = words[j], words[i]
	}
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
