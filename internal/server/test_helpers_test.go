package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hangman-online/internal/config"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func newEngine() *Server {
	return New(nil, config.Default())
}

// setupPlayingRoom builds a started two-player game with a fixed word
// submission; the engine is driven directly, no transport involved.
func setupPlayingRoom(t *testing.T, srv *Server, words []string, wordsPerGame int) string {
	t.Helper()
	const roomID = "ABCDEFGH"
	if _, err := srv.store.CreateLobby(roomID, "mod-1", "Mod", 6, wordsPerGame); err != nil {
		t.Fatalf("create lobby: %v", err)
	}
	if _, _, err := srv.store.JoinLobby(roomID, "alice-1", "Alice"); err != nil {
		t.Fatalf("join Alice: %v", err)
	}
	if _, _, err := srv.store.JoinLobby(roomID, "bob-1", "Bob"); err != nil {
		t.Fatalf("join Bob: %v", err)
	}
	if _, _, err := srv.SubmitWords(roomID, "mod-1", words, "Animals"); err != nil {
		t.Fatalf("submit words: %v", err)
	}
	if _, err := srv.StartGame(roomID, "mod-1", time.Now().UTC()); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return roomID
}

func roomState(t *testing.T, srv *Server, roomID string) Room {
	t.Helper()
	var copied Room
	_, err := srv.store.UpdateRoom(roomID, func(room *Room) error {
		copied = *room
		return nil
	})
	if err != nil {
		t.Fatalf("read room: %v", err)
	}
	return copied
}

func gamePlayerScore(t *testing.T, game *GameState, username string) int {
	t.Helper()
	for _, player := range game.Players {
		if player.Username == username {
			return player.Score
		}
	}
	t.Fatalf("player %s not in game snapshot", username)
	return 0
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			t.Fatalf("marshal body: %v", marshalErr)
		}
		req, err = http.NewRequest(method, ts.URL+path, bytes.NewReader(data))
	} else {
		req, err = http.NewRequest(method, ts.URL+path, nil)
	}
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
