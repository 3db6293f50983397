package server

import (
	"net/http"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	resp := doRequest(t, ts, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "OK" {
		t.Fatalf("expected OK status, got %v", body["status"])
	}
	if body["timestamp"] == "" {
		t.Fatalf("expected a timestamp")
	}
}

func TestInfoEndpoint(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	resp := doRequest(t, ts, http.MethodGet, "/api/info", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "Multiplayer Hangman Backend" {
		t.Fatalf("unexpected name %v", body["name"])
	}
	if body["status"] != "running" {
		t.Fatalf("unexpected status %v", body["status"])
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	resp := doRequest(t, ts, http.MethodGet, "/api/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	categories, ok := body["categories"].([]any)
	if !ok || len(categories) == 0 {
		t.Fatalf("expected non-empty category list, got %v", body["categories"])
	}
	if categories[0] != "Animals" {
		t.Fatalf("categories must be sorted, got %v first", categories[0])
	}
}

func TestCategoryWordsEndpoint(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	resp := doRequest(t, ts, http.MethodGet, "/api/categories/Animals", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["category"] != "Animals" {
		t.Fatalf("unexpected category %v", body["category"])
	}
	words, ok := body["words"].([]any)
	if !ok || len(words) == 0 {
		t.Fatalf("expected words, got %v", body["words"])
	}
}

func TestCategoryWordsUnknownCategory(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	resp := doRequest(t, ts, http.MethodGet, "/api/categories/Nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListRoomsEndpoint(t *testing.T) {
	srv := newEngine()
	ts := newTestServer(t, srv.Handler())
	defer ts.Close()

	if _, err := srv.store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := srv.store.JoinLobby("ROOM0001", "alice-1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	rooms, ok := body["rooms"].([]any)
	if !ok || len(rooms) != 1 {
		t.Fatalf("expected one room, got %v", body["rooms"])
	}
	room := rooms[0].(map[string]any)
	if room["room_id"] != "ROOM0001" || room["status"] != roomWaiting {
		t.Fatalf("unexpected summary %v", room)
	}
	if room["players"] != float64(1) {
		t.Fatalf("expected one player, got %v", room["players"])
	}
}
