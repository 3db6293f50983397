package server

import (
	"fmt"
	"testing"
)

func TestCreateLobbyDuplicateID(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := store.CreateLobby("ROOM0001", "mod-2", "Other", 6, 5); err != ErrRoomExists {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}
}

func TestCreateLobbyExcludesModeratorFromRoster(t *testing.T) {
	store := NewStore()
	room, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(room.Players) != 0 {
		t.Fatalf("moderator must not be in the roster, got %d players", len(room.Players))
	}
	if roomID, ok := store.RoomForParticipant("mod-1"); !ok || roomID != "ROOM0001" {
		t.Fatalf("moderator mapping missing, got %q ok=%t", roomID, ok)
	}
}

func TestJoinLobbyFillsRoom(t *testing.T) {
	const maxPlayers = 4
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", maxPlayers, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < maxPlayers; i++ {
		name := fmt.Sprintf("player-%d", i)
		if _, _, err := store.JoinLobby("ROOM0001", name, name); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
	if _, _, err := store.JoinLobby("ROOM0001", "late", "late"); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestJoinLobbySetsInitialScore(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, player, err := store.JoinLobby("ROOM0001", "alice-1", "Alice")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if player.Score != initialScore {
		t.Fatalf("expected score %d, got %d", initialScore, player.Score)
	}
	if !player.Connected {
		t.Fatalf("expected joined player to be connected")
	}
}

func TestJoinLobbyDuplicateUsername(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := store.JoinLobby("ROOM0001", "alice-1", "Alice"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, _, err := store.JoinLobby("ROOM0001", "alice-2", "Alice"); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestJoinLobbyUnknownRoom(t *testing.T) {
	store := NewStore()
	if _, _, err := store.JoinLobby("MISSING1", "alice-1", "Alice"); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestJoinLobbyRejectedOncePlaying(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.UpdateRoom("ROOM0001", func(room *Room) error {
		room.Status = roomPlaying
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, _, err := store.JoinLobby("ROOM0001", "alice-1", "Alice"); err != ErrGameInProgress {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestRemoveRoomEvictsParticipants(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateLobby("ROOM0001", "mod-1", "Mod", 6, 5); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := store.JoinLobby("ROOM0001", "alice-1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, ok := store.RemoveRoom("ROOM0001"); !ok {
		t.Fatalf("expected room removal")
	}
	if _, ok := store.RoomForParticipant("mod-1"); ok {
		t.Fatalf("moderator mapping should be evicted")
	}
	if _, ok := store.RoomForParticipant("alice-1"); ok {
		t.Fatalf("player mapping should be evicted")
	}
	if _, ok := store.GetRoom("ROOM0001"); ok {
		t.Fatalf("room should be gone")
	}
}
