package freeplay

import (
	"testing"

	"eltablero/models"
)

func TestAddPlayer(t *testing.T) {
	ana := models.Player{UserID: "u1", UserName: "Ana", Phone: "555-0001"}
	bruno := models.Player{UserID: "u2", UserName: "Bruno", Phone: "555-0002"}

	players, err := addPlayer(nil, 2, ana)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	players, err = addPlayer(players, 2, bruno)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("len = %d, want 2", len(players))
	}
}

func TestAddPlayerRejectsDuplicate(t *testing.T) {
	ana := models.Player{UserID: "u1", UserName: "Ana"}
	players, _ := addPlayer(nil, 4, ana)

	got, err := addPlayer(players, 4, models.Player{UserID: "u1", UserName: "Ana again"})
	if err != ErrAlreadyJoined {
		t.Fatalf("got %v, want ErrAlreadyJoined", err)
	}
	if len(got) != 1 {
		t.Fatalf("player list changed on rejected join: len = %d", len(got))
	}
}

func TestAddPlayerRejectsFullTable(t *testing.T) {
	players := []models.Player{{UserID: "u1"}, {UserID: "u2"}}

	got, err := addPlayer(players, 2, models.Player{UserID: "u3"})
	if err != ErrTableFull {
		t.Fatalf("got %v, want ErrTableFull", err)
	}
	if len(got) != 2 {
		t.Fatalf("player list changed on rejected join: len = %d", len(got))
	}
}

func TestRemovePlayerIdempotent(t *testing.T) {
	players := []models.Player{{UserID: "u1"}, {UserID: "u2"}}

	players = removePlayer(players, "u1")
	if len(players) != 1 || players[0].UserID != "u2" {
		t.Fatalf("unexpected players after leave: %+v", players)
	}

	// Leaving twice changes nothing.
	players = removePlayer(players, "u1")
	if len(players) != 1 {
		t.Fatalf("second leave mutated the list: %+v", players)
	}
}
