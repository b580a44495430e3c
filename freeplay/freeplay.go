// Package freeplay manages open tables customers can join without a
// reservation. A table has a fixed capacity and a player may sit at it once.
package freeplay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eltablero/dates"
	"eltablero/globals"
	"eltablero/models"
	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrTableFull     = errors.New("table full")
	ErrAlreadyJoined = errors.New("already signed up")
)

// addPlayer returns the player list with p appended, or an error leaving the
// list unchanged when p already sits at the table or the table is full.
func addPlayer(players []models.Player, capacity int, p models.Player) ([]models.Player, error) {
	for _, existing := range players {
		if existing.UserID == p.UserID {
			return players, ErrAlreadyJoined
		}
	}
	if len(players) >= capacity {
		return players, ErrTableFull
	}
	return append(players, p), nil
}

// removePlayer filters userID out; removing an absent player is a no-op.
func removePlayer(players []models.Player, userID string) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.UserID != userID {
			out = append(out, p)
		}
	}
	return out
}

func GetFreePlayTables(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := store.FreePlay.ReadAll(ctx, nil)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list free-play tables")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateFreePlayTable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Number    int    `json:"number"`
		Game      string `json:"game"`
		Capacity  int    `json:"capacity"`
		Date      string `json:"date"`
		TimeRange string `json:"timeRange"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if in.Number <= 0 || strings.TrimSpace(in.Game) == "" || in.Capacity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "number, game and capacity are required")
		return
	}

	table := models.FreePlayTable{
		ID:        utils.GenID(),
		Number:    in.Number,
		Game:      strings.TrimSpace(in.Game),
		Capacity:  in.Capacity,
		Date:      dates.Normalize(in.Date),
		TimeRange: strings.TrimSpace(in.TimeRange),
		Players:   []models.Player{},
	}
	if err := store.FreePlay.Create(ctx, table); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create free-play table")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, table)
}

func UpdateFreePlayTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Number    int    `json:"number"`
		Game      string `json:"game"`
		Capacity  int    `json:"capacity"`
		Date      string `json:"date"`
		TimeRange string `json:"timeRange"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if in.Number <= 0 || strings.TrimSpace(in.Game) == "" || in.Capacity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "number, game and capacity are required")
		return
	}

	set := bson.M{
		"number":    in.Number,
		"game":      strings.TrimSpace(in.Game),
		"capacity":  in.Capacity,
		"date":      dates.Normalize(in.Date),
		"timeRange": strings.TrimSpace(in.TimeRange),
	}
	err := store.FreePlay.Update(ctx, ps.ByName("id"), set)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Table not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update free-play table")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func DeleteFreePlayTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.FreePlay.Delete(ctx, ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete free-play table")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func JoinFreePlayTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var in struct {
		UserName string `json:"userName"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Phone) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "phone is required")
		return
	}

	table, found, err := store.FreePlay.ReadOne(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read free-play table")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Table not found")
		return
	}

	players, err := addPlayer(table.Players, table.Capacity, models.Player{
		UserID:   userID,
		UserName: strings.TrimSpace(in.UserName),
		Phone:    strings.TrimSpace(in.Phone),
	})
	if err == ErrAlreadyJoined || err == ErrTableFull {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	if err := store.FreePlay.Update(ctx, table.ID, bson.M{"players": players}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to join table")
		return
	}
	table.Players = players
	utils.RespondWithJSON(w, http.StatusOK, table)
}

func LeaveFreePlayTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	table, found, err := store.FreePlay.ReadOne(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read free-play table")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Table not found")
		return
	}

	players := removePlayer(table.Players, userID)
	if err := store.FreePlay.Update(ctx, table.ID, bson.M{"players": players}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to leave table")
		return
	}
	table.Players = players
	utils.RespondWithJSON(w, http.StatusOK, table)
}
