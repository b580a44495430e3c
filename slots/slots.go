// Package slots manages the configurable time-slot catalog. Slots are
// labels with a display rank; deleting one never touches reservations that
// already carry its label.
package slots

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"eltablero/models"
	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// nextRank places a new slot after every existing one. Ranks are not
// required to be dense, only ordered.
func nextRank(existing []models.TimeSlot) int {
	max := 0
	for _, s := range existing {
		if s.Order > max {
			max = s.Order
		}
	}
	return max + 1
}

func GetTimeSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	list, err := store.TimeSlots.ReadAll(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list time slots")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateTimeSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Label) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "label is required")
		return
	}

	existing, err := store.TimeSlots.ReadAll(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read time slots")
		return
	}

	slot := models.TimeSlot{
		ID:     utils.GenID(),
		Label:  strings.TrimSpace(in.Label),
		Active: true,
		Order:  nextRank(existing),
	}
	if err := store.TimeSlots.Create(ctx, slot); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create time slot")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, slot)
}

func ToggleTimeSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	slot, found, err := store.TimeSlots.ReadOne(ctx, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read time slot")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Time slot not found")
		return
	}

	if err := store.TimeSlots.Update(ctx, id, bson.M{"active": !slot.Active}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to toggle time slot")
		return
	}
	slot.Active = !slot.Active
	utils.RespondWithJSON(w, http.StatusOK, slot)
}

func DeleteTimeSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.TimeSlots.Delete(ctx, ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete time slot")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
