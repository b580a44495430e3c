// Package calendar exposes the date overrides: blocked dates the venue will
// not take bookings for, and special dates that carry a label on the
// customer calendar.
package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"eltablero/dates"
	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
)

func GetBlockedDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	blocked, err := store.Conf.BlockedDates(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read blocked dates")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, blocked)
}

// ToggleBlockedDate flips one date's membership and returns the whole new
// set so the admin calendar can re-render from a single response.
func ToggleBlockedDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !dates.Valid(in.Date) {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	blocked, err := store.Conf.ToggleBlockedDate(ctx, in.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to toggle blocked date")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, blocked)
}

func GetSpecialDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	special, err := store.Conf.SpecialDates(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read special dates")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, special)
}

func SetSpecialDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !dates.Valid(in.Date) || strings.TrimSpace(in.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "date (YYYY-MM-DD) and name are required")
		return
	}

	if err := store.Conf.SetSpecialDate(ctx, in.Date, strings.TrimSpace(in.Name)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to set special date")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func DeleteSpecialDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := ps.ByName("date")
	if !dates.Valid(date) {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	if err := store.Conf.DeleteSpecialDate(ctx, date); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete special date")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
