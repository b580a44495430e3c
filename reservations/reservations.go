// Package reservations holds the booking handlers. Creation snapshots the
// current price per person and writes without re-checking occupancy: the
// availability check happens in the booking modal via GET /api/availability,
// and two customers who both saw a free table can both book it.
package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"eltablero/availability"
	"eltablero/dates"
	"eltablero/globals"
	"eltablero/models"
	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var in bookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validateBooking(in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	price, err := store.Conf.Price(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read price")
		return
	}

	res := models.Reservation{
		ID:             utils.GenID(),
		UserID:         userID,
		UserName:       strings.TrimSpace(in.UserName),
		UserEmail:      strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Date:           dates.Normalize(in.Date),
		Time:           in.Time,
		People:         in.People,
		Game:           gameOrDefault(in.Game),
		PricePerPerson: price,
		Total:          price * in.People,
		Status:         models.StatusPendingPayment,
		CreatedAt:      time.Now().UnixMilli(),
	}

	if err := store.Reservations.Create(ctx, res); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, res)
}

// GetReservations lists newest-first. Admins see everything and may filter
// with ?userId= and ?date=; customers always get their own bookings only.
func GetReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	role, _ := r.Context().Value(globals.RoleKey).(string)

	filter := bson.M{}
	if role == models.RoleAdmin {
		if q := r.URL.Query().Get("userId"); q != "" {
			filter["userId"] = q
		}
		if q := r.URL.Query().Get("date"); q != "" {
			filter["date"] = dates.Normalize(q)
		}
	} else {
		filter["userId"] = userID
	}

	list, err := store.Reservations.ReadAll(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list reservations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetAvailability answers the booking modal's query. Errors never leak a
// free table: any failure reports the slot as full.
func GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := dates.Normalize(r.URL.Query().Get("date"))
	slot := r.URL.Query().Get("time")
	if !dates.Valid(date) || slot == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "date and time are required")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, availability.Check(ctx, store.Reservations, date, slot))
}

func UpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	stored, found, err := store.Reservations.ReadOne(ctx, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read reservation")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}

	var in bookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set, err := editSet(in)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Total follows the party size at the price snapshotted when the booking
	// was made, never the current price.
	set["total"] = stored.PricePerPerson * in.People

	if err := store.Reservations.Update(ctx, id, set); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update reservation")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func UpdateReservationStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidStatus(in.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, ErrBadStatus.Error())
		return
	}

	err := store.Reservations.Update(ctx, ps.ByName("id"), bson.M{"status": in.Status})
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.Reservations.Delete(ctx, ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func BulkDeleteReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.IDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "ids are required")
		return
	}

	if err := store.Reservations.DeleteMany(ctx, in.IDs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete reservations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": len(in.IDs)})
}
