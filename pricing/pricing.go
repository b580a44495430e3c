// Package pricing serves the per-person price and the bank transfer alias
// shown in the payment step of the booking modal.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
)

func GetPrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	price, err := store.Conf.Price(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read price")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"price": price})
}

// SetPrice changes the price for future bookings only; totals already
// snapshotted on reservations stay as written.
func SetPrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Price int `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "price must be a positive integer")
		return
	}

	if err := store.Conf.SetPrice(ctx, in.Price); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to set price")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"price": in.Price})
}

func GetAlias(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	alias, err := store.Conf.Alias(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read alias")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"alias": alias})
}

func SetAlias(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Alias string `json:"alias"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Alias) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "alias is required")
		return
	}

	if err := store.Conf.SetAlias(ctx, strings.TrimSpace(in.Alias)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to set alias")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"alias": in.Alias})
}

// GetAliasQR renders the transfer alias as a QR code PNG, optionally with
// the amount the customer has to transfer.
func GetAliasQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	alias, err := store.Conf.Alias(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read alias")
		return
	}

	content := alias
	if q := r.URL.Query().Get("amount"); q != "" {
		amount, err := strconv.Atoi(q)
		if err != nil || amount <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "amount must be a positive integer")
			return
		}
		content = fmt.Sprintf("%s|%d", alias, amount)
	}

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
