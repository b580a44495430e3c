// Package reports builds the printable day sheet the staff works from: one
// section per active time slot with its reservations and the day's revenue.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"eltablero/dates"
	"eltablero/models"
	"eltablero/store"
	"eltablero/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// dayRevenue sums the snapshotted totals of non-rejected reservations.
func dayRevenue(list []models.Reservation) int {
	sum := 0
	for _, r := range list {
		if r.Status != models.StatusRejected {
			sum += r.Total
		}
	}
	return sum
}

// bySlot groups reservations under their time-slot label.
func bySlot(list []models.Reservation) map[string][]models.Reservation {
	grouped := make(map[string][]models.Reservation)
	for _, r := range list {
		grouped[r.Time] = append(grouped[r.Time], r)
	}
	return grouped
}

func DaySheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	date := ps.ByName("date")
	if !dates.Valid(date) {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	reservations, err := store.Reservations.ReadAll(ctx, bson.M{"date": date})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read reservations")
		return
	}
	slots, err := store.TimeSlots.ReadAll(ctx, bson.M{"active": true})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read time slots")
		return
	}
	alias, err := store.Conf.Alias(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read alias")
		return
	}

	qrPNG, err := qrcode.Encode(alias, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	grouped := bySlot(reservations)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Day sheet %s", date))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Transfer alias: %s", alias))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("alias-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("alias-qr", 165, 10, 30, 30, false, imageOpts, 0, "")
	pdf.Ln(28)

	for _, slot := range slots {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, slot.Label)
		pdf.Ln(10)

		entries := grouped[slot.Label]
		if len(entries) == 0 {
			pdf.SetFont("Arial", "I", 10)
			pdf.Cell(0, 8, "No reservations")
			pdf.Ln(10)
			continue
		}

		pdf.SetFont("Arial", "", 10)
		for _, res := range entries {
			pdf.Cell(0, 7, fmt.Sprintf("%s | %s | %d people | %s | %s | $%d",
				res.UserName, res.Phone, res.People, res.Game, res.Status, res.Total))
			pdf.Ln(7)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Revenue: $%d", dayRevenue(reservations)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=day-"+date+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
