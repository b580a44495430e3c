// Package availability decides how many of the venue's tables are taken for
// a date and time slot, and whether one more booking fits.
package availability

import (
	"context"
	"log"

	"eltablero/models"
	"eltablero/store"

	"go.mongodb.org/mongo-driver/bson"
)

// MaxTables is the number of tables bookable per slot.
const MaxTables = 4

// Slot is the availability answer for one date + time-slot pair.
type Slot struct {
	Available bool `json:"available"`
	SpotsLeft int  `json:"spotsLeft"`
	Total     int  `json:"total"`
}

// counts is the single occupancy predicate shared by both retrieval modes:
// exact string date match, exact slot label match, any status but rejected.
// A table is held from submission, not from admin confirmation.
func counts(r models.Reservation, date, slot string) bool {
	return r.Status != models.StatusRejected && r.Date == date && r.Time == slot
}

// Occupancy counts reservations holding a table for the given date and slot.
func Occupancy(reservations []models.Reservation, date, slot string) int {
	occupied := 0
	for _, r := range reservations {
		if counts(r, date, slot) {
			occupied++
		}
	}
	return occupied
}

func fromOccupancy(occupied int) Slot {
	left := MaxTables - occupied
	if left < 0 {
		left = 0
	}
	return Slot{
		Available: occupied < MaxTables,
		SpotsLeft: left,
		Total:     MaxTables,
	}
}

// FromCache computes availability by scanning a locally cached reservation
// set; used when rendering many slots at once.
func FromCache(reservations []models.Reservation, date, slot string) Slot {
	return fromOccupancy(Occupancy(reservations, date, slot))
}

// Unavailable is the fail-closed answer: a slot whose occupancy cannot be
// read is never reported bookable.
func Unavailable() Slot {
	return Slot{Available: false, SpotsLeft: 0, Total: MaxTables}
}

// Check queries the store for one date + slot and counts client-side by
// status, so both retrieval modes apply the identical predicate. On a read
// failure it fails closed.
func Check(ctx context.Context, col *store.Collection[models.Reservation], date, slot string) Slot {
	matches, err := col.ReadAll(ctx, bson.M{"date": date, "time": slot})
	if err != nil {
		log.Printf("availability: store read failed for %s %s: %v", date, slot, err)
		return Unavailable()
	}
	return FromCache(matches, date, slot)
}
