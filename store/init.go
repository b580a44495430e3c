package store

import (
	"eltablero/dates"
	"eltablero/db"
	"eltablero/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	Reservations *Collection[models.Reservation]
	TimeSlots    *Collection[models.TimeSlot]
	News         *Collection[models.NewsItem]
	FreePlay     *Collection[models.FreePlayTable]
	Conf         *Settings
)

// Init binds the package-level collections. db.Connect must run first.
func Init() {
	// Legacy reservations stored dates as datetime strings; normalize to the
	// plain calendar form on every read so comparisons stay string-exact.
	normalizeDates := func(r models.Reservation) models.Reservation {
		r.Date = dates.Normalize(r.Date)
		return r
	}

	Reservations = NewCollection("reservations", db.ReservationsCollection,
		nil, bson.D{{Key: "createdAt", Value: -1}}, normalizeDates)

	TimeSlots = NewCollection[models.TimeSlot]("timeslots", db.TimeSlotsCollection,
		nil, bson.D{{Key: "order", Value: 1}}, nil)

	News = NewCollection[models.NewsItem]("news", db.NewsCollection,
		bson.M{"isActive": true}, bson.D{{Key: "createdAt", Value: -1}}, nil)

	FreePlay = NewCollection(
		"freeplay", db.FreePlayCollection, nil, bson.D{{Key: "number", Value: 1}},
		func(t models.FreePlayTable) models.FreePlayTable {
			if t.Date != "" {
				t.Date = dates.Normalize(t.Date)
			}
			if t.Players == nil {
				t.Players = []models.Player{}
			}
			return t
		})

	Conf = NewSettings(db.SettingsCollection)
}
