package models

// Reservation statuses form a closed set. A table is held from the moment
// the customer submits, so pending_payment counts toward occupancy.
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusRejected       = "rejected"
)

// ValidStatus reports whether s is one of the three reservation statuses.
func ValidStatus(s string) bool {
	return s == StatusPendingPayment || s == StatusConfirmed || s == StatusRejected
}

type Reservation struct {
	ID             string `json:"id" bson:"id"`
	UserID         string `json:"userId" bson:"userId"`
	UserName       string `json:"userName" bson:"userName"`
	UserEmail      string `json:"userEmail,omitempty" bson:"userEmail,omitempty"`
	Phone          string `json:"phone" bson:"phone"`
	Date           string `json:"date" bson:"date"` // calendar date "YYYY-MM-DD", never an instant
	Time           string `json:"time" bson:"time"` // time-slot label
	People         int    `json:"people" bson:"people"`
	Game           string `json:"game" bson:"game"`
	PricePerPerson int    `json:"pricePerPerson" bson:"pricePerPerson"` // snapshotted at creation
	Total          int    `json:"total" bson:"total"`                   // pricePerPerson * people, fixed at creation
	Status         string `json:"status" bson:"status"`
	CreatedAt      int64  `json:"createdAt" bson:"createdAt"`
}
