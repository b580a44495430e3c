package models

// TimeSlot is a bookable time window shared by all dates. Reservations store
// the label, so deleting or deactivating a slot leaves history intact.
type TimeSlot struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label" bson:"label"`
	Active bool   `json:"active" bson:"active"`
	Order  int    `json:"order" bson:"order"` // sort rank; new slots get max+1
}
