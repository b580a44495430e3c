package models

// Singleton configuration documents stored in the settings collection under
// fixed ids ("price", "paymentAlias", "blockedDates", "specialDates").

type PriceDoc struct {
	ID        string `json:"id" bson:"_id"`
	Value     int    `json:"value" bson:"value"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}

type AliasDoc struct {
	ID        string `json:"id" bson:"_id"`
	Value     string `json:"value" bson:"value"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}

type BlockedDatesDoc struct {
	ID        string   `json:"id" bson:"_id"`
	Dates     []string `json:"dates" bson:"dates"`
	UpdatedAt int64    `json:"updatedAt" bson:"updatedAt"`
}

// SpecialDatesDoc maps date string -> display label. This is the only
// representation of special dates in the system.
type SpecialDatesDoc struct {
	ID        string            `json:"id" bson:"_id"`
	Dates     map[string]string `json:"dates" bson:"dates"`
	UpdatedAt int64             `json:"updatedAt" bson:"updatedAt"`
}
