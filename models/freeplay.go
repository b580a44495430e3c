package models

// Player is one sign-up on a free-play table.
type Player struct {
	UserID   string `json:"userId" bson:"userId"`
	UserName string `json:"userName" bson:"userName"`
	Phone    string `json:"phone" bson:"phone"`
}

// FreePlayTable is a walk-in table independent of the dated reservation flow.
// Players never exceed Capacity and a user appears at most once.
type FreePlayTable struct {
	ID        string   `json:"id" bson:"id"`
	Number    int      `json:"number" bson:"number"`
	Game      string   `json:"game" bson:"game"`
	Capacity  int      `json:"capacity" bson:"capacity"`
	Date      string   `json:"date,omitempty" bson:"date,omitempty"`           // optional "YYYY-MM-DD"
	TimeRange string   `json:"timeRange,omitempty" bson:"timeRange,omitempty"` // display label, e.g. "17:00-19:00"
	Players   []Player `json:"players" bson:"players"`
}
