package models

type NewsItem struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Text      string `json:"text" bson:"text"`
	ImagePath string `json:"imagePath,omitempty" bson:"imagePath,omitempty"`
	ThumbPath string `json:"thumbPath,omitempty" bson:"thumbPath,omitempty"`
	IsActive  bool   `json:"isActive" bson:"isActive"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
