package models

import "time"

// CartLine is one product held in a user's cart. (UserID, ProductID) is unique.
type CartLine struct {
	UserID    int64     `json:"userId" bson:"userId" gorm:"primaryKey;autoIncrement:false"`
	ProductID string    `json:"productId" bson:"productId" gorm:"primaryKey;type:varchar(36)"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ResolvedLine is a cart line joined with its product at read time
type ResolvedLine struct {
	Product  *Product
	Quantity int
}
