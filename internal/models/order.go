package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a placed order. Products is a text snapshot of the cart at
// placement time, so later catalog edits never change it.
type Order struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID    int64     `json:"userId" bson:"userId" gorm:"index"`
	Name      string    `json:"name" bson:"name"`
	Address   string    `json:"address" bson:"address"`
	Phone     string    `json:"phone" bson:"phone"`
	Products  string    `json:"products" bson:"products"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
