package models

import "time"

// Review is a rating plus text a user leaves on a food item.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	FoodItemID uint      `json:"food_item_id" gorm:"index;not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	User     *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FoodItem *FoodItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateReviewRequest defines the request body for reviewing a food item
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"max=5000"`
}
