package models

import "time"

// FoodItem is a dish that users review and collect.
type FoodItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
