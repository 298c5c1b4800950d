package models

import "time"

// Restaurant is a venue that users review and collect.
type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
