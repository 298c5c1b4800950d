package models

import "time"

// Post is a community post authored by a user.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content"`
	ImageURLs []string  `json:"image_urls,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a post
type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=200"`
	Content   string   `json:"content" validate:"max=10000"`
	ImageURLs []string `json:"image_urls" validate:"omitempty,max=9,dive,url"`
}
