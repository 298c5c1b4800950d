package models

import (
	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"` // Ensure email is unique across all users
	Password string `json:"-"`                                 // Store hashed password, ignore for JSON serialization
	Avatar   string `json:"avatar,omitempty"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserCompact is the author projection embedded in post listings.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// ToCompact strips a user down to its public projection.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
