package model

import (
	"strings"
	"time"
)

// Roles carried in credentials. Only RoleAdmin passes the admin gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a back-office account.
type User struct {
	ID           string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" bson:"name" gorm:"type:varchar(200);not null" validate:"required"`
	Email        string    `json:"email" bson:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,email"`
	Password     string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"`
	Role         string    `json:"role" bson:"role" gorm:"type:varchar(20);not null;default:admin" validate:"required,oneof=admin user"`
	ProfileImage *Image    `json:"profileImage,omitempty" bson:"profileImage,omitempty" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the creator projection joined onto listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary projects the public fields of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
